// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=<sha>".
var Commit = "dev"

// String returns "0.3.0 (commit)".
func String() string {
	return Version + " (" + Commit + ")"
}

// Milestones:
// 0.3.0 - Session planning, target browser, TOML config, curve caching
// 0.2.0 - Ten-factor target scoring, best-nights search, custom horizons
// 0.1.0 - Initial release: catalog, fuzzy search, visibility and twilight
