package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/config"
	"github.com/litescript/ls-skyplan/internal/horizon"
	"github.com/litescript/ls-skyplan/internal/planner"
	"github.com/litescript/ls-skyplan/internal/search"
	"github.com/litescript/ls-skyplan/internal/ui"
	"github.com/litescript/ls-skyplan/internal/version"
)

func newRecommendCmd(a *app) *cobra.Command {
	var (
		limit int
		types []string
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Rank catalog objects for the night",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := a.recommend(cmd, limit, types)
			if err != nil {
				return err
			}
			if a.json {
				return a.engine.NewReport(a.date, recs, nil).WriteJSON(a.out)
			}
			planner.WriteRecommendations(a.out, recs, a.date)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum targets (default from config)")
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "Only these object types, e.g. galaxy,emission_nebula")
	return cmd
}

// recommend scores the catalog, keeps only the given types and truncates
// to limit, or to the configured maximum when limit is 0.
func (a *app) recommend(cmd *cobra.Command, limit int, types []string) ([]planner.ScoredRecommendation, error) {
	var keep []catalog.ObjectType
	for _, name := range types {
		t := catalog.ParseType(name)
		if t == catalog.Other && !strings.EqualFold(strings.TrimSpace(name), string(catalog.Other)) {
			return nil, fmt.Errorf("unknown object type %q", name)
		}
		keep = append(keep, t)
	}
	if limit <= 0 {
		limit = a.engine.Config().MaxTargets
	}

	recs, err := a.engine.Recommend(cmd.Context(), a.catalog, a.date, 0)
	if err != nil {
		return nil, err
	}
	if len(keep) > 0 {
		recs = slices.DeleteFunc(recs, func(r planner.ScoredRecommendation) bool {
			return !slices.Contains(keep, r.Object.Type)
		})
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func newPlanCmd(a *app) *cobra.Command {
	var maxTargets int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a non-overlapping imaging session for the night",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := a.engine.Recommend(cmd.Context(), a.catalog, a.date, 0)
			if err != nil {
				return err
			}
			plan := a.engine.PlanSession(recs, maxTargets)
			if a.json {
				return a.engine.NewReport(a.date, plan.Recommendations(), plan).WriteJSON(a.out)
			}
			planner.WriteTwilight(a.out, a.engine.Twilight(a.date))
			fmt.Fprintln(a.out)
			planner.WriteSession(a.out, plan)
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxTargets, "max", "n", 0, "Maximum targets in the session (default from config)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		weighted bool
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Find catalog objects by designation, name or description",
		Example: `  ls-skyplan search m31
  ls-skyplan search "north america"
  ls-skyplan search --weighted bright galaxy in ursa major`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			searcher := search.NewSearcher(a.metrics)
			objects := a.catalog.Objects()

			var matches []search.Match
			if weighted {
				matches = searcher.Weighted(objects, query, search.WeightedOptions{MaxResults: limit})
			} else {
				matches = searcher.Fuzzy(objects, query, search.FuzzyOptions{MaxResults: limit})
			}
			a.logger.Debug("search %q: %d matches", query, len(matches))

			if a.json {
				return planner.ExportJSON(a.out, matches)
			}
			writeMatches(a.out, query, matches)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&weighted, "weighted", "w", false, "Score every word against name, constellation and type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results")
	return cmd
}

func writeMatches(w io.Writer, query string, matches []search.Match) {
	fmt.Fprintf(w, "Results for %q\n", query)
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches")
		return
	}
	fmt.Fprintf(w, "%-28s %-18s %-4s %5s %s\n", "Object", "Type", "Con", "Score", "Match")
	for _, m := range matches {
		name := []rune(m.Object.DisplayName())
		if len(name) > 28 {
			name = append(name[:26], '.', '.')
		}
		fmt.Fprintf(w, "%-28s %-18s %-4s %5.2f %s\n",
			string(name), m.Object.Type.Label(), m.Object.Constellation, m.Score, m.Kind)
	}
}

// resolveObject finds an object by exact ID first, then by best search hit.
func (a *app) resolveObject(query string) (catalog.DeepSkyObject, error) {
	if obj, ok := a.catalog.Get(query); ok {
		return obj, nil
	}
	matches := search.NewSearcher(a.metrics).Fuzzy(a.catalog.Objects(), query, search.FuzzyOptions{MaxResults: 1})
	if len(matches) == 0 {
		return catalog.DeepSkyObject{}, fmt.Errorf("no object matches %q", query)
	}
	a.logger.Debug("resolved %q to %s (%s)", query, matches[0].Object.ID, matches[0].Kind)
	return matches[0].Object, nil
}

func newVisibilityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "visibility OBJECT",
		Aliases: []string{"vis"},
		Short:   "Show rise, transit, set and dark imaging time for one object",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			obj, err := a.resolveObject(strings.Join(args, " "))
			if err != nil {
				return err
			}
			target := obj.Target()
			curve := a.engine.Curve(target, a.date)
			vis := curve.Summary(target, a.engine.Site().Observer(), a.date, a.engine.Config().MinAltitude)

			rec, err := a.engine.ScoreObject(obj, a.date)
			if err != nil {
				return err
			}
			if a.json {
				return planner.ExportJSON(a.out, struct {
					Object         catalog.DeepSkyObject         `json:"object"`
					Visibility     any                           `json:"visibility"`
					Recommendation *planner.ScoredRecommendation `json:"recommendation"`
				}{obj, vis, rec})
			}
			planner.WriteVisibility(a.out, obj.DisplayName(), vis)
			if rec == nil {
				fmt.Fprintln(a.out, "Not worth imaging tonight: too little time high enough in darkness")
				return nil
			}
			fmt.Fprintf(a.out, "%-18s %6.1f\n", "Score", rec.TotalScore)
			fmt.Fprintf(a.out, "%-18s %6.1f\n", "Composite score", rec.Feasibility.CompositeScore)
			for _, line := range slices.Concat(rec.Reasons, rec.Warnings, rec.Tips) {
				fmt.Fprintf(a.out, "  · %s\n", line)
			}
			return nil
		},
	}
}

func newNightsCmd(a *app) *cobra.Command {
	var nights int
	cmd := &cobra.Command{
		Use:   "nights OBJECT",
		Short: "Find the best nights to image one object",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := a.resolveObject(strings.Join(args, " "))
			if err != nil {
				return err
			}
			best, err := a.engine.BestNights(cmd.Context(), obj, a.date, nights)
			if err != nil {
				return err
			}
			if a.json {
				return planner.ExportJSON(a.out, best)
			}

			fmt.Fprintf(a.out, "Best nights for %s from %s\n", obj.DisplayName(), a.date.Format("2006-01-02"))
			fmt.Fprintln(a.out, strings.Repeat("─", 56))
			if len(best) == 0 {
				fmt.Fprintf(a.out, "Not observable in the next %d nights\n", nights)
				return nil
			}
			fmt.Fprintf(a.out, "%-12s %5s %-11s %5s %s\n", "Night", "Score", "Window", "Moon", "Note")
			for _, n := range best {
				r := n.Recommendation
				note := ""
				if len(r.Warnings) > 0 {
					note = r.Warnings[0]
				}
				fmt.Fprintf(a.out, "%-12s %5.1f %-11s %4.0f° %s\n",
					n.Date.Format("Mon Jan 02"), r.TotalScore,
					r.ImagingWindow.Start.Format("15:04")+"-"+r.ImagingWindow.End.Format("15:04"),
					r.Object.MoonDistance, note)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&nights, "nights", "n", 30, "Number of nights to search")
	return cmd
}

func newTwilightCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "twilight",
		Short: "Show sunset, twilight and sunrise times for the night",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tw := a.engine.Twilight(a.date)
			if a.json {
				return planner.ExportJSON(a.out, tw)
			}
			planner.WriteTwilight(a.out, tw)
			return nil
		},
	}
}

func newHorizonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "horizon [FILE]",
		Short: "Show the configured horizon profile, or parse FILE",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			h := a.engine.Site().Horizon
			if len(args) == 1 {
				var err error
				if h, err = config.LoadHorizon(args[0]); err != nil {
					return err
				}
			}
			if h == nil {
				h = horizon.New("flat")
			}
			if a.json {
				return planner.ExportJSON(a.out, h)
			}
			fmt.Fprintf(a.out, "# %s: %d points, highest %.1f°\n", h.Name, h.Len(), h.MaxAltitude())
			return h.Export(a.out)
		},
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse recommendations in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("browse needs an interactive terminal; try recommend or plan")
			}
			if limit <= 0 {
				limit = 50
			}
			// The UI owns the screen; keep log lines out of it.
			a.logger.SetOutput(io.Discard)

			p := tea.NewProgram(ui.New(a.engine, a.catalog, a.date, limit),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum targets listed")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ls-skyplan %s\n", version.String())
			return err
		},
	}
}
