package search

import (
	"sort"
	"strings"

	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/metrics"
)

// MatchKind says how a result matched.
type MatchKind string

const (
	MatchCatalogID  MatchKind = "catalog_id"
	MatchCommonName MatchKind = "common_name"
	MatchExact      MatchKind = "exact"
	MatchPrefix     MatchKind = "prefix"
	MatchSubstring  MatchKind = "substring"
	MatchFuzzy      MatchKind = "fuzzy"
	MatchWeighted   MatchKind = "weighted"
)

// Match is one search result.
type Match struct {
	Object catalog.DeepSkyObject `json:"object"`
	Score  float64               `json:"score"`
	Kind   MatchKind             `json:"match"`
	Token  string                `json:"token,omitempty"`
}

// FuzzyOptions tunes FuzzySearch. Zero fields take their defaults.
type FuzzyOptions struct {
	MaxResults int
	MinScore   float64
	// FuzzyThreshold is the best literal score below which similarity
	// scoring is tried.
	FuzzyThreshold float64
	// FuzzyWeight scales similarity scores so they rank under literal hits.
	FuzzyWeight float64
}

// DefaultFuzzyOptions returns the defaults.
func DefaultFuzzyOptions() FuzzyOptions {
	return FuzzyOptions{
		MaxResults:     20,
		MinScore:       0.3,
		FuzzyThreshold: 0.6,
		FuzzyWeight:    0.8,
	}
}

func (o FuzzyOptions) withDefaults() FuzzyOptions {
	d := DefaultFuzzyOptions()
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	if o.MinScore <= 0 {
		o.MinScore = d.MinScore
	}
	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = d.FuzzyThreshold
	}
	if o.FuzzyWeight <= 0 {
		o.FuzzyWeight = d.FuzzyWeight
	}
	return o
}

const (
	catalogIDScore = 1.0
	exactScore     = 0.92
)

// FuzzySearch ranks index entries against query. Each entry keeps its best
// literal hit: catalog designation, common name or misspelling, exact
// token, prefix, then substring. Only when no entry reaches
// FuzzyThreshold is string similarity tried. Results are sorted by score
// and never nil.
func FuzzySearch(query string, ix *Index, opts FuzzyOptions) []Match {
	opts = opts.withDefaults()
	q := Normalize(query)
	if q == "" || ix == nil {
		return []Match{}
	}

	qid, hasID := ParseCatalogID(q)
	names := nameMatches(q)

	matches := make([]Match, len(ix.entries))
	best := 0.0
	for i := range ix.entries {
		e := &ix.entries[i]
		m := Match{Object: e.Object}

		if hasID {
			for _, id := range e.CatalogIDs {
				if id.Catalog == qid.Catalog && id.Number == qid.Number && id.Suffix == qid.Suffix {
					m.consider(catalogIDScore, MatchCatalogID, id.Normalized)
				}
			}
		}
		for _, k := range e.keys {
			if s, ok := names[k]; ok {
				m.consider(s, MatchCommonName, q)
			}
		}
		for _, t := range e.Tokens {
			switch {
			case t == q:
				m.consider(exactScore, MatchExact, t)
			case strings.HasPrefix(t, q):
				m.consider(0.7+0.2*coverage(q, t), MatchPrefix, t)
			case strings.Contains(t, q):
				m.consider(0.5+0.3*coverage(q, t), MatchSubstring, t)
			}
		}
		matches[i] = m
		best = max(best, m.Score)
	}

	if best < opts.FuzzyThreshold {
		for i := range ix.entries {
			for _, t := range ix.entries[i].Tokens {
				matches[i].consider(Similarity(q, t)*opts.FuzzyWeight, MatchFuzzy, t)
			}
		}
	}

	return rank(matches, opts.MinScore, opts.MaxResults)
}

func (m *Match) consider(score float64, kind MatchKind, token string) {
	if score > m.Score {
		m.Score, m.Kind, m.Token = score, kind, token
	}
}

func coverage(q, t string) float64 {
	if len(t) == 0 {
		return 0
	}
	return float64(len(q)) / float64(len(t))
}

func rank(matches []Match, minScore float64, limit int) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Score >= minScore {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WeightedOptions tunes WeightedSearch. Zero fields take their defaults.
type WeightedOptions struct {
	NameWeight          float64
	AlternateWeight     float64
	ConstellationWeight float64
	TypeWeight          float64
	MaxResults          int
	MinScore            float64
	// NoMagnitudeBoost turns off the preference for bright objects.
	NoMagnitudeBoost bool
}

// DefaultWeightedOptions returns the defaults.
func DefaultWeightedOptions() WeightedOptions {
	return WeightedOptions{
		NameWeight:          1.0,
		AlternateWeight:     0.9,
		ConstellationWeight: 0.6,
		TypeWeight:          0.7,
		MaxResults:          50,
		MinScore:            0.3,
	}
}

func (o WeightedOptions) withDefaults() WeightedOptions {
	d := DefaultWeightedOptions()
	if o.NameWeight <= 0 {
		o.NameWeight = d.NameWeight
	}
	if o.AlternateWeight <= 0 {
		o.AlternateWeight = d.AlternateWeight
	}
	if o.ConstellationWeight <= 0 {
		o.ConstellationWeight = d.ConstellationWeight
	}
	if o.TypeWeight <= 0 {
		o.TypeWeight = d.TypeWeight
	}
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	if o.MinScore <= 0 {
		o.MinScore = d.MinScore
	}
	return o
}

// WeightedSearch scores every query word against the name, alternate
// names, constellation and type of each entry, averages the per-word best
// scores and boosts bright objects (magnitude under 6, 8 and 10 by 1.2,
// 1.1 and 1.05).
func WeightedSearch(query string, ix *Index, opts WeightedOptions) []Match {
	opts = opts.withDefaults()
	words := strings.Fields(Normalize(query))
	if len(words) == 0 || ix == nil {
		return []Match{}
	}

	matches := make([]Match, len(ix.entries))
	for i := range ix.entries {
		e := &ix.entries[i]
		fields := []weightedField{
			{strings.Fields(e.Name), opts.NameWeight},
			{e.Tokens, opts.NameWeight},
			{splitAll(e.AlternateNames), opts.AlternateWeight},
			{[]string{e.Constellation}, opts.ConstellationWeight},
			{strings.Fields(e.Type), opts.TypeWeight},
		}

		total := 0.0
		for _, w := range words {
			total += bestField(w, fields)
		}
		score := total / float64(len(words))
		if !opts.NoMagnitudeBoost {
			score *= magnitudeBoost(e.Object.Magnitude)
		}
		matches[i] = Match{Object: e.Object, Score: score, Kind: MatchWeighted}
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Score > opts.MinScore {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out
}

type weightedField struct {
	values []string
	weight float64
}

func bestField(word string, fields []weightedField) float64 {
	best := 0.0
	for _, f := range fields {
		for _, v := range f.values {
			best = max(best, Similarity(word, v)*f.weight)
		}
	}
	return best
}

func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

func magnitudeBoost(mag *float64) float64 {
	if mag == nil {
		return 1
	}
	switch {
	case *mag < 6:
		return 1.2
	case *mag < 8:
		return 1.1
	case *mag < 10:
		return 1.05
	default:
		return 1
	}
}

// Searcher runs searches against a cached index and records metrics.
type Searcher struct {
	cache   *IndexCache
	metrics *metrics.Metrics
}

// NewSearcher returns a Searcher with its own index cache.
func NewSearcher(m *metrics.Metrics) *Searcher {
	return &Searcher{cache: NewIndexCache(WithMetrics(m)), metrics: m}
}

// Fuzzy runs FuzzySearch over objects.
func (s *Searcher) Fuzzy(objects []catalog.DeepSkyObject, query string, opts FuzzyOptions) []Match {
	s.metrics.SearchQuery("fuzzy")
	return FuzzySearch(query, s.cache.Get(objects), opts)
}

// Weighted runs WeightedSearch over objects.
func (s *Searcher) Weighted(objects []catalog.DeepSkyObject, query string, opts WeightedOptions) []Match {
	s.metrics.SearchQuery("weighted")
	return WeightedSearch(query, s.cache.Get(objects), opts)
}

// ClearCache drops the Searcher's cached index.
func (s *Searcher) ClearCache() { s.cache.Clear() }
