package search

import (
	"encoding/binary"
	"math"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/litescript/ls-skyplan/internal/catalog"
	"github.com/litescript/ls-skyplan/internal/metrics"
)

// Entry is one indexed object with its precomputed search fields.
type Entry struct {
	Object         catalog.DeepSkyObject
	ID             string // lowercase
	Name           string // lowercase
	AlternateNames []string
	Constellation  string
	Type           string
	CatalogIDs     []CatalogID
	Tokens         []string
	// keys holds every designation the object answers to, in idKey form.
	keys []string
}

// Index is an immutable search index over a set of objects.
type Index struct {
	entries     []Entry
	byKey       map[string]int
	fingerprint uint64
}

// BuildIndex indexes objects. Later duplicates of an ID are ignored.
func BuildIndex(objects []catalog.DeepSkyObject) *Index {
	ix := &Index{
		entries:     make([]Entry, 0, len(objects)),
		byKey:       make(map[string]int, len(objects)),
		fingerprint: Fingerprint(objects),
	}
	for _, o := range objects {
		key := idKey(o.ID)
		if _, dup := ix.byKey[key]; dup {
			continue
		}
		ix.byKey[key] = len(ix.entries)
		ix.entries = append(ix.entries, newEntry(o))
	}
	return ix
}

func newEntry(o catalog.DeepSkyObject) Entry {
	e := Entry{
		Object:        o.Clone(),
		ID:            Normalize(o.ID),
		Name:          Normalize(o.Name),
		Constellation: Normalize(o.Constellation),
		Type:          Normalize(o.Type.Label()),
	}
	for _, alt := range o.AlternateNames {
		e.AlternateNames = append(e.AlternateNames, Normalize(alt))
	}

	tokens := []string{e.ID, e.Name}
	tokens = append(tokens, e.AlternateNames...)
	for _, s := range append([]string{o.ID}, o.AlternateNames...) {
		if id, ok := ParseCatalogID(s); ok {
			e.CatalogIDs = append(e.CatalogIDs, id)
			tokens = append(tokens, Variations(id)...)
		}
	}
	for _, w := range strings.Fields(e.Name) {
		if len(w) >= 3 {
			tokens = append(tokens, w)
		}
	}
	e.Tokens = dedupe(tokens)

	keys := []string{idKey(o.ID)}
	for _, alt := range o.AlternateNames {
		keys = append(keys, idKey(alt))
	}
	for _, id := range e.CatalogIDs {
		keys = append(keys, idKey(id.Normalized))
	}
	e.keys = dedupe(keys)
	return e
}

// Len returns the number of entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Entries returns the indexed entries in catalog order. Callers must not
// modify them.
func (ix *Index) Entries() []Entry { return ix.entries }

// Lookup finds an entry by object ID.
func (ix *Index) Lookup(id string) (Entry, bool) {
	i, ok := ix.byKey[idKey(id)]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// Fingerprint returns the identity hash the index was built for.
func (ix *Index) Fingerprint() uint64 { return ix.fingerprint }

// Fingerprint hashes the identity of objects: IDs, names and positions.
// Any edit that could change search results changes the fingerprint.
func Fingerprint(objects []catalog.DeepSkyObject) uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	for _, o := range objects {
		_, _ = d.WriteString(o.ID)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(o.Name)
		_, _ = d.Write([]byte{0})
		for _, alt := range o.AlternateNames {
			_, _ = d.WriteString(alt)
			_, _ = d.Write([]byte{1})
		}
		_, _ = d.WriteString(string(o.Type))
		_, _ = d.WriteString(o.Constellation)
		writeFloat(o.RA)
		writeFloat(o.Dec)
		writeFloat(o.MagnitudeOr(math.NaN()))
		_, _ = d.Write([]byte{2})
	}
	return d.Sum64()
}

// IndexCache holds the index of the most recently searched catalog. It is
// safe for concurrent use and rebuilds when the catalog identity changes.
type IndexCache struct {
	mu      sync.RWMutex
	index   *Index
	metrics *metrics.Metrics
}

// CacheOption configures an IndexCache.
type CacheOption func(*IndexCache)

// WithMetrics records cache lookups and index builds.
func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *IndexCache) { c.metrics = m }
}

// NewIndexCache returns an empty cache.
func NewIndexCache(opts ...CacheOption) *IndexCache {
	c := &IndexCache{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the index for objects, building it on a miss.
func (c *IndexCache) Get(objects []catalog.DeepSkyObject) *Index {
	fp := Fingerprint(objects)

	c.mu.RLock()
	ix := c.index
	c.mu.RUnlock()
	if ix != nil && ix.fingerprint == fp {
		c.metrics.CacheLookup(true)
		return ix
	}
	c.metrics.CacheLookup(false)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil && c.index.fingerprint == fp {
		return c.index
	}
	c.index = BuildIndex(objects)
	c.metrics.IndexBuilt()
	return c.index
}

// Clear drops the cached index.
func (c *IndexCache) Clear() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

var defaultCache = NewIndexCache()

// DefaultIndex returns the index of objects from the process-wide cache.
func DefaultIndex(objects []catalog.DeepSkyObject) *Index {
	return defaultCache.Get(objects)
}

// ClearIndexCache empties the process-wide cache.
func ClearIndexCache() {
	defaultCache.Clear()
}
