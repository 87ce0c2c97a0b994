package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Catalog is an immutable, ID-indexed collection of deep-sky objects.
// Accessors hand out copies so the master records never change.
type Catalog struct {
	objects []DeepSkyObject
	byID    map[string]int
	months  map[string][]time.Month
}

// New builds a catalog. IDs are matched case-insensitively and must be
// unique.
func New(objects []DeepSkyObject) (*Catalog, error) {
	c := &Catalog{
		objects: make([]DeepSkyObject, 0, len(objects)),
		byID:    make(map[string]int, len(objects)),
		months:  make(map[string][]time.Month),
	}
	for _, o := range objects {
		if err := c.add(o); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(o DeepSkyObject) error {
	if err := o.Validate(); err != nil {
		return err
	}
	key := idKey(o.ID)
	if _, dup := c.byID[key]; dup {
		return fmt.Errorf("duplicate object id %q", o.ID)
	}
	c.byID[key] = len(c.objects)
	c.objects = append(c.objects, o.Clone())
	return nil
}

// Merge returns a new catalog with extra appended. Objects in extra replace
// same-ID objects of c in place.
func (c *Catalog) Merge(extra *Catalog) *Catalog {
	out := &Catalog{
		objects: make([]DeepSkyObject, 0, len(c.objects)+len(extra.objects)),
		byID:    make(map[string]int, len(c.objects)+len(extra.objects)),
		months:  make(map[string][]time.Month, len(c.months)+len(extra.months)),
	}
	for _, o := range c.objects {
		out.byID[idKey(o.ID)] = len(out.objects)
		out.objects = append(out.objects, o)
	}
	for _, o := range extra.objects {
		key := idKey(o.ID)
		if i, ok := out.byID[key]; ok {
			out.objects[i] = o
			continue
		}
		out.byID[key] = len(out.objects)
		out.objects = append(out.objects, o)
	}
	for k, v := range c.months {
		out.months[k] = v
	}
	for k, v := range extra.months {
		out.months[k] = v
	}
	return out
}

// Len returns the number of objects.
func (c *Catalog) Len() int { return len(c.objects) }

// Objects returns deep copies of all objects in catalog order.
func (c *Catalog) Objects() []DeepSkyObject {
	out := make([]DeepSkyObject, len(c.objects))
	for i, o := range c.objects {
		out[i] = o.Clone()
	}
	return out
}

// Get looks up an object by ID, ignoring case and spaces ("m 31" finds M31).
func (c *Catalog) Get(id string) (DeepSkyObject, bool) {
	i, ok := c.byID[idKey(id)]
	if !ok {
		return DeepSkyObject{}, false
	}
	return c.objects[i].Clone(), true
}

// Filter returns copies of the objects keep accepts.
func (c *Catalog) Filter(keep func(DeepSkyObject) bool) []DeepSkyObject {
	var out []DeepSkyObject
	for _, o := range c.objects {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ByType returns the objects of the given types.
func (c *Catalog) ByType(types ...ObjectType) []DeepSkyObject {
	want := make(map[ObjectType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	return c.Filter(func(o DeepSkyObject) bool { return want[o.Type] })
}

// Types lists the distinct object types present, sorted.
func (c *Catalog) Types() []ObjectType {
	seen := make(map[ObjectType]bool)
	var out []ObjectType
	for _, o := range c.objects {
		if !seen[o.Type] {
			seen[o.Type] = true
			out = append(out, o.Type)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BestMonths returns the months an object is best imaged, or nil when the
// catalog has no seasonal data for it.
func (c *Catalog) BestMonths(id string) []time.Month {
	if m, ok := c.months[idKey(id)]; ok {
		return append([]time.Month(nil), m...)
	}
	return nil
}

// setBestMonths records seasonal data for an object of the catalog.
func (c *Catalog) setBestMonths(id string, months []time.Month) {
	if len(months) == 0 {
		return
	}
	c.months[idKey(id)] = append([]time.Month(nil), months...)
}

func idKey(id string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(id), " ", ""))
}
