package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Designation catalogs, spelled as in normalized IDs.
const (
	Messier   = "M"
	NGC       = "NGC"
	IC        = "IC"
	Caldwell  = "C"
	Sharpless = "Sh2"
	Barnard   = "B"
	Abell     = "Abell"
	Melotte   = "Mel"
	Collinder = "Cr"
	Trumpler  = "Tr"
	VdB       = "vdB"
	LDN       = "LDN"
	LBN       = "LBN"
)

// CatalogID is a parsed designation such as NGC 7000 or Sh2-155.
type CatalogID struct {
	Catalog    string `json:"catalog"`
	Number     int    `json:"number"`
	Suffix     string `json:"suffix,omitempty"`
	Normalized string `json:"normalized"`
}

type designation struct {
	catalog string
	sep     string // between catalog and number in the normalized form
	pattern *regexp.Regexp
	// variants returns extra spellings for a number with its suffix.
	variants func(n string) []string
}

var designations = []designation{
	{
		catalog: Messier,
		pattern: regexp.MustCompile(`^(?:messier|m)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"messier " + n, "messier" + n}
		},
	},
	{
		catalog: NGC,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:ngc|n)\s*(\d+)\s*([a-z])?$`),
		variants: func(n string) []string {
			return []string{"n" + n, "n " + n}
		},
	},
	{
		catalog: IC,
		sep:     " ",
		pattern: regexp.MustCompile(`^ic\s*(\d+)\s*([a-z])?$`),
	},
	{
		catalog: Caldwell,
		pattern: regexp.MustCompile(`^(?:caldwell|c)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"caldwell " + n, "caldwell" + n}
		},
	},
	{
		catalog: Sharpless,
		sep:     "-",
		pattern: regexp.MustCompile(`^(?:sh\s*2\s*[-\s]?|sharpless(?:\s*2\s*-)?)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"sh2 " + n, "sh 2-" + n, "sharpless " + n, "sharpless 2-" + n}
		},
	},
	{
		catalog: Barnard,
		pattern: regexp.MustCompile(`^(?:barnard|b)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"barnard " + n}
		},
	},
	{
		catalog: Abell,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:abell|aco)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"aco " + n}
		},
	},
	{
		catalog: Melotte,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:melotte|mel)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"melotte " + n}
		},
	},
	{
		catalog: Collinder,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:collinder|cr|cl)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"collinder " + n}
		},
	},
	{
		catalog: Trumpler,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:trumpler|tr)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"trumpler " + n}
		},
	},
	{
		catalog: VdB,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:van\s*den\s*bergh|vdb)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"van den bergh " + n}
		},
	},
	{
		catalog: LDN,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:ldn|lynds\s*dark(?:\s*nebula)?)\s*(\d+)$`),
		variants: func(n string) []string {
			return []string{"lynds dark " + n}
		},
	},
	{
		catalog: LBN,
		sep:     " ",
		pattern: regexp.MustCompile(`^(?:lbn|lynds\s*bright(?:\s*nebula)?)\s*(\d+)$`),
	},
}

var designationByCatalog = func() map[string]*designation {
	m := make(map[string]*designation, len(designations))
	for i := range designations {
		m[designations[i].catalog] = &designations[i]
	}
	return m
}()

// ParseCatalogID recognizes a designation in any of the usual spellings:
// "M31", "m 31", "Messier 31" and "messier31" all give M31. ok is false
// for anything else.
func ParseCatalogID(s string) (id CatalogID, ok bool) {
	q := strings.ReplaceAll(Normalize(s), ".", "")
	if q == "" {
		return CatalogID{}, false
	}
	for i := range designations {
		d := &designations[i]
		m := d.pattern.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return CatalogID{}, false
		}
		id = CatalogID{Catalog: d.catalog, Number: n}
		if len(m) > 2 && m[2] != "" {
			id.Suffix = strings.ToUpper(m[2])
		}
		id.Normalized = d.catalog + d.sep + strconv.Itoa(n) + id.Suffix
		return id, true
	}
	return CatalogID{}, false
}

// Variations lists the lowercase spellings a designation can be typed in,
// starting with the normalized form.
func Variations(id CatalogID) []string {
	d, ok := designationByCatalog[id.Catalog]
	if !ok {
		return nil
	}
	n := strconv.Itoa(id.Number) + strings.ToLower(id.Suffix)
	code := strings.ToLower(id.Catalog)

	out := []string{
		strings.ToLower(id.Normalized),
		code + n,
		code + " " + n,
	}
	if d.variants != nil {
		out = append(out, d.variants(n)...)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
