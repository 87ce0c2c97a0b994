package horizon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads the lenient horizon text format:
//
//	# comment
//	// comment
//	azimuth,altitude
//	azimuth<TAB>altitude
//	azimuth altitude
//
// Blank lines, comments and unparsable lines are skipped silently. The only
// error returned comes from the reader.
func Parse(name string, r io.Reader) (*CustomHorizon, error) {
	var points []Point

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p, ok := parseLine(sc.Text())
		if ok {
			points = append(points, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read horizon %q: %w", name, err)
	}

	return New(name, points...), nil
}

// ParseString is Parse over an in-memory document.
func ParseString(name, s string) *CustomHorizon {
	h, _ := Parse(name, strings.NewReader(s))
	return h
}

func parseLine(line string) (Point, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
		return Point{}, false
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) < 2 {
		return Point{}, false
	}

	az, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, false
	}
	alt, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, false
	}
	return Point{Azimuth: az, Altitude: alt}, true
}

// Export writes the profile in the text format Parse reads, one
// "azimuth,altitude" line per point with one decimal.
func (h *CustomHorizon) Export(w io.Writer) error {
	name := ""
	if h != nil {
		name = h.Name
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Custom horizon: %s\n", name)
	fmt.Fprintf(bw, "# Points: %d\n", h.Len())
	fmt.Fprintln(bw, "# azimuth,altitude (degrees)")
	for _, p := range h.Points() {
		az := strconv.FormatFloat(p.Azimuth, 'f', 1, 64)
		if az == "360.0" {
			az = "0.0"
		}
		fmt.Fprintf(bw, "%s,%.1f\n", az, p.Altitude)
	}
	return bw.Flush()
}

// ExportString returns Export's output as a string.
func (h *CustomHorizon) ExportString() string {
	var sb strings.Builder
	_ = h.Export(&sb)
	return sb.String()
}

type horizonJSON struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// MarshalJSON encodes the horizon as {"name", "points"}.
func (h *CustomHorizon) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	pts := h.Points()
	if pts == nil {
		pts = []Point{}
	}
	return json.Marshal(horizonJSON{Name: h.Name, Points: pts})
}

// UnmarshalJSON restores a horizon written by MarshalJSON.
func (h *CustomHorizon) UnmarshalJSON(data []byte) error {
	var raw horizonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode horizon: %w", err)
	}
	h.Name = raw.Name
	h.SetPoints(raw.Points...)
	return nil
}
