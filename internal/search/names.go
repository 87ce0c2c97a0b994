package search

import "strings"

// commonNames maps informal names to catalog IDs.
var commonNames = map[string][]string{
	"andromeda":              {"M31"},
	"andromeda galaxy":       {"M31"},
	"andromeda nebula":       {"M31"},
	"crab":                   {"M1"},
	"crab nebula":            {"M1"},
	"lagoon":                 {"M8"},
	"lagoon nebula":          {"M8"},
	"wild duck":              {"M11"},
	"hercules cluster":       {"M13"},
	"great hercules cluster": {"M13"},
	"great globular":         {"M13"},
	"eagle":                  {"M16"},
	"eagle nebula":           {"M16"},
	"pillars of creation":    {"M16"},
	"omega":                  {"M17"},
	"omega nebula":           {"M17"},
	"swan nebula":            {"M17"},
	"trifid":                 {"M20"},
	"trifid nebula":          {"M20"},
	"dumbbell":               {"M27"},
	"dumbbell nebula":        {"M27"},
	"triangulum":             {"M33"},
	"triangulum galaxy":      {"M33"},
	"pinwheel":               {"M101", "M33"},
	"orion nebula":           {"M42"},
	"great orion nebula":     {"M42"},
	"orion":                  {"M42", "B33", "NGC 2024"},
	"beehive":                {"M44"},
	"praesepe":               {"M44"},
	"pleiades":               {"M45"},
	"seven sisters":          {"M45"},
	"subaru":                 {"M45"},
	"whirlpool":              {"M51"},
	"whirlpool galaxy":       {"M51"},
	"ring nebula":            {"M57"},
	"ring":                   {"M57"},
	"sunflower":              {"M63"},
	"black eye":              {"M64"},
	"owl nebula":             {"M97"},
	"bodes galaxy":           {"M81"},
	"bode's galaxy":          {"M81"},
	"cigar galaxy":           {"M82"},
	"sombrero":               {"M104"},
	"sombrero galaxy":        {"M104"},
	"leo triplet":            {"M65", "M66"},
	"north america":          {"NGC 7000"},
	"north america nebula":   {"NGC 7000"},
	"veil":                   {"NGC 6960", "NGC 6992"},
	"veil nebula":            {"NGC 6960", "NGC 6992"},
	"witch's broom":          {"NGC 6960"},
	"crescent":               {"NGC 6888"},
	"rosette":                {"NGC 2237"},
	"flame":                  {"NGC 2024"},
	"bubble":                 {"NGC 7635"},
	"pacman":                 {"NGC 281"},
	"double cluster":         {"NGC 869"},
	"sculptor galaxy":        {"NGC 253"},
	"silver coin":            {"NGC 253"},
	"centaurus a":            {"NGC 5128"},
	"needle":                 {"NGC 4565"},
	"helix":                  {"NGC 7293"},
	"eye of god":             {"NGC 7293"},
	"cat's eye":              {"NGC 6543"},
	"cats eye":               {"NGC 6543"},
	"eskimo":                 {"NGC 2392"},
	"fireworks":              {"NGC 6946"},
	"iris":                   {"NGC 7023"},
	"thor's helmet":          {"NGC 2359"},
	"thors helmet":           {"NGC 2359"},
	"carina nebula":          {"NGC 3372"},
	"eta carinae nebula":     {"NGC 3372"},
	"47 tuc":                 {"NGC 104"},
	"omega centauri":         {"NGC 5139"},
	"california":             {"NGC 1499"},
	"whale":                  {"NGC 4631"},
	"horsehead":              {"B33", "IC 434"},
	"horsehead nebula":       {"B33", "IC 434"},
	"heart":                  {"IC 1805"},
	"heart nebula":           {"IC 1805"},
	"soul":                   {"IC 1848"},
	"heart and soul":         {"IC 1805", "IC 1848"},
	"elephant trunk":         {"IC 1396"},
	"elephants trunk":        {"IC 1396"},
	"pelican":                {"IC 5070"},
	"cocoon":                 {"IC 5146"},
	"flaming star":           {"IC 405"},
	"witch head":             {"IC 2118"},
	"seagull":                {"IC 2177"},
	"cave":                   {"Sh2-155"},
	"tulip":                  {"Sh2-101"},
	"flying bat":             {"Sh2-129"},
	"spaghetti":              {"Sh2-240"},
	"shark":                  {"LDN 1235"},
	"coathanger":             {"Cr 399"},
	"brocchi's cluster":      {"Cr 399"},
	"coma cluster":           {"Mel 111"},
	"perseus cluster":        {"Abell 426"},
}

// phonetic maps frequent misspellings to catalog IDs.
var phonetic = map[string][]string{
	"andromida":     {"M31"},
	"andromedia":    {"M31"},
	"andromeada":    {"M31"},
	"andormeda":     {"M31"},
	"orian":         {"M42"},
	"orien":         {"M42"},
	"plaiades":      {"M45"},
	"pleides":       {"M45"},
	"pleaides":      {"M45"},
	"pleiadies":     {"M45"},
	"plejades":      {"M45"},
	"horshead":      {"B33", "IC 434"},
	"horse head":    {"B33", "IC 434"},
	"whirpool":      {"M51"},
	"wirlpool":      {"M51"},
	"sombraro":      {"M104"},
	"sombreo":       {"M104"},
	"triffid":       {"M20"},
	"lagune":        {"M8"},
	"dumbell":       {"M27"},
	"dumb bell":     {"M27"},
	"rossette":      {"NGC 2237"},
	"rosete":        {"NGC 2237"},
	"vail":          {"NGC 6960", "NGC 6992"},
	"vale":          {"NGC 6960", "NGC 6992"},
	"helics":        {"NGC 7293"},
	"heliks":        {"NGC 7293"},
	"omega centuri": {"NGC 5139"},
	"crabb":         {"M1"},
	"herculese":     {"M13"},
	"pinweel":       {"M101"},
	"trianglum":     {"M33"},
	"califonia":     {"NGC 1499"},
	"pelikan":       {"IC 5070"},
}

// Table hit scores. A phrase hit is a table key found as whole words
// inside a longer query.
const (
	commonExactScore    = 0.98
	commonPhraseScore   = 0.9
	phoneticExactScore  = 0.9
	phoneticPhraseScore = 0.8
)

// nameMatches looks a normalized query up in both tables and returns the
// best score per catalog ID.
func nameMatches(q string) map[string]float64 {
	out := make(map[string]float64)
	add := func(ids []string, score float64) {
		for _, id := range ids {
			key := idKey(id)
			if score > out[key] {
				out[key] = score
			}
		}
	}
	padded := " " + q + " "
	lookup := func(table map[string][]string, exact, phrase float64) {
		if ids, ok := table[q]; ok {
			add(ids, exact)
		}
		for name, ids := range table {
			if len(name) >= 4 && name != q && strings.Contains(padded, " "+name+" ") {
				add(ids, phrase)
			}
		}
	}
	lookup(commonNames, commonExactScore, commonPhraseScore)
	lookup(phonetic, phoneticExactScore, phoneticPhraseScore)
	return out
}

// CommonNameIDs returns the catalog IDs an informal name or misspelling
// refers to.
func CommonNameIDs(name string) []string {
	q := Normalize(name)
	if ids, ok := commonNames[q]; ok {
		return append([]string(nil), ids...)
	}
	if ids, ok := phonetic[q]; ok {
		return append([]string(nil), ids...)
	}
	return nil
}

func idKey(id string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(id), " ", ""))
}
