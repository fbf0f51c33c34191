package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/campus"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// IntentHelp is the intent of a message no pattern recognises.
const IntentHelp = "help"

type pattern struct {
	re     *regexp.Regexp
	domain campus.Domain
}

// Checked in order; the first match wins.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)(clog|footfall|crowd)`), campus.Footfall},
	{regexp.MustCompile(`(?i)park`), campus.Parking},
	{regexp.MustCompile(`(?i)(plant|green|tree)`), campus.Greenery},
	{regexp.MustCompile(`(?i)water`), campus.Water},
	{regexp.MustCompile(`(?i)(waste|biogas)`), campus.Waste},
	{regexp.MustCompile(`(?i)(occupancy|classroom|space)`), campus.Space},
}

// Resolve maps a message to the domain it asks about.
func Resolve(msg string) (campus.Domain, bool) {
	for _, p := range patterns {
		if p.re.MatchString(msg) {
			return p.domain, true
		}
	}
	return "", false
}

var (
	placeRe  = regexp.MustCompile(`(?i)\b(?:for|at|in|near)\s+(?:the\s+)?([a-z0-9][a-z0-9 _-]*[a-z0-9])`)
	hoursRe  = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:h|hrs?|hours?)\b`)
	daysRe   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*days?\b`)
	periodRe = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night)\b`)
)

var placeStops = []string{" this ", " today", " tomorrow", " next ", " now", " over ", " for "}

type candidate struct {
	id      string
	aliases []string
}

func candidates(reg *registry.Registry, d campus.Domain) []candidate {
	var out []candidate
	add := func(id, name string) {
		out = append(out, candidate{id: id, aliases: []string{id, strings.ReplaceAll(id, "_", " "), name}})
	}
	switch d {
	case campus.Water:
		for _, z := range reg.WaterZones() {
			add(z.ID, z.Name)
		}
	case campus.Footfall:
		for _, z := range reg.FootfallZones() {
			add(z.ID, z.Name)
		}
	case campus.Parking:
		for _, l := range reg.ParkingLots() {
			add(l.ID, l.Name)
		}
	case campus.Waste:
		for _, a := range reg.WasteAreas() {
			add(a.ID, a.Name)
		}
	}
	return out
}

// ExtractZone finds the zone a message mentions. Registry-backed domains
// match ids and names, preferring the longest mention; space and greenery
// take the free-text place after "for", "at", "in" or "near". An empty
// result means the domain default.
func ExtractZone(reg *registry.Registry, d campus.Domain, msg string) string {
	if d == campus.Space || d == campus.Greenery {
		return freePlace(msg)
	}
	lower := strings.ToLower(msg)
	best, bestLen := "", 0
	for _, c := range candidates(reg, d) {
		for _, alias := range c.aliases {
			a := strings.ToLower(strings.TrimSpace(alias))
			if a == "" || len(a) <= bestLen {
				continue
			}
			if regexp.MustCompile(`\b` + regexp.QuoteMeta(a) + `\b`).MatchString(lower) {
				best, bestLen = c.id, len(a)
			}
		}
	}
	return best
}

func freePlace(msg string) string {
	m := placeRe.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	place := " " + m[1] + " "
	for _, stop := range placeStops {
		if i := strings.Index(strings.ToLower(place), stop); i > 0 {
			place = place[:i]
		}
	}
	return strings.TrimSpace(place)
}

// ExtractOptions picks up horizons and periods phrased in the message.
func ExtractOptions(d campus.Domain, msg string) map[string]string {
	opts := map[string]string{}
	switch d {
	case campus.Space, campus.Parking:
		if m := hoursRe.FindStringSubmatch(msg); m != nil {
			key := "hours"
			if d == campus.Parking {
				key = "forecast_hours"
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				opts[key] = strconv.Itoa(n)
			}
		}
	case campus.Waste:
		if m := daysRe.FindStringSubmatch(msg); m != nil {
			opts["days"] = m[1]
		}
	case campus.Footfall:
		if m := periodRe.FindStringSubmatch(msg); m != nil {
			opts["time_of_day"] = strings.ToLower(m[1])
		}
	}
	return opts
}
