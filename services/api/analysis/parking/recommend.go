package parking

import (
	"fmt"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

type state struct {
	lots    []LotStatus
	summary CampusSummary
}

func (s state) with(status string) []string {
	var ids []string
	for _, l := range s.lots {
		if l.Status == status {
			ids = append(ids, l.Lot)
		}
	}
	return ids
}

var rules = []analysis.Rule[state]{
	{
		When: func(s state) bool { return len(s.with(StatusFull)) > 0 },
		Say: analysis.Line(func(s state) string {
			alt := strings.Join(s.with(StatusAvailable), ", ")
			if alt == "" {
				alt = "no alternatives"
			}
			return fmt.Sprintf("🚫 Lots %s are FULL. Redirect to: %s.", strings.Join(s.with(StatusFull), ", "), alt)
		}),
	},
	{
		When: func(s state) bool { return len(s.with(StatusFull))+len(s.with(StatusBusy)) > 0 },
		Say: analysis.Line(func(state) string {
			return "📱 Enable dynamic slot display at campus gates to reduce circling time by ~30%."
		}),
	},
	{
		When: func(s state) bool { return s.summary.OccupancyRate > evOccupancy },
		Say: analysis.Line(func(state) string {
			return "🚲 Consider adding EV charging + cycle parking to reduce car dependency by 15-20%."
		}),
	},
}

// Recommend turns lot states into guidance.
func Recommend(lots []LotStatus, summary CampusSummary) []string {
	return analysis.Recommend(state{lots: lots, summary: summary}, rules,
		"✅ Parking availability is healthy across campus. No action needed.")
}
