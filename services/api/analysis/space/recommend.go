package space

import (
	"fmt"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

type recCtx struct {
	stats     Stats
	spaceType string
	location  string
}

var rules = []analysis.Rule[recCtx]{
	{
		When: func(c recCtx) bool { return c.stats.PeakVal > 0.9 },
		Say: analysis.Line(func(c recCtx) string {
			return fmt.Sprintf("⚠️ HIGH ALERT: %s will reach %.0f%% capacity. Consider overflow routing to adjacent spaces.",
				c.location, c.stats.PeakVal*100)
		}),
	},
	{
		When: func(c recCtx) bool { return c.stats.Average > 0.75 },
		Say: analysis.Line(func(c recCtx) string {
			return fmt.Sprintf("📊 Average utilization is high (%.0f%%). Recommend scheduling audit to distribute load.",
				c.stats.Average*100)
		}),
	},
	{
		When: func(c recCtx) bool {
			return (c.spaceType == "classroom" || c.spaceType == "lab") && c.stats.Average < 0.4
		},
		Say: analysis.Line(func(recCtx) string {
			return "💡 Underutilized space detected. Consider consolidating classes or repurposing during off-peak hours."
		}),
	},
	{
		When: func(c recCtx) bool { return c.spaceType == "parking" },
		Say: analysis.Line(func(recCtx) string {
			return "🚗 Consider dynamic pricing or timed zones to reduce peak congestion."
		}),
	},
}

// Recommend derives actions from forecast statistics.
func Recommend(stats Stats, spaceType, location string) []string {
	return analysis.Recommend(recCtx{stats: stats, spaceType: spaceType, location: location}, rules,
		"✅ Utilization is within the normal range for the forecast window.")
}
