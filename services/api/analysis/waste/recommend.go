package waste

import (
	"fmt"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

type recCtx struct {
	summary   Summary
	forecasts []DailyForecast
}

func (c recCtx) bioPerDay() float64 {
	if len(c.forecasts) == 0 {
		return 0
	}
	return c.summary.TotalBiodegradableKg / float64(len(c.forecasts))
}

var rules = []analysis.Rule[recCtx]{
	{
		When: func(c recCtx) bool { return c.bioPerDay() > 0 },
		Say: func(c recCtx) []string {
			perDay := c.bioPerDay()
			return []string{
				fmt.Sprintf("♻️ Install biodigester rated for %.0f kg/day minimum capacity.", perDay),
				fmt.Sprintf("⚡ Estimated energy recovery: %.0f kWh/day — can power campus street lighting.",
					perDay*BiogasM3PerKg*KWhPerM3),
			}
		},
	},
	{
		When: func(c recCtx) bool { return c.bioPerDay() >= 50 },
		Say: analysis.Line(func(recCtx) string {
			return "🌱 Composting secondary stream can generate ~2 tons of fertilizer monthly for campus gardens."
		}),
	},
	{
		When: func(c recCtx) bool {
			return c.summary.TotalWasteKg > 0 && c.summary.BiodegradablePercentage < 70
		},
		Say: analysis.Line(func(recCtx) string {
			return "📉 Segregation at source (cafeteria, hostels) can increase biodegradable recovery by 20-25%."
		}),
	},
	{
		When: func(c recCtx) bool {
			for _, f := range c.forecasts {
				if f.TotalWasteKg > highVolumeKg {
					return true
				}
			}
			return false
		},
		Say: analysis.Line(func(recCtx) string {
			return "🔬 Deploy IoT-enabled smart bins with fill-level sensors for dynamic collection scheduling."
		}),
	},
}

// Recommend derives actions from the forecast.
func Recommend(summary Summary, forecasts []DailyForecast) []string {
	return analysis.Recommend(recCtx{summary: summary, forecasts: forecasts}, rules,
		"✅ Waste volumes are low; the current collection routine is sufficient.")
}
