package water

import (
	"fmt"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

type treatmentCtx struct {
	readings  signal.Sample
	anomalies []analysis.Anomaly
}

func (c treatmentCtx) find(param string) (analysis.Anomaly, bool) {
	for _, a := range c.anomalies {
		if a.Parameter == param {
			return a, true
		}
	}
	return analysis.Anomaly{}, false
}

func (c treatmentCtx) has(param string) bool {
	_, ok := c.find(param)
	return ok
}

var chemistry = map[string]bool{"ph": true, "turbidity_ntu": true, "tds_ppm": true, "chlorine_ppm": true}

var treatmentRules = []analysis.Rule[treatmentCtx]{
	{
		When: func(c treatmentCtx) bool { return c.has("ph") },
		Say: analysis.Line(func(c treatmentCtx) string {
			a, _ := c.find("ph")
			action := "Add CO₂ or acid dosing to reduce alkalinity"
			if a.Value < a.ThresholdMin {
				action = "Add lime/soda ash for neutralization"
			}
			return fmt.Sprintf("⚗️ pH at %s — %s.", analysis.Num(a.Value), action)
		}),
	},
	{
		When: func(c treatmentCtx) bool { return c.has("turbidity_ntu") },
		Say: analysis.Line(func(c treatmentCtx) string {
			a, _ := c.find("turbidity_ntu")
			return fmt.Sprintf("💧 Turbidity at %s NTU — Install multimedia sand filtration + coagulation-flocculation unit.", analysis.Num(a.Value))
		}),
	},
	{
		When: func(c treatmentCtx) bool { return c.has("tds_ppm") },
		Say: analysis.Line(func(c treatmentCtx) string {
			a, _ := c.find("tds_ppm")
			flow := analysis.Round(c.readings.Get("flow_rate_lpm", 100), 0)
			return fmt.Sprintf("🧪 TDS at %s ppm — Install RO (Reverse Osmosis) system rated for %s LPM.", analysis.Num(a.Value), analysis.Num(flow))
		}),
	},
	{
		When: func(c treatmentCtx) bool { return c.has("chlorine_ppm") },
		Say: analysis.Line(func(c treatmentCtx) string {
			a, _ := c.find("chlorine_ppm")
			action := "Reduce dosage; install activated carbon post-filter"
			if a.Value < a.ThresholdMin {
				action = "Increase chlorine dosing at pump station"
			}
			return fmt.Sprintf("🦠 Chlorine at %s ppm — %s.", analysis.Num(a.Value), action)
		}),
	},
	{
		// Hydraulic and temperature excursions.
		Say: func(c treatmentCtx) []string {
			var out []string
			for _, a := range c.anomalies {
				if chemistry[a.Parameter] {
					continue
				}
				out = append(out, fmt.Sprintf("🔧 %s at %s is outside %s–%s — inspect pumps, valves and line sensors.",
					a.Parameter, analysis.Num(a.Value), analysis.Num(a.ThresholdMin), analysis.Num(a.ThresholdMax)))
			}
			return out
		},
	},
}

// Treatment maps detected anomalies to corrective actions.
func Treatment(readings signal.Sample, anomalies []analysis.Anomaly) []string {
	return analysis.Recommend(treatmentCtx{readings: readings, anomalies: anomalies}, treatmentRules,
		"✅ All parameters within acceptable range. Continue routine monitoring.")
}

// Installation lists the standing monitoring and treatment upgrades.
func Installation() []string {
	return []string{
		"📡 Install continuous IoT water quality sensors (pH, turbidity, TDS, chlorine) at all zone inlets.",
		"🤖 Implement AI-driven auto-dosing system for real-time chemical treatment adjustment.",
		"🔄 Add SCADA integration for central monitoring and control of all water zones.",
		"💧 Install pressure sensors every 200m on distribution lines for leak detection.",
		"🌧️ Rainwater harvesting + greywater recycling can offset 20-30% of campus water demand.",
	}
}
