package greenery

import (
	"fmt"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

func reading(name string) func(signal.Sample) float64 {
	return func(s signal.Sample) float64 { return s.Get(name, soilDefaults[name]) }
}

var (
	ph       = reading(PH)
	moisture = reading(Moisture)
	nitrogen = reading(Nitrogen)
	organic  = reading(OrganicMatter)
)

var improvementRules = []analysis.Rule[signal.Sample]{
	{
		When: func(s signal.Sample) bool { return ph(s) < 6.0 },
		Say:  analysis.Line(func(signal.Sample) string { return "🧪 Apply agricultural lime (2-3 ton/ha) to raise pH." }),
	},
	{
		When: func(s signal.Sample) bool { return ph(s) > 7.8 },
		Say: analysis.Line(func(signal.Sample) string {
			return "🧪 Apply elemental sulfur or acidifying fertilizers to lower pH."
		}),
	},
	{
		When: func(s signal.Sample) bool { return organic(s) < 1.5 },
		Say: analysis.Line(func(signal.Sample) string {
			return "🌿 Incorporate 10-15 cm layer of compost/vermicompost before planting."
		}),
	},
	{
		When: func(s signal.Sample) bool { return nitrogen(s) < 20 },
		Say: analysis.Line(func(signal.Sample) string {
			return "💚 Apply nitrogen-fixing cover crop (clover/beans) or NPK fertilizer."
		}),
	},
	{
		When: func(s signal.Sample) bool { return moisture(s) < 30 },
		Say:  analysis.Line(func(signal.Sample) string { return "💧 Install drip irrigation system before planting." }),
	},
}

// ImprovementPlan lists soil amendments needed before planting.
func ImprovementPlan(soil signal.Sample) []string {
	return analysis.Recommend(soil, improvementRules, "✅ Soil is in good condition. Proceed with planting.")
}

// MaintenanceNotes are the standing care notes plus the primary pick.
func MaintenanceNotes(plants []RecommendedPlant) []string {
	notes := []string{
		"📅 Water new plantings daily for first 2 weeks, then reduce to 2-3x/week.",
		"🌿 Apply mulch (5-7 cm) around base of trees to retain moisture.",
		"✂️ Prune ornamental shrubs every 3 months to maintain shape.",
		"🔬 Conduct soil testing every 6 months for ongoing nutrient management.",
	}
	if len(plants) == 0 {
		return append(notes, "⚠️ No catalog species suit this soil yet — apply the improvement plan and re-test.")
	}
	return append(notes, fmt.Sprintf("🌳 %s is the primary recommendation — highest suitability for detected soil conditions.", plants[0].Name))
}
