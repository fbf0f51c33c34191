package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/footfall"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/greenery"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/parking"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/space"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/waste"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/water"
	"github.com/02loveslollipop/campus-pulse/services/api/campus"
)

const helpText = "I can analyze campus space occupancy, footfall and clog points, water quality, " +
	"waste and biogas yield, parking availability and greenery planting. Try:\n\n" +
	"- \"Where are the clog points on campus?\"\n" +
	"- \"Predict parking availability for the next 4 hours\"\n" +
	"- \"Recommend plants for Block A courtyard\"\n" +
	"- \"How is the water quality in Z2?\""

// Prompt is what a responder turns into a reply. Result is nil for help.
type Prompt struct {
	Question string
	Result   *campus.Result
}

// Answer is a rendered reply and the responder that produced it.
type Answer struct {
	Text      string
	Responder string
}

// Responder renders analysis results as chat replies.
type Responder interface {
	Respond(ctx context.Context, p Prompt) (Answer, error)
}

// TemplateResponder renders a fixed markdown summary per domain.
type TemplateResponder struct{}

func (TemplateResponder) Respond(_ context.Context, p Prompt) (Answer, error) {
	if p.Result == nil {
		return Answer{Text: helpText, Responder: "template"}, nil
	}
	return Answer{Text: Render(*p.Result), Responder: "template"}, nil
}

// Render summarizes a result as markdown.
func Render(res campus.Result) string {
	var b strings.Builder
	switch r := res.Report.(type) {
	case footfall.Report:
		if r.ClogPointsDetected == 0 {
			b.WriteString("✅ **No clog points detected** across the corridors analyzed.\n")
		} else {
			fmt.Fprintf(&b, "🚨 **%d clog point(s) detected:**\n\n", r.ClogPointsDetected)
			for i, c := range r.ClogPoints {
				conflict := "High density"
				if c.ConflictType != nil {
					conflict = *c.ConflictType
				}
				fmt.Fprintf(&b, "%d. **%s** (%s - %.0f%% capacity) - %s.\n", i+1, c.Name, c.Severity, c.Utilization*100, conflict)
			}
		}
		fmt.Fprintf(&b, "\nFlow score: **%s** (grade %s, %s)\n", analysis.Num(r.FlowScore), r.FlowGrade, r.TimeOfDay)
		writeList(&b, "Recommendations", r.InfrastructureSuggestions[:min(3, len(r.InfrastructureSuggestions))])
	case parking.Report:
		fmt.Fprintf(&b, "🚗 **Parking Forecast (Next %d hrs):**\n\n", r.ForecastHours)
		for _, l := range r.Lots {
			mark := "✅"
			switch l.Status {
			case parking.StatusFull:
				mark = "⛔"
			case parking.StatusBusy:
				mark = "⚠️"
			}
			last := l.CurrentAvailable
			if n := len(l.Forecast); n > 0 {
				last = l.Forecast[n-1].PredictedAvailable
			}
			fmt.Fprintf(&b, "- %s %s: %.0f%% full, %d free now, %d expected %s\n",
				l.Lot, l.LotName, l.OccupancyRate*100, l.CurrentAvailable, last, mark)
		}
		writeList(&b, "Recommend", r.Recommendations)
	case greenery.Report:
		n := min(3, len(r.RecommendedPlants))
		fmt.Fprintf(&b, "🌿 **Top %d Plants for %s:**\n\n", n, r.Location)
		for i, p := range r.RecommendedPlants[:n] {
			fmt.Fprintf(&b, "%d. **%s** (Suitability: %.0f%%) - %s kg CO₂/yr, %s water.\n",
				i+1, p.Name, p.SuitabilityScore*100, analysis.Num(p.CO2KgPerYear), strings.ToLower(p.WaterRequirement))
		}
		fmt.Fprintf(&b, "\nSoil quality: **%s**\n", r.SoilQuality)
		writeList(&b, "Soil plan", r.SoilImprovementPlan)
	case water.Report:
		fmt.Fprintf(&b, "💧 **%s (Zone %s):**\n\n", r.ZoneName, r.Zone)
		names := make([]string, 0, len(r.SensorReadings))
		for k := range r.SensorReadings {
			names = append(names, k)
		}
		sort.Strings(names)
		severity := make(map[string]analysis.Severity, len(r.Anomalies))
		for _, a := range r.Anomalies {
			severity[a.Parameter] = a.Severity
		}
		for _, k := range names {
			mark := "✅"
			switch severity[k] {
			case analysis.SeverityCritical:
				mark = "❌"
			case analysis.SeverityWarning:
				mark = "⚠️"
			}
			fmt.Fprintf(&b, "- %s: %s %s\n", k, analysis.Num(r.SensorReadings[k]), mark)
		}
		fmt.Fprintf(&b, "\n**Risk Level: %s** | Quality Grade: %s\n", r.RiskLevel, r.QualityGrade)
		writeList(&b, "Recommendations", r.TreatmentRecommendations)
	case waste.Report:
		s := r.Summary
		fmt.Fprintf(&b, "♻️ **Waste forecast for %s (%d days):**\n\n", r.AreaName, r.ForecastDays)
		fmt.Fprintf(&b, "- Total: %s kg, biodegradable %s kg (%s%%)\n", analysis.Num(s.TotalWasteKg), analysis.Num(s.TotalBiodegradableKg), analysis.Num(s.BiodegradablePercentage))
		fmt.Fprintf(&b, "- Biogas: %s m³, energy %s kWh, CO₂ offset %s kg\n", analysis.Num(s.TotalBiogasM3), analysis.Num(s.TotalEnergyKWh), analysis.Num(s.CO2OffsetKg))
		writeList(&b, "Recommendations", r.Recommendations)
	case space.Report:
		fmt.Fprintf(&b, "🏛️ **Occupancy forecast for %s (%s, next %d hrs):**\n\n", r.Location, r.SpaceType, r.ForecastHours)
		fmt.Fprintf(&b, "- Now: %.0f%%, average %.0f%%\n", r.CurrentOccupancy*100, r.AverageOccupancy*100)
		fmt.Fprintf(&b, "- Peak %.0f%% at %s, low %.0f%% at %s\n", r.PeakOccupancy*100, r.PeakTime, r.LowOccupancy*100, r.LowTime)
		writeList(&b, "Recommendations", r.Recommendations)
	default:
		fmt.Fprintf(&b, "%s: %s", res.Domain, res.Headline)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, it)
	}
}
