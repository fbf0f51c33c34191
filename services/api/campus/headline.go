package campus

import (
	"fmt"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/footfall"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/greenery"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/parking"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/space"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/waste"
	"github.com/02loveslollipop/campus-pulse/services/api/analysis/water"
)

const spaceAlertOccupancy = 0.9

// Headline is the one number a dashboard tile shows for a report, with the
// count of things that need attention.
type Headline struct {
	Metric     string         `json:"metric"`
	Value      float64        `json:"value"`
	Status     string         `json:"status"`
	Alerts     int            `json:"alerts"`
	Fallback   bool           `json:"profile_fallback"`
	Severities map[string]int `json:"-"`
}

func (h Headline) String() string {
	return fmt.Sprintf("%s=%s (%s, %d alerts)", h.Metric, analysis.Num(h.Value), h.Status, h.Alerts)
}

// HeadlineOf extracts the headline from any analyzer report.
func HeadlineOf(report any) Headline {
	switch r := report.(type) {
	case space.Report:
		n := 0
		for _, p := range r.HourlyForecast {
			if p.Occupancy > spaceAlertOccupancy {
				n++
			}
		}
		return Headline{Metric: "peak_occupancy", Value: r.PeakOccupancy, Status: "peak " + r.PeakTime, Alerts: n, Fallback: r.ProfileFallback}
	case footfall.Report:
		sev := map[string]int{}
		for _, c := range r.ClogPoints {
			sev[c.Severity]++
		}
		return Headline{Metric: "flow_score", Value: r.FlowScore, Status: r.FlowGrade, Alerts: r.ClogPointsDetected, Fallback: r.ProfileFallback, Severities: sev}
	case water.Report:
		sev := map[string]int{}
		for _, a := range r.Anomalies {
			sev[string(a.Severity)]++
		}
		return Headline{Metric: "quality_score", Value: r.QualityScore, Status: r.RiskLevel, Alerts: r.AnomaliesDetected, Fallback: r.ProfileFallback, Severities: sev}
	case waste.Report:
		n := 0
		for _, c := range r.CollectionSchedule {
			if c.Priority == waste.PriorityHigh {
				n++
			}
		}
		status := "NORMAL"
		if n > 0 {
			status = waste.PriorityHigh
		}
		return Headline{Metric: "total_biogas_m3", Value: r.Summary.TotalBiogasM3, Status: status, Alerts: n, Fallback: r.ProfileFallback}
	case parking.Report:
		n := 0
		for _, l := range r.Lots {
			if l.Status != parking.StatusAvailable {
				n++
			}
		}
		s := r.CampusSummary
		return Headline{Metric: "availability_score", Value: s.AvailabilityScore, Status: s.AvailabilityGrade, Alerts: n, Fallback: r.ProfileFallback}
	case greenery.Report:
		n := 0
		for _, step := range r.SoilImprovementPlan {
			if !strings.HasPrefix(step, "✅") {
				n++
			}
		}
		return Headline{Metric: "expected_co2_absorption_kg_yr", Value: r.ExpectedCO2KgYear, Status: r.SoilQuality, Alerts: n}
	}
	return Headline{Metric: "unknown"}
}
