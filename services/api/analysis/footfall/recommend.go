package footfall

import (
	"fmt"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

const maxClogLines = 3

var clogRules = []analysis.Rule[[]ClogPoint]{
	{
		When: func(c []ClogPoint) bool { return len(c) > 0 },
		Say: func(clogs []ClogPoint) []string {
			n := min(len(clogs), maxClogLines)
			out := make([]string, 0, n)
			for _, cp := range clogs[:n] {
				conflict := "High density"
				if cp.ConflictType != nil {
					conflict = *cp.ConflictType
				}
				out = append(out, fmt.Sprintf("🚨 %s is at %.0f%% capacity (%s). Conflict: %s.",
					cp.Name, cp.Utilization*100, cp.Severity, conflict))
			}
			return out
		},
	},
}

// Recommend lists the worst clog points in detection order.
func Recommend(clogs []ClogPoint) []string {
	return analysis.Recommend(clogs, clogRules, "✅ No critical clog points detected at this time.")
}

var infraRules = []analysis.Rule[[]Flow]{
	{
		When: func(flows []Flow) bool {
			for _, f := range flows {
				if f.Conflict && strings.Contains(strings.ToLower(f.Zone.ConflictType), "crossing") {
					return true
				}
			}
			return false
		},
		Say: analysis.Line(func(flows []Flow) string {
			n := 0
			for _, f := range flows {
				if f.Conflict {
					n++
				}
			}
			return fmt.Sprintf("🛤️ Install dedicated pedestrian skywalks or underpasses at %d conflict zone(s).", n)
		}),
	},
	{
		Say: func([]Flow) []string {
			return []string{
				"🚦 Deploy AI-adaptive traffic signals that detect pedestrian density and adjust cycles.",
				"🚶 Create segregated pedestrian corridors (bollards + signage) on shared roads.",
				"📱 Mobile app with real-time crowd density maps to encourage route diversification.",
				"🏗️ Widen bottleneck corridors near cafeteria and main gate by minimum 2.5m.",
				"🔄 Stagger class timings by 10-15 min to reduce peak corridor load by ~35%.",
				"📡 Install real-time footfall counters at all major junctions for live monitoring.",
			}
		},
	},
}

// Infrastructure lists longer-term corridor upgrades.
func Infrastructure(flows []Flow) []string {
	return analysis.Recommend(flows, infraRules, "")
}
