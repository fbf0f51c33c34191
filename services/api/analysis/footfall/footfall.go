// Package footfall detects pedestrian clog points and pedestrian-vehicle
// conflicts across campus corridors.
package footfall

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

const (
	ZoneAll = "all"

	clogThreshold     = 0.85
	criticalThreshold = 1.0
	conflictThreshold = 0.7
	conflictPenalty   = 5

	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Period is a time-of-day band with its share of peak capacity.
type Period struct {
	Label      string
	Multiplier float64
}

var periods = map[string]Period{
	"morning":   {"morning", 0.95},
	"afternoon": {"afternoon", 0.70},
	"evening":   {"evening", 0.85},
	"night":     {"night", 0.10},
}

// PeriodAt buckets an hour: morning 6-11, afternoon 12-16, evening 17-20,
// night otherwise.
func PeriodAt(t time.Time) Period {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return periods["morning"]
	case h >= 12 && h < 17:
		return periods["afternoon"]
	case h >= 17 && h < 21:
		return periods["evening"]
	default:
		return periods["night"]
	}
}

// ParsePeriod resolves a time-of-day label.
func ParsePeriod(label string) (Period, error) {
	p, ok := periods[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return Period{}, analysis.Invalid("time_of_day", label, "must be morning, afternoon, evening or night")
	}
	return p, nil
}

// Options tune an analysis. An empty TimeOfDay uses the clock.
type Options struct {
	TimeOfDay string
}

// Observation is a corridor's measured flow.
type Observation struct {
	CurrentPPH int
	Direction  string
}

// Source observes flow in a zone for the given period.
type Source interface {
	Observe(ctx context.Context, zone registry.FootfallZone, period Period) (Observation, error)
}

// Location is a map coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ZoneDetail is the per-corridor breakdown.
type ZoneDetail struct {
	Zone          string   `json:"zone"`
	Name          string   `json:"name"`
	CurrentPPH    int      `json:"current_pph"`
	CapacityPPH   int      `json:"capacity_pph"`
	Utilization   float64  `json:"utilization"`
	FlowDirection string   `json:"flow_direction"`
	Conflict      bool     `json:"pedestrian_vehicular_conflict"`
	ConflictType  *string  `json:"conflict_type"`
	IsClogPoint   bool     `json:"is_clog_point"`
	Location      Location `json:"location"`
}

// ClogPoint is a corridor over the clog threshold.
type ClogPoint struct {
	Zone         string  `json:"zone"`
	Name         string  `json:"name"`
	Severity     string  `json:"severity"`
	Utilization  float64 `json:"utilization"`
	ConflictType *string `json:"conflict_type"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

// Report is the footfall result.
type Report struct {
	Zone                      string       `json:"zone"`
	ProfileFallback           bool         `json:"profile_fallback"`
	Timestamp                 string       `json:"timestamp"`
	TimeOfDay                 string       `json:"time_of_day"`
	ZonesAnalyzed             int          `json:"zones_analyzed"`
	FlowScore                 float64      `json:"flow_score"`
	FlowGrade                 string       `json:"flow_grade"`
	ClogPointsDetected        int          `json:"clog_points_detected"`
	ClogPoints                []ClogPoint  `json:"clog_points"`
	ZoneDetails               []ZoneDetail `json:"zone_details"`
	Recommendations           []string     `json:"recommendations"`
	InfrastructureSuggestions []string     `json:"infrastructure_suggestions"`
}

// Analyzer runs the footfall pipeline.
type Analyzer struct {
	env    analysis.Env
	source Source
}

func New(env analysis.Env, source Source) *Analyzer {
	return &Analyzer{env: env, source: source}
}

// Analyze inspects one zone, or every zone for "all". Unknown zones follow
// the fallback policy and widen to every zone.
func (a *Analyzer) Analyze(ctx context.Context, zoneID string, opts Options) (Report, error) {
	now := a.env.Now()
	period := PeriodAt(now)
	if opts.TimeOfDay != "" {
		p, err := ParsePeriod(opts.TimeOfDay)
		if err != nil {
			return Report{}, err
		}
		period = p
	}

	zones := a.env.Registry.FootfallZones()
	fallback := false
	if zoneID == "" {
		zoneID = ZoneAll
	}
	if zoneID != ZoneAll {
		z, ok := a.env.Registry.FootfallZone(zoneID)
		if ok {
			zones = []registry.FootfallZone{z}
		} else {
			if err := a.env.Fallback("footfall zone", zoneID, ZoneAll); err != nil {
				return Report{}, err
			}
			fallback = true
		}
	}

	flows := make([]Flow, 0, len(zones))
	for _, z := range zones {
		obs, err := a.source.Observe(ctx, z, period)
		if err != nil {
			return Report{}, fmt.Errorf("footfall for %s: %w", z.ID, err)
		}
		flows = append(flows, Score(z, obs))
	}

	return Assemble(Input{
		Zone:     zoneID,
		Fallback: fallback,
		At:       now,
		Period:   period,
		Flows:    flows,
	}), nil
}

// Flow is a scored corridor.
type Flow struct {
	Zone        registry.FootfallZone
	Observation Observation
	Utilization float64
	Clog        bool
	Severity    string
	Conflict    bool
}

// Score classifies one observation against its zone's capacity.
func Score(zone registry.FootfallZone, obs Observation) Flow {
	util := float64(obs.CurrentPPH) / float64(zone.CapacityPPH)
	f := Flow{
		Zone:        zone,
		Observation: obs,
		Utilization: util,
		Clog:        util > clogThreshold,
		Conflict:    zone.Shared && util > conflictThreshold,
	}
	if f.Clog {
		f.Severity = SeverityHigh
		if util > criticalThreshold {
			f.Severity = SeverityCritical
		}
	}
	return f
}

// FlowScore starts at 100, loses a point per percentage point of utilization
// above the clog threshold and a fixed penalty per conflict.
func FlowScore(flows []Flow) float64 {
	penalties := make([]float64, 0, len(flows))
	for _, f := range flows {
		penalties = append(penalties, math.Max(0, f.Utilization-clogThreshold)*100)
		if f.Conflict {
			penalties = append(penalties, conflictPenalty)
		}
	}
	return analysis.Round(analysis.PenaltyScore(100, penalties...), 1)
}

// Input is everything Assemble needs.
type Input struct {
	Zone     string
	Fallback bool
	At       time.Time
	Period   Period
	Flows    []Flow
}

// Assemble builds the report from scored flows.
func Assemble(in Input) Report {
	clogs := make([]ClogPoint, 0)
	details := make([]ZoneDetail, 0, len(in.Flows))
	for _, f := range in.Flows {
		var conflictType *string
		if f.Conflict && f.Zone.ConflictType != "" {
			ct := f.Zone.ConflictType
			conflictType = &ct
		}
		util := analysis.Round(f.Utilization, 2)
		if f.Clog {
			clogs = append(clogs, ClogPoint{
				Zone:         f.Zone.ID,
				Name:         f.Zone.Name,
				Severity:     f.Severity,
				Utilization:  util,
				ConflictType: conflictType,
				Lat:          f.Zone.Lat,
				Lng:          f.Zone.Lon,
			})
		}
		details = append(details, ZoneDetail{
			Zone:          f.Zone.ID,
			Name:          f.Zone.Name,
			CurrentPPH:    f.Observation.CurrentPPH,
			CapacityPPH:   f.Zone.CapacityPPH,
			Utilization:   util,
			FlowDirection: f.Observation.Direction,
			Conflict:      f.Conflict,
			ConflictType:  conflictType,
			IsClogPoint:   f.Clog,
			Location:      Location{Lat: f.Zone.Lat, Lng: f.Zone.Lon},
		})
	}

	score := FlowScore(in.Flows)
	return Report{
		Zone:                      in.Zone,
		ProfileFallback:           in.Fallback,
		Timestamp:                 in.At.UTC().Format(time.RFC3339),
		TimeOfDay:                 in.Period.Label,
		ZonesAnalyzed:             len(in.Flows),
		FlowScore:                 score,
		FlowGrade:                 analysis.GradeFor(score).Letter,
		ClogPointsDetected:        len(clogs),
		ClogPoints:                clogs,
		ZoneDetails:               details,
		Recommendations:           Recommend(clogs),
		InfrastructureSuggestions: Infrastructure(in.Flows),
	}
}
