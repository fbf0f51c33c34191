// Package water scores drinking and utility water quality per supply zone.
package water

import (
	"context"
	"fmt"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

const (
	SourceSimulated = "simulated"
	SourceOverride  = "override"

	parameterOK         = "OK"
	parameterOutOfRange = "OUT_OF_RANGE"

	criticalPenalty = 15
	warningPenalty  = 7
)

// Options tune a single analysis. Sensors, when non-empty, replaces the
// simulated readings entirely.
type Options struct {
	Sensors signal.Sample
}

// Source produces the readings for a zone.
type Source interface {
	Readings(ctx context.Context, zone registry.WaterZone) (signal.Sample, error)
}

// Report is the water quality result for one zone.
type Report struct {
	Zone                        string             `json:"zone"`
	ZoneName                    string             `json:"zone_name"`
	Timestamp                   string             `json:"timestamp"`
	ProfileFallback             bool               `json:"profile_fallback"`
	SensorSource                string             `json:"sensor_source"`
	DetectionMode               string             `json:"detection_mode"`
	SensorReadings              map[string]float64 `json:"sensor_readings"`
	QualityScore                float64            `json:"quality_score"`
	QualityGrade                string             `json:"quality_grade"`
	QualityLabel                string             `json:"quality_label"`
	AnomaliesDetected           int                `json:"anomalies_detected"`
	Anomalies                   []analysis.Anomaly `json:"anomalies"`
	StatisticalOutliers         []Outlier          `json:"statistical_outliers"`
	ParameterStatus             map[string]string  `json:"parameter_status"`
	TreatmentRecommendations    []string           `json:"treatment_recommendations"`
	InstallationRecommendations []string           `json:"installation_recommendations"`
	RiskLevel                   string             `json:"risk_level"`
}

// Analyzer runs the water pipeline.
type Analyzer struct {
	env        analysis.Env
	source     Source
	detector   Detector
	thresholds []analysis.Threshold
}

// New wires an analyzer. The detector is fixed for the analyzer's lifetime.
func New(env analysis.Env, source Source, detector Detector) *Analyzer {
	return &Analyzer{
		env:        env,
		source:     source,
		detector:   detector,
		thresholds: Thresholds(env.Registry.WaterParameters()),
	}
}

// Thresholds converts registry parameters to classifier thresholds.
func Thresholds(params []registry.WaterParameter) []analysis.Threshold {
	out := make([]analysis.Threshold, 0, len(params))
	for _, p := range params {
		out = append(out, analysis.Threshold{Parameter: p.Name, Min: p.Min, Max: p.Max})
	}
	return out
}

// Analyze scores the zone. Unknown zones follow the fallback policy and are
// simulated as a nominal supply.
func (a *Analyzer) Analyze(ctx context.Context, zoneID string, opts Options) (Report, error) {
	zone, ok := a.env.Registry.WaterZone(zoneID)
	fallback := false
	if !ok {
		if err := a.env.Fallback("water zone", zoneID, "nominal supply"); err != nil {
			return Report{}, err
		}
		zone = registry.WaterZone{ID: zoneID, Name: zoneID}
		fallback = true
	}

	source := SourceSimulated
	var readings signal.Sample
	if len(opts.Sensors) > 0 {
		source = SourceOverride
		readings = opts.Sensors.Clone()
	} else {
		var err error
		readings, err = a.source.Readings(ctx, zone)
		if err != nil {
			return Report{}, fmt.Errorf("water readings for %s: %w", zone.ID, err)
		}
	}

	detection := a.detector.Detect(readings)

	return Assemble(Input{
		Zone:       zone,
		At:         a.env.Now(),
		Fallback:   fallback,
		Source:     source,
		Mode:       a.detector.Mode(),
		Readings:   readings,
		Thresholds: a.thresholds,
		Detection:  detection,
		Score:      Score(detection.Anomalies),
		Treatment:  Treatment(readings, detection.Anomalies),
	}), nil
}

// Score applies the per-severity penalties to a 0-100 scale.
func Score(anomalies []analysis.Anomaly) float64 {
	counts := analysis.CountBySeverity(anomalies)
	penalty := float64(counts[analysis.SeverityCritical]*criticalPenalty + counts[analysis.SeverityWarning]*warningPenalty)
	return analysis.Round(analysis.PenaltyScore(100, penalty), 1)
}

// Input is everything Assemble needs.
type Input struct {
	Zone       registry.WaterZone
	At         time.Time
	Fallback   bool
	Source     string
	Mode       string
	Readings   signal.Sample
	Thresholds []analysis.Threshold
	Detection  Detection
	Score      float64
	Treatment  []string
}

// Assemble builds the report. It is pure: identical inputs give identical
// reports.
func Assemble(in Input) Report {
	readings := make(map[string]float64, len(in.Readings))
	for k, v := range in.Readings {
		readings[k] = analysis.Round(v, 3)
	}

	status := make(map[string]string, len(in.Thresholds))
	for _, th := range in.Thresholds {
		v, ok := in.Readings[th.Parameter]
		if !ok {
			continue
		}
		if th.Contains(v) {
			status[th.Parameter] = parameterOK
		} else {
			status[th.Parameter] = parameterOutOfRange
		}
	}

	outliers := in.Detection.Outliers
	if outliers == nil {
		outliers = []Outlier{}
	}

	grade := analysis.GradeFor(in.Score)
	return Report{
		Zone:                        in.Zone.ID,
		ZoneName:                    in.Zone.Name,
		Timestamp:                   in.At.UTC().Format(time.RFC3339),
		ProfileFallback:             in.Fallback,
		SensorSource:                in.Source,
		DetectionMode:               in.Mode,
		SensorReadings:              readings,
		QualityScore:                in.Score,
		QualityGrade:                grade.Letter,
		QualityLabel:                grade.Label,
		AnomaliesDetected:           len(in.Detection.Anomalies),
		Anomalies:                   append([]analysis.Anomaly{}, in.Detection.Anomalies...),
		StatisticalOutliers:         append([]Outlier{}, outliers...),
		ParameterStatus:             status,
		TreatmentRecommendations:    append([]string{}, in.Treatment...),
		InstallationRecommendations: Installation(),
		RiskLevel:                   analysis.RiskTier(len(in.Detection.Anomalies)),
	}
}
