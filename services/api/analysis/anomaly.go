package analysis

import (
	"math"

	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Severity tags an anomaly.
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Threshold is the inclusive acceptable range for one parameter.
type Threshold struct {
	Parameter string  `json:"parameter" yaml:"parameter"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the range, bounds included.
func (t Threshold) Contains(v float64) bool {
	return v >= t.Min && v <= t.Max
}

// Anomaly is a single out-of-range reading.
type Anomaly struct {
	Parameter    string   `json:"parameter"`
	Value        float64  `json:"value"`
	ThresholdMin float64  `json:"threshold_min"`
	ThresholdMax float64  `json:"threshold_max"`
	Deviation    float64  `json:"deviation"`
	Severity     Severity `json:"severity"`
}

// Classifier flags readings outside their thresholds. A reading below
// LowFactor*Min or above HighFactor*Max is CRITICAL, anything else outside
// the range is a WARNING.
type Classifier struct {
	LowFactor  float64
	HighFactor float64
}

// DefaultClassifier uses the 70% / 150% escalation bands.
func DefaultClassifier() Classifier {
	return Classifier{LowFactor: 0.7, HighFactor: 1.5}
}

// Classify checks every threshold present in sample and returns violations in
// threshold order. Parameters missing from the sample are skipped.
func (c Classifier) Classify(sample signal.Sample, thresholds []Threshold) []Anomaly {
	anomalies := make([]Anomaly, 0)
	for _, th := range thresholds {
		v, ok := sample[th.Parameter]
		if !ok || th.Contains(v) {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Parameter:    th.Parameter,
			Value:        Round(v, 3),
			ThresholdMin: th.Min,
			ThresholdMax: th.Max,
			Deviation:    Round(Deviation(v, th), 3),
			Severity:     c.Severity(v, th),
		})
	}
	return anomalies
}

// Severity grades an out-of-range value.
func (c Classifier) Severity(v float64, th Threshold) Severity {
	if v < th.Min*c.LowFactor || v > th.Max*c.HighFactor {
		return SeverityCritical
	}
	return SeverityWarning
}

// Deviation is the distance from v to the nearer bound, zero when inside.
func Deviation(v float64, th Threshold) float64 {
	return math.Max(math.Max(th.Min-v, v-th.Max), 0)
}

// CountBySeverity tallies anomalies per severity.
func CountBySeverity(anomalies []Anomaly) map[Severity]int {
	out := make(map[Severity]int, 2)
	for _, a := range anomalies {
		out[a.Severity]++
	}
	return out
}

// Risk tiers derived from anomaly counts.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// RiskTier maps an anomaly count to a coarse tier.
func RiskTier(anomalies int) string {
	switch {
	case anomalies >= 3:
		return RiskHigh
	case anomalies >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
