package water

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

const (
	// ModeAuto prefers statistical detection and degrades to thresholds
	// when baselines are missing. ModeStatistical behaves the same way.
	ModeAuto        = "auto"
	ModeStatistical = "statistical"
	ModeThreshold   = "threshold"

	outlierZ = 3.0
)

// Outlier is a reading far from its baseline, whether or not it breaches a
// threshold.
type Outlier struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
}

// Detection is what a Detector found in one sample.
type Detection struct {
	Anomalies []analysis.Anomaly
	Outliers  []Outlier
}

// Detector finds problems in a sample.
type Detector interface {
	Mode() string
	Detect(sample signal.Sample) Detection
}

// NewDetector picks the detector for mode (ModeAuto, ModeStatistical or
// ModeThreshold). Statistical detection needs a positive stddev for every
// parameter; without one the detector degrades to thresholds.
func NewDetector(mode string, params []registry.WaterParameter, log logrus.FieldLogger) Detector {
	base := thresholdDetector{classifier: analysis.DefaultClassifier(), thresholds: Thresholds(params)}
	if mode == ModeThreshold {
		return base
	}

	for _, p := range params {
		if p.StdDev <= 0 {
			log.WithField("parameter", p.Name).Warn("no baseline spread for water parameter, falling back to threshold detection")
			return base
		}
	}
	return statisticalDetector{thresholdDetector: base, params: params}
}

type thresholdDetector struct {
	classifier analysis.Classifier
	thresholds []analysis.Threshold
}

func (d thresholdDetector) Mode() string { return ModeThreshold }

func (d thresholdDetector) Detect(sample signal.Sample) Detection {
	return Detection{Anomalies: d.classifier.Classify(sample, d.thresholds)}
}

type statisticalDetector struct {
	thresholdDetector
	params []registry.WaterParameter
}

func (d statisticalDetector) Mode() string { return ModeStatistical }

func (d statisticalDetector) Detect(sample signal.Sample) Detection {
	det := d.thresholdDetector.Detect(sample)
	det.Outliers = []Outlier{}
	for _, p := range d.params {
		v, ok := sample[p.Name]
		if !ok {
			continue
		}
		z := (v - p.Mean) / p.StdDev
		if math.Abs(z) > outlierZ {
			det.Outliers = append(det.Outliers, Outlier{
				Parameter: p.Name,
				Value:     analysis.Round(v, 3),
				ZScore:    analysis.Round(z, 2),
			})
		}
	}
	return det
}
