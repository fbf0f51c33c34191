package space

import (
	"math"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

// Forecast is one predicted hour before rounding.
type Forecast struct {
	At    time.Time
	Value float64
}

// Model turns a history window into an hourly forecast starting at start.
type Model interface {
	Name() string
	Forecast(history []Feature, start time.Time, hours int) []Forecast
}

// SeasonalModel blends the mean occupancy seen at the same hour of day with
// the calendar baseline for the target hour, shifted by the location
// embedding. Output is clipped to [0, 1].
type SeasonalModel struct {
	HistoryWeight float64
}

// NewSeasonalModel weights history 0.6 against the baseline.
func NewSeasonalModel() SeasonalModel {
	return SeasonalModel{HistoryWeight: 0.6}
}

func (SeasonalModel) Name() string { return "seasonal-profile" }

func (m SeasonalModel) Forecast(history []Feature, start time.Time, hours int) []Forecast {
	sums := make(map[int]float64, 24)
	counts := make(map[int]int, 24)
	var emb float64
	if len(history) > 0 {
		emb = history[0].Embedding
	}
	for _, f := range history {
		sums[f.At.Hour()] += f.Occupancy
		counts[f.At.Hour()]++
	}

	out := make([]Forecast, hours)
	for i := range out {
		t := start.Add(time.Duration(i) * time.Hour)
		base := Baseline(t)
		seasonal := base
		if n := counts[t.Hour()]; n > 0 {
			seasonal = sums[t.Hour()] / float64(n)
		}
		v := m.HistoryWeight*seasonal + (1-m.HistoryWeight)*base + (emb-0.5)*0.1
		out[i] = Forecast{At: t, Value: analysis.Clamp(v, 0, 1)}
	}
	return out
}

// Confidence is one minus the mean absolute gap between observed history and
// the calendar baseline, clamped to [0, 1].
func Confidence(history []Feature) float64 {
	if len(history) == 0 {
		return 0
	}
	var gap float64
	for _, f := range history {
		gap += math.Abs(f.Occupancy - Baseline(f.At))
	}
	return analysis.Round(analysis.Clamp(1-gap/float64(len(history)), 0, 1), 2)
}
