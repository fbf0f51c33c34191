package space

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Feature is one engineered history row.
type Feature struct {
	At        time.Time
	HourSin   float64
	HourCos   float64
	DaySin    float64
	DayCos    float64
	Weekend   float64
	Peak      float64
	Occupancy float64
	Embedding float64
}

// IsPeak reports whether t falls in teaching hours (08:00-18:59).
func IsPeak(t time.Time) bool {
	h := t.Hour()
	return h >= 8 && h <= 18
}

// IsWeekend reports whether t is on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// Baseline is the calendar-only expected occupancy at t.
func Baseline(t time.Time) float64 {
	return 0.7*flag(IsPeak(t))*(1-0.3*flag(IsWeekend(t))) + 0.1
}

// Embedding maps a location and space type to one of ten buckets in [0, 0.9].
func Embedding(location, spaceType string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(location + spaceType))
	return float64(h.Sum32()%10) / 10
}

// NewFeature encodes t with the given observed occupancy.
func NewFeature(t time.Time, occupancy, embedding float64) Feature {
	hour := float64(t.Hour())
	day := float64((int(t.Weekday()) + 6) % 7) // Monday = 0
	return Feature{
		At:        t,
		HourSin:   math.Sin(2 * math.Pi * hour / 24),
		HourCos:   math.Cos(2 * math.Pi * hour / 24),
		DaySin:    math.Sin(2 * math.Pi * day / 7),
		DayCos:    math.Cos(2 * math.Pi * day / 7),
		Weekend:   flag(IsWeekend(t)),
		Peak:      flag(IsPeak(t)),
		Occupancy: occupancy,
		Embedding: embedding,
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Simulator synthesizes a history window: calendar baseline plus Gaussian
// jitter (stddev 0.05).
type Simulator struct {
	noise signal.Noise
}

func NewSimulator(noise signal.Noise) *Simulator {
	return &Simulator{noise: noise}
}

func (s *Simulator) History(_ context.Context, location, spaceType string, now time.Time) ([]Feature, error) {
	emb := Embedding(location, spaceType)
	out := make([]Feature, 0, HistoryHours)
	for i := HistoryHours; i >= 1; i-- {
		t := now.Add(-time.Duration(i) * time.Hour)
		occ := Baseline(t) + s.noise.Normal(0, 0.05)
		out = append(out, NewFeature(t, occ, emb))
	}
	return out, nil
}
