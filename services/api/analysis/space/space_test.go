package space

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/logger"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Monday 09:20 UTC.
var testNow = time.Date(2024, 5, 6, 9, 20, 0, 0, time.UTC)

func newAnalyzer(noise signal.Noise, policy registry.FallbackPolicy) *Analyzer {
	env := analysis.Env{
		Registry: registry.Default(),
		Policy:   policy,
		Clock:    signal.FixedClock(testNow),
		Log:      logger.Discard(),
	}
	return New(env, NewSimulator(noise), NewSeasonalModel())
}

func TestForecastLengthAndBounds(t *testing.T) {
	a := newAnalyzer(signal.NewSeeded(11), registry.FallbackDefault)

	for _, loc := range []string{"Block A", "Library", "Hostel 3"} {
		for _, h := range []int{1, 6, 24, 72, MaxHours} {
			r, err := a.Analyze(context.Background(), loc, Options{Hours: h, SpaceType: "classroom"})
			if err != nil {
				t.Fatalf("%s/%d: %v", loc, h, err)
			}
			if len(r.HourlyForecast) != h || r.ForecastHours != h {
				t.Fatalf("%s/%d: got %d entries", loc, h, len(r.HourlyForecast))
			}
			for _, p := range r.HourlyForecast {
				if p.Occupancy < 0 || p.Occupancy > 1 {
					t.Fatalf("%s/%d: occupancy %v out of bounds", loc, h, p.Occupancy)
				}
			}
			if r.ModelConfidence < 0 || r.ModelConfidence > 1 {
				t.Fatalf("confidence %v", r.ModelConfidence)
			}
		}
	}
}

func TestForecastIsClippedUnderExtremeNoise(t *testing.T) {
	high := newAnalyzer(signal.Fixed{Z: 40}, registry.FallbackDefault)
	r, err := high.Analyze(context.Background(), "Auditorium", Options{Hours: 12})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range r.HourlyForecast {
		if p.Occupancy != 1 {
			t.Fatalf("expected clip to 1, got %v", p.Occupancy)
		}
	}

	low := newAnalyzer(signal.Fixed{Z: -40}, registry.FallbackDefault)
	r, err = low.Analyze(context.Background(), "Auditorium", Options{Hours: 12})
	if err != nil {
		t.Fatal(err)
	}
	if r.LowOccupancy != 0 || r.PeakOccupancy != 0 {
		t.Fatalf("expected clip to 0, got low=%v peak=%v", r.LowOccupancy, r.PeakOccupancy)
	}
}

func TestForecastStatistics(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, registry.FallbackDefault).
		Analyze(context.Background(), "Lab 2", Options{Hours: 24, SpaceType: "lab"})
	if err != nil {
		t.Fatal(err)
	}

	if r.HourlyForecast[0].Time != "2024-05-06 09:00" {
		t.Fatalf("first slot = %s", r.HourlyForecast[0].Time)
	}
	if r.CurrentOccupancy != r.HourlyForecast[0].Occupancy {
		t.Fatalf("current %v != first %v", r.CurrentOccupancy, r.HourlyForecast[0].Occupancy)
	}

	var peak, low = r.HourlyForecast[0], r.HourlyForecast[0]
	for _, p := range r.HourlyForecast {
		if p.Occupancy > peak.Occupancy {
			peak = p
		}
		if p.Occupancy < low.Occupancy {
			low = p
		}
	}
	if r.PeakTime != peak.Time || r.LowTime != low.Time {
		t.Fatalf("peak %s/%s low %s/%s", r.PeakTime, peak.Time, r.LowTime, low.Time)
	}
	// Weekend history drags today's teaching hours below tomorrow's 08:00,
	// and every night slot ties, so the first one is the low.
	if r.PeakTime != "2024-05-07 08:00" || r.LowTime != "2024-05-06 19:00" {
		t.Fatalf("peak=%s low=%s", r.PeakTime, r.LowTime)
	}
}

func TestValidation(t *testing.T) {
	a := newAnalyzer(signal.Fixed{}, registry.FallbackDefault)
	for _, tc := range []struct {
		loc  string
		opts Options
	}{
		{"Block A", Options{Hours: -1}},
		{"Block A", Options{Hours: MaxHours + 1}},
		{"  ", Options{}},
	} {
		if _, err := a.Analyze(context.Background(), tc.loc, tc.opts); !errors.Is(err, analysis.ErrInvalidOption) {
			t.Errorf("%q %+v: err = %v", tc.loc, tc.opts, err)
		}
	}

	r, err := a.Analyze(context.Background(), "Block A", Options{})
	if err != nil || r.ForecastHours != DefaultHours || r.SpaceType != SpaceTypeAll {
		t.Fatalf("defaults: %+v %v", r, err)
	}
}

func TestUnknownSpaceTypePolicy(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, registry.FallbackDefault).
		Analyze(context.Background(), "Roof", Options{SpaceType: "rooftop"})
	if err != nil {
		t.Fatal(err)
	}
	if !r.ProfileFallback || r.SpaceType != SpaceTypeAll {
		t.Fatalf("fallback = %v type = %s", r.ProfileFallback, r.SpaceType)
	}

	_, err = newAnalyzer(signal.Fixed{}, registry.FallbackStrict).
		Analyze(context.Background(), "Roof", Options{SpaceType: "rooftop"})
	if !errors.Is(err, registry.ErrUnknownZone) {
		t.Fatalf("strict err = %v", err)
	}
}

func TestRecommendRules(t *testing.T) {
	busy := Recommend(Stats{PeakVal: 0.95, Average: 0.8}, "parking", "P1")
	if len(busy) != 3 || !strings.Contains(busy[0], "HIGH ALERT: P1 will reach 95%") ||
		!strings.Contains(busy[1], "(80%)") || !strings.Contains(busy[2], "dynamic pricing") {
		t.Fatalf("busy recs = %v", busy)
	}

	idle := Recommend(Stats{PeakVal: 0.3, Average: 0.2}, "lab", "Lab 1")
	if len(idle) != 1 || !strings.Contains(idle[0], "Underutilized") {
		t.Fatalf("idle recs = %v", idle)
	}

	calm := Recommend(Stats{PeakVal: 0.6, Average: 0.5}, "library", "Central")
	if len(calm) != 1 || !strings.Contains(calm[0], "normal range") {
		t.Fatalf("calm recs = %v", calm)
	}

	if !reflect.DeepEqual(Recommend(Stats{PeakVal: 0.95}, "lab", "x"), Recommend(Stats{PeakVal: 0.95}, "lab", "x")) {
		t.Fatalf("recommendations not deterministic")
	}
}

func TestEmbeddingAndBaseline(t *testing.T) {
	e := Embedding("Block A", "classroom")
	if e < 0 || e > 0.9 || e != Embedding("Block A", "classroom") {
		t.Fatalf("embedding = %v", e)
	}

	weekdayPeak := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	weekendPeak := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	night := time.Date(2024, 5, 6, 2, 0, 0, 0, time.UTC)
	if got := Baseline(weekdayPeak); analysis.Round(got, 3) != 0.8 {
		t.Fatalf("weekday peak = %v", got)
	}
	if got := Baseline(weekendPeak); analysis.Round(got, 3) != 0.59 {
		t.Fatalf("weekend peak = %v", got)
	}
	if got := Baseline(night); got != 0.1 {
		t.Fatalf("night = %v", got)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	forecast := NewSeasonalModel().Forecast(nil, testNow.Truncate(time.Hour), 5)
	in := Input{Location: "x", SpaceType: "lab", At: testNow, Model: "m", Forecast: forecast, Stats: Summarize(forecast), Recs: []string{"a"}}

	a, _ := json.Marshal(Assemble(in))
	b, _ := json.Marshal(Assemble(in))
	if string(a) != string(b) {
		t.Fatalf("not idempotent")
	}
}
