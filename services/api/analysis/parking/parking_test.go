package parking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/logger"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

var (
	mondayMorning = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	sundayNight   = time.Date(2024, 5, 5, 22, 0, 0, 0, time.UTC)
)

func newAnalyzer(noise signal.Noise, now time.Time, policy registry.FallbackPolicy) *Analyzer {
	env := analysis.Env{
		Registry: registry.Default(),
		Policy:   policy,
		Clock:    signal.FixedClock(now),
		Log:      logger.Discard(),
	}
	return New(env, NewSimulator(noise))
}

func TestStatusThresholds(t *testing.T) {
	lot := registry.ParkingLot{ID: "P1", Capacity: 500}
	tests := []struct {
		occupied int
		want     string
	}{
		{495, StatusFull},
		{491, StatusFull},
		{490, StatusBusy},
		{401, StatusBusy},
		{400, StatusAvailable},
		{0, StatusAvailable},
		{600, StatusFull},
	}
	for _, tt := range tests {
		if got := Status(lot, tt.occupied, nil); got.Status != tt.want {
			t.Errorf("occupied %d: status %s, want %s", tt.occupied, got.Status, tt.want)
		}
	}
	if s := Status(lot, 600, nil); s.CurrentAvailable != 0 || s.CurrentOccupied != 500 {
		t.Fatalf("clamp = %+v", s)
	}
}

func TestPeakMorningAllBusy(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, mondayMorning, registry.FallbackDefault).
		Analyze(context.Background(), "all", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Lots) != 4 || r.ForecastHours != DefaultForecastHours {
		t.Fatalf("report = %+v", r)
	}
	for _, l := range r.Lots {
		if l.Status != StatusBusy {
			t.Fatalf("%s status = %s", l.Lot, l.Status)
		}
		if len(l.Forecast) != 2 || l.Forecast[0].Time != "11:00" || l.Forecast[0].OccupancyRate != forecastPeak {
			t.Fatalf("%s forecast = %+v", l.Lot, l.Forecast)
		}
	}
	if r.Lots[0].CurrentOccupied != 425 || r.Lots[0].Forecast[0].PredictedAvailable != 100 {
		t.Fatalf("P1 = %+v", r.Lots[0])
	}

	s := r.CampusSummary
	if s.TotalCapacity != 1150 || s.TotalAvailable != 173 || s.OccupancyRate != 0.85 || s.AvailabilityScore != 60 {
		t.Fatalf("summary = %+v", s)
	}
	if len(r.Recommendations) != 2 || !strings.Contains(r.Recommendations[1], "EV charging") {
		t.Fatalf("recs = %v", r.Recommendations)
	}
}

func TestOffPeakIsHealthy(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, sundayNight, registry.FallbackDefault).
		Analyze(context.Background(), "p2", Options{ForecastHours: 3})
	if err != nil {
		t.Fatal(err)
	}
	if r.Lot != "P2" || len(r.Lots) != 1 || r.ProfileFallback {
		t.Fatalf("report = %+v", r)
	}
	if r.Lots[0].Status != StatusAvailable || len(r.Lots[0].Forecast) != 3 {
		t.Fatalf("lot = %+v", r.Lots[0])
	}
	if r.CampusSummary.AvailabilityScore != 100 {
		t.Fatalf("score = %v", r.CampusSummary.AvailabilityScore)
	}
	if len(r.Recommendations) != 1 || !strings.HasPrefix(r.Recommendations[0], "✅") {
		t.Fatalf("recs = %v", r.Recommendations)
	}
}

func TestExplicitInstantOverridesClock(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, sundayNight, registry.FallbackDefault).
		Analyze(context.Background(), "P1", Options{At: mondayMorning})
	if err != nil {
		t.Fatal(err)
	}
	if r.Lots[0].Status != StatusBusy || r.Lots[0].Forecast[0].Time != "11:00" {
		t.Fatalf("lot = %+v", r.Lots[0])
	}
}

func TestAllFullHasNoAlternatives(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{Z: 20}, mondayMorning, registry.FallbackDefault).
		Analyze(context.Background(), "all", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.CampusSummary.AvailabilityScore != 0 {
		t.Fatalf("score = %v", r.CampusSummary.AvailabilityScore)
	}
	if !strings.Contains(r.Recommendations[0], "P1, P2, P3, P4 are FULL") ||
		!strings.Contains(r.Recommendations[0], "no alternatives") {
		t.Fatalf("recs = %v", r.Recommendations)
	}
}

func TestUnknownLotPolicy(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}, mondayMorning, registry.FallbackDefault).
		Analyze(context.Background(), "P9", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !r.ProfileFallback || len(r.Lots) != 4 {
		t.Fatalf("fallback report = %+v", r)
	}

	_, err = newAnalyzer(signal.Fixed{}, mondayMorning, registry.FallbackStrict).
		Analyze(context.Background(), "P9", Options{})
	if !errors.Is(err, registry.ErrUnknownZone) {
		t.Fatalf("strict err = %v", err)
	}
}

func TestForecastHoursValidation(t *testing.T) {
	a := newAnalyzer(signal.Fixed{}, mondayMorning, registry.FallbackDefault)
	for _, h := range []int{-1, 25} {
		if _, err := a.Analyze(context.Background(), "P1", Options{ForecastHours: h}); !errors.Is(err, analysis.ErrInvalidOption) {
			t.Fatalf("hours %d err = %v", h, err)
		}
	}
}
