// Package parking reports current and forecast slot availability per lot.
package parking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

const (
	LotAll = "all"

	DefaultForecastHours = 2
	MaxForecastHours     = 24

	StatusFull      = "FULL"
	StatusBusy      = "BUSY"
	StatusAvailable = "AVAILABLE"

	fullBelow     = 10
	busyFraction  = 0.2
	peakRate      = 0.85
	offPeakRate   = 0.35
	forecastPeak  = 0.80
	forecastOff   = 0.30
	fullPenalty   = 25
	busyPenalty   = 10
	evOccupancy   = 0.7
	forecastClock = "15:04"
)

// IsPeak reports weekday hours 08:00-18:59.
func IsPeak(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday && t.Hour() >= 8 && t.Hour() <= 18
}

// Options tune an availability query. Zero ForecastHours means the default.
type Options struct {
	ForecastHours int
	// At overrides the evaluation instant; zero means the configured clock.
	At time.Time
}

// Source reports how many slots of a lot are occupied at t.
type Source interface {
	Occupied(ctx context.Context, lot registry.ParkingLot, at time.Time) (int, error)
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ForecastPoint is the expected availability some hours ahead.
type ForecastPoint struct {
	Time               string  `json:"time"`
	PredictedAvailable int     `json:"predicted_available"`
	OccupancyRate      float64 `json:"occupancy_rate"`
}

// LotStatus is one lot's current state and short-term forecast.
type LotStatus struct {
	Lot              string          `json:"lot"`
	LotName          string          `json:"lot_name"`
	Capacity         int             `json:"capacity"`
	CurrentOccupied  int             `json:"current_occupied"`
	CurrentAvailable int             `json:"current_available"`
	OccupancyRate    float64         `json:"occupancy_rate"`
	Status           string          `json:"status"`
	Location         Location        `json:"location"`
	Forecast         []ForecastPoint `json:"forecast"`
}

// CampusSummary aggregates the queried lots.
type CampusSummary struct {
	TotalCapacity     int     `json:"total_capacity"`
	TotalAvailable    int     `json:"total_available"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	AvailabilityScore float64 `json:"availability_score"`
	AvailabilityGrade string  `json:"availability_grade"`
}

// Report is the parking result.
type Report struct {
	Lot             string        `json:"lot"`
	ProfileFallback bool          `json:"profile_fallback"`
	Timestamp       string        `json:"timestamp"`
	ForecastHours   int           `json:"forecast_hours"`
	CampusSummary   CampusSummary `json:"campus_summary"`
	Lots            []LotStatus   `json:"lots"`
	Recommendations []string      `json:"recommendations"`
}

// Analyzer runs the parking pipeline.
type Analyzer struct {
	env    analysis.Env
	source Source
}

func New(env analysis.Env, source Source) *Analyzer {
	return &Analyzer{env: env, source: source}
}

// Analyze reports one lot, or every lot for "all". Unknown lots follow the
// fallback policy and widen to every lot.
func (a *Analyzer) Analyze(ctx context.Context, lotID string, opts Options) (Report, error) {
	hours := opts.ForecastHours
	if hours == 0 {
		hours = DefaultForecastHours
	}
	if err := analysis.CheckRange("forecast_hours", hours, 1, MaxForecastHours); err != nil {
		return Report{}, err
	}

	lots := a.env.Registry.ParkingLots()
	fallback := false
	lotID = strings.TrimSpace(lotID)
	if lotID == "" {
		lotID = LotAll
	}
	if !strings.EqualFold(lotID, LotAll) {
		lot, ok := a.lookup(lotID)
		if ok {
			lots = []registry.ParkingLot{lot}
			lotID = lot.ID
		} else {
			if err := a.env.Fallback("parking lot", lotID, LotAll); err != nil {
				return Report{}, err
			}
			fallback = true
		}
	} else {
		lotID = LotAll
	}

	now := opts.At
	if now.IsZero() {
		now = a.env.Now()
	}
	statuses := make([]LotStatus, 0, len(lots))
	for _, lot := range lots {
		occ, err := a.source.Occupied(ctx, lot, now)
		if err != nil {
			return Report{}, fmt.Errorf("occupancy for %s: %w", lot.ID, err)
		}
		statuses = append(statuses, Status(lot, occ, Forecast(lot, now, hours)))
	}

	return Assemble(Input{
		Lot:      lotID,
		Fallback: fallback,
		At:       now,
		Hours:    hours,
		Lots:     statuses,
	}), nil
}

func (a *Analyzer) lookup(id string) (registry.ParkingLot, bool) {
	if lot, ok := a.env.Registry.ParkingLot(id); ok {
		return lot, true
	}
	return a.env.Registry.ParkingLot(strings.ToUpper(id))
}

// Status classifies a lot from its occupied slot count, clamped to capacity.
func Status(lot registry.ParkingLot, occupied int, forecast []ForecastPoint) LotStatus {
	occupied = max(0, min(lot.Capacity, occupied))
	available := lot.Capacity - occupied
	status := StatusAvailable
	switch {
	case available < fullBelow:
		status = StatusFull
	case float64(available) < float64(lot.Capacity)*busyFraction:
		status = StatusBusy
	}
	rate := 0.0
	if lot.Capacity > 0 {
		rate = analysis.Round(float64(occupied)/float64(lot.Capacity), 3)
	}
	return LotStatus{
		Lot:              lot.ID,
		LotName:          lot.Name,
		Capacity:         lot.Capacity,
		CurrentOccupied:  occupied,
		CurrentAvailable: available,
		OccupancyRate:    rate,
		Status:           status,
		Location:         Location{Lat: lot.Lat, Lng: lot.Lon},
		Forecast:         forecast,
	}
}

// Forecast projects availability for each of the next hours using the
// peak/off-peak occupancy rates of the hour in question.
func Forecast(lot registry.ParkingLot, now time.Time, hours int) []ForecastPoint {
	out := make([]ForecastPoint, 0, hours)
	for h := 1; h <= hours; h++ {
		at := now.Add(time.Duration(h) * time.Hour)
		rate := forecastOff
		if IsPeak(at) {
			rate = forecastPeak
		}
		out = append(out, ForecastPoint{
			Time:               at.Format(forecastClock),
			PredictedAvailable: lot.Capacity - int(float64(lot.Capacity)*rate),
			OccupancyRate:      rate,
		})
	}
	return out
}

// Summarize totals the lots and scores overall availability.
func Summarize(lots []LotStatus) CampusSummary {
	var s CampusSummary
	penalties := make([]float64, 0, len(lots))
	for _, l := range lots {
		s.TotalCapacity += l.Capacity
		s.TotalAvailable += l.CurrentAvailable
		switch l.Status {
		case StatusFull:
			penalties = append(penalties, fullPenalty)
		case StatusBusy:
			penalties = append(penalties, busyPenalty)
		}
	}
	if s.TotalCapacity > 0 {
		s.OccupancyRate = analysis.Round(1-float64(s.TotalAvailable)/float64(s.TotalCapacity), 3)
	}
	s.AvailabilityScore = analysis.PenaltyScore(100, penalties...)
	s.AvailabilityGrade = analysis.GradeFor(s.AvailabilityScore).Letter
	return s
}

// Input is everything Assemble needs.
type Input struct {
	Lot      string
	Fallback bool
	At       time.Time
	Hours    int
	Lots     []LotStatus
}

// Assemble builds the report.
func Assemble(in Input) Report {
	summary := Summarize(in.Lots)
	return Report{
		Lot:             in.Lot,
		ProfileFallback: in.Fallback,
		Timestamp:       in.At.UTC().Format(time.RFC3339),
		ForecastHours:   in.Hours,
		CampusSummary:   summary,
		Lots:            append([]LotStatus{}, in.Lots...),
		Recommendations: Recommend(in.Lots, summary),
	}
}
