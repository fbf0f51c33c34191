// Package space forecasts hourly occupancy for campus spaces.
package space

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

const (
	DefaultHours = 24
	MaxHours     = 168
	HistoryHours = 48
	SpaceTypeAll = "all"
	TimeLayout   = "2006-01-02 15:04"
)

// Options tune a forecast. Zero values take the defaults.
type Options struct {
	Hours     int
	SpaceType string
}

// Source produces the engineered history window ending just before now.
type Source interface {
	History(ctx context.Context, location, spaceType string, now time.Time) ([]Feature, error)
}

// Point is one forecast hour.
type Point struct {
	Time      string  `json:"time"`
	Occupancy float64 `json:"occupancy"`
}

// Report is the occupancy forecast for one location.
type Report struct {
	Location         string   `json:"location"`
	SpaceType        string   `json:"space_type"`
	ProfileFallback  bool     `json:"profile_fallback"`
	GeneratedAt      string   `json:"generated_at"`
	ForecastHours    int      `json:"forecast_hours"`
	Model            string   `json:"model"`
	ModelConfidence  float64  `json:"model_confidence"`
	CurrentOccupancy float64  `json:"current_occupancy"`
	AverageOccupancy float64  `json:"average_occupancy"`
	PeakTime         string   `json:"peak_time"`
	PeakOccupancy    float64  `json:"peak_occupancy"`
	LowTime          string   `json:"low_time"`
	LowOccupancy     float64  `json:"low_occupancy"`
	HourlyForecast   []Point  `json:"hourly_forecast"`
	Recommendations  []string `json:"recommendations"`
}

// Analyzer runs the occupancy pipeline.
type Analyzer struct {
	env    analysis.Env
	source Source
	model  Model
}

func New(env analysis.Env, source Source, model Model) *Analyzer {
	return &Analyzer{env: env, source: source, model: model}
}

// Analyze forecasts occupancy for location over the next opts.Hours hours.
func (a *Analyzer) Analyze(ctx context.Context, location string, opts Options) (Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Report{}, analysis.Invalid("location", location, "must not be empty")
	}

	hours := opts.Hours
	if hours == 0 {
		hours = DefaultHours
	}
	if err := analysis.CheckRange("hours", hours, 1, MaxHours); err != nil {
		return Report{}, err
	}

	spaceType := strings.ToLower(strings.TrimSpace(opts.SpaceType))
	fallback := false
	switch {
	case spaceType == "":
		spaceType = SpaceTypeAll
	case spaceType != SpaceTypeAll && !a.env.Registry.HasSpaceType(spaceType):
		if err := a.env.Fallback("space type", spaceType, SpaceTypeAll); err != nil {
			return Report{}, err
		}
		spaceType = SpaceTypeAll
		fallback = true
	}

	now := a.env.Now().Truncate(time.Hour)
	history, err := a.source.History(ctx, location, spaceType, now)
	if err != nil {
		return Report{}, fmt.Errorf("occupancy history for %s: %w", location, err)
	}

	forecast := a.model.Forecast(history, now, hours)
	stats := Summarize(forecast)

	return Assemble(Input{
		Location:   location,
		SpaceType:  spaceType,
		Fallback:   fallback,
		At:         now,
		Model:      a.model.Name(),
		Confidence: Confidence(history),
		Forecast:   forecast,
		Stats:      stats,
		Recs:       Recommend(stats, spaceType, location),
	}), nil
}

// Stats summarizes a forecast. Peak and Low index the first occurrence of the
// extreme value.
type Stats struct {
	Current float64
	Average float64
	Peak    int
	Low     int
	PeakVal float64
	LowVal  float64
}

// Summarize computes current/average/peak/low over forecast values.
func Summarize(forecast []Forecast) Stats {
	if len(forecast) == 0 {
		return Stats{}
	}
	st := Stats{Current: forecast[0].Value, PeakVal: forecast[0].Value, LowVal: forecast[0].Value}
	var sum float64
	for i, f := range forecast {
		sum += f.Value
		if f.Value > st.PeakVal {
			st.Peak, st.PeakVal = i, f.Value
		}
		if f.Value < st.LowVal {
			st.Low, st.LowVal = i, f.Value
		}
	}
	st.Average = sum / float64(len(forecast))
	return st
}

// Input is everything Assemble needs.
type Input struct {
	Location   string
	SpaceType  string
	Fallback   bool
	At         time.Time
	Model      string
	Confidence float64
	Forecast   []Forecast
	Stats      Stats
	Recs       []string
}

// Assemble builds the report; values are rounded to 3 places.
func Assemble(in Input) Report {
	points := make([]Point, len(in.Forecast))
	for i, f := range in.Forecast {
		points[i] = Point{Time: f.At.Format(TimeLayout), Occupancy: analysis.Round(f.Value, 3)}
	}

	r := Report{
		Location:         in.Location,
		SpaceType:        in.SpaceType,
		ProfileFallback:  in.Fallback,
		GeneratedAt:      in.At.UTC().Format(time.RFC3339),
		ForecastHours:    len(points),
		Model:            in.Model,
		ModelConfidence:  in.Confidence,
		CurrentOccupancy: analysis.Round(in.Stats.Current, 3),
		AverageOccupancy: analysis.Round(in.Stats.Average, 3),
		PeakOccupancy:    analysis.Round(in.Stats.PeakVal, 3),
		LowOccupancy:     analysis.Round(in.Stats.LowVal, 3),
		HourlyForecast:   points,
		Recommendations:  append([]string{}, in.Recs...),
	}
	if len(points) > 0 {
		r.PeakTime = points[in.Stats.Peak].Time
		r.LowTime = points[in.Stats.Low].Time
	}
	return r
}
