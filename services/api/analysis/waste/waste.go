// Package waste forecasts waste generation and the biogas it could yield.
package waste

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

const (
	DefaultDays = 7
	MaxDays     = 90

	WeekendFactor = 0.6

	RecyclableShare = 0.20
	ResidualShare   = 0.12

	BiogasM3PerKg = 0.4
	KWhPerM3      = 5.5
	CO2KgPerM3    = 1.9

	highVolumeKg   = 400
	mediumVolumeKg = 200

	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
)

// Waste type filters accepted by the forecast.
var wasteTypes = map[string]bool{"biodegradable": true, "recyclable": true, "residual": true, "all": true}

// Options tune a forecast.
type Options struct {
	Days      int
	WasteType string
}

// Day is one simulated day of generation.
type Day struct {
	Date    time.Time
	TotalKg float64
}

// Source produces daily generation totals for an area starting at start.
type Source interface {
	Daily(ctx context.Context, area registry.WasteArea, start time.Time, days int) ([]Day, error)
}

// DailyForecast is one day of the report.
type DailyForecast struct {
	Date            string  `json:"date"`
	Day             string  `json:"day"`
	TotalWasteKg    float64 `json:"total_waste_kg"`
	BiodegradableKg float64 `json:"biodegradable_kg"`
	RecyclableKg    float64 `json:"recyclable_kg"`
	ResidualKg      float64 `json:"residual_kg"`
	BiogasYieldM3   float64 `json:"biogas_yield_m3"`
	BiogasEnergyKWh float64 `json:"biogas_energy_kwh"`
}

// Summary totals the forecast window.
type Summary struct {
	TotalWasteKg            float64 `json:"total_waste_kg"`
	TotalBiodegradableKg    float64 `json:"total_biodegradable_kg"`
	BiodegradablePercentage float64 `json:"biodegradable_percentage"`
	TotalBiogasM3           float64 `json:"total_biogas_m3"`
	TotalEnergyKWh          float64 `json:"total_energy_kwh"`
	CO2OffsetKg             float64 `json:"co2_offset_kg"`
}

// Collection is the pickup plan for one day.
type Collection struct {
	Date      string `json:"date"`
	Frequency string `json:"collection_frequency"`
	Priority  string `json:"priority"`
}

// Report is the waste forecast for one area.
type Report struct {
	Area               string          `json:"area"`
	AreaName           string          `json:"area_name"`
	ProfileFallback    bool            `json:"profile_fallback"`
	WasteType          string          `json:"waste_type"`
	ForecastDays       int             `json:"forecast_days"`
	GeneratedAt        string          `json:"generated_at"`
	Summary            Summary         `json:"summary"`
	DailyForecasts     []DailyForecast `json:"daily_forecasts"`
	Recommendations    []string        `json:"recommendations"`
	CollectionSchedule []Collection    `json:"collection_schedule"`
}

// Analyzer runs the waste pipeline.
type Analyzer struct {
	env    analysis.Env
	source Source
}

func New(env analysis.Env, source Source) *Analyzer {
	return &Analyzer{env: env, source: source}
}

// Analyze forecasts opts.Days days for area. Area names are matched
// case-insensitively with spaces as underscores; unknown areas follow the
// fallback policy and use the campus-wide profile.
func (a *Analyzer) Analyze(ctx context.Context, areaName string, opts Options) (Report, error) {
	days := opts.Days
	if days == 0 {
		days = DefaultDays
	}
	if err := analysis.CheckRange("days", days, 1, MaxDays); err != nil {
		return Report{}, err
	}

	wasteType := strings.ToLower(strings.TrimSpace(opts.WasteType))
	if wasteType == "" {
		wasteType = "biodegradable"
	}
	if !wasteTypes[wasteType] {
		return Report{}, analysis.Invalid("waste_type", opts.WasteType, "must be biodegradable, recyclable, residual or all")
	}

	key := registry.NormalizeKey(areaName)
	area, ok := a.env.Registry.WasteArea(key)
	fallback := false
	if !ok {
		def := a.env.Registry.DefaultWasteArea()
		if err := a.env.Fallback("waste area", areaName, def.ID); err != nil {
			return Report{}, err
		}
		area = def
		fallback = true
	}

	now := a.env.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daily, err := a.source.Daily(ctx, area, start, days)
	if err != nil {
		return Report{}, fmt.Errorf("waste generation for %s: %w", area.ID, err)
	}

	forecasts := Score(area, daily)
	summary := Summarize(area, forecasts)

	return Assemble(Input{
		Area:      area,
		Fallback:  fallback,
		WasteType: wasteType,
		At:        now,
		Forecasts: forecasts,
		Summary:   summary,
		Recs:      Recommend(summary, forecasts),
	}), nil
}

// Score splits each day's total into streams (recyclable and residual are
// fixed shares of the total) and converts the biodegradable share to biogas
// and energy.
func Score(area registry.WasteArea, daily []Day) []DailyForecast {
	out := make([]DailyForecast, 0, len(daily))
	for _, d := range daily {
		bio := d.TotalKg * area.BiodegradableFraction
		biogas := bio * BiogasM3PerKg
		out = append(out, DailyForecast{
			Date:            d.Date.Format("2006-01-02"),
			Day:             d.Date.Weekday().String(),
			TotalWasteKg:    analysis.Round(d.TotalKg, 1),
			BiodegradableKg: analysis.Round(bio, 1),
			RecyclableKg:    analysis.Round(d.TotalKg*RecyclableShare, 1),
			ResidualKg:      analysis.Round(d.TotalKg*ResidualShare, 1),
			BiogasYieldM3:   analysis.Round(biogas, 2),
			BiogasEnergyKWh: analysis.Round(biogas*KWhPerM3, 2),
		})
	}
	return out
}

// Summarize totals the daily forecasts. Biogas is derived from the reported
// (rounded) biodegradable total so the two always agree. The percentage is
// the area's profile share, not a ratio of rounded totals.
func Summarize(area registry.WasteArea, forecasts []DailyForecast) Summary {
	var total, bio float64
	for _, f := range forecasts {
		total += f.TotalWasteKg
		bio += f.BiodegradableKg
	}
	total = analysis.Round(total, 1)
	bio = analysis.Round(bio, 1)
	biogas := analysis.Round(bio*BiogasM3PerKg, 2)

	return Summary{
		TotalWasteKg:            total,
		TotalBiodegradableKg:    bio,
		BiodegradablePercentage: analysis.Round(area.BiodegradableFraction*100, 1),
		TotalBiogasM3:           biogas,
		TotalEnergyKWh:          analysis.Round(biogas*KWhPerM3, 1),
		CO2OffsetKg:             analysis.Round(biogas*CO2KgPerM3, 1),
	}
}

// Schedule plans pickups from each day's volume.
func Schedule(forecasts []DailyForecast) []Collection {
	out := make([]Collection, 0, len(forecasts))
	for _, f := range forecasts {
		c := Collection{Date: f.Date, Frequency: "Every 2 days", Priority: PriorityNormal}
		switch {
		case f.TotalWasteKg > highVolumeKg:
			c.Frequency, c.Priority = "2x daily", PriorityHigh
		case f.TotalWasteKg > mediumVolumeKg:
			c.Frequency = "Daily"
		}
		out = append(out, c)
	}
	return out
}

// Input is everything Assemble needs.
type Input struct {
	Area      registry.WasteArea
	Fallback  bool
	WasteType string
	At        time.Time
	Forecasts []DailyForecast
	Summary   Summary
	Recs      []string
}

// Assemble builds the report.
func Assemble(in Input) Report {
	return Report{
		Area:               in.Area.ID,
		AreaName:           in.Area.Name,
		ProfileFallback:    in.Fallback,
		WasteType:          in.WasteType,
		ForecastDays:       len(in.Forecasts),
		GeneratedAt:        in.At.UTC().Format(time.RFC3339),
		Summary:            in.Summary,
		DailyForecasts:     append([]DailyForecast{}, in.Forecasts...),
		Recommendations:    append([]string{}, in.Recs...),
		CollectionSchedule: Schedule(in.Forecasts),
	}
}
