// Package greenery recommends plant species and a planting layout for a plot
// from its soil profile.
package greenery

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

const (
	DefaultAreaSqm = 500.0

	TopK       = 5
	LayoutTopN = 3

	// Penalties are in hundredths of the 0-1 suitability scale.
	phPenalty       = 40
	moisturePenalty = 30
	nitrogenPenalty = 20
	cutoffPoints    = 40

	layoutShare   = 0.4
	spacingFactor = 2.2

	SoilSimulated = "simulated"
	SoilOverride  = "override"
)

// Soil parameter names.
const (
	PH            = "ph"
	Moisture      = "moisture_pct"
	Nitrogen      = "nitrogen_ppm"
	Phosphorus    = "phosphorus_ppm"
	Potassium     = "potassium_ppm"
	OrganicMatter = "organic_matter_pct"
	Salinity      = "salinity_ms_cm"
)

// soilDefaults fill parameters missing from an override.
var soilDefaults = signal.Sample{PH: 7.0, Moisture: 50, Nitrogen: 50, OrganicMatter: 2.0}

// Options tune a recommendation. Soil, when non-empty, replaces the simulated
// soil profile; missing keys take neutral defaults. Texture labels the soil
// whether it was simulated or supplied.
type Options struct {
	AreaSqm float64
	Soil    signal.Sample
	Texture string
}

// Soil is a soil profile.
type Soil struct {
	Readings signal.Sample
	Texture  string
}

// Source produces the soil profile for a location.
type Source interface {
	Soil(ctx context.Context, location string) (Soil, error)
}

// RecommendedPlant is a catalog entry with its suitability.
type RecommendedPlant struct {
	registry.Plant
	SuitabilityScore float64 `json:"suitability_score"`
}

// LayoutEntry is the planting plan for one species.
type LayoutEntry struct {
	Plant          string  `json:"plant"`
	Name           string  `json:"name"`
	Count          int     `json:"count"`
	SpacingM       float64 `json:"spacing_m"`
	AreaCoveredSqm float64 `json:"area_covered_sqm"`
	Zone           string  `json:"zone"`
}

// Report is the greenery plan for one location.
type Report struct {
	Location            string             `json:"location"`
	AreaSqm             float64            `json:"area_sqm"`
	GeneratedAt         string             `json:"generated_at"`
	SoilSource          string             `json:"soil_source"`
	SoilAnalysis        map[string]float64 `json:"soil_analysis"`
	SoilTexture         string             `json:"soil_texture"`
	SoilQuality         string             `json:"soil_quality"`
	RecommendedPlants   []RecommendedPlant `json:"recommended_plants"`
	PlantingLayout      []LayoutEntry      `json:"planting_layout"`
	SoilImprovementPlan []string           `json:"soil_improvement_plan"`
	ExpectedCO2KgYear   float64            `json:"expected_co2_absorption_kg_yr"`
	MaintenanceNotes    []string           `json:"maintenance_notes"`
}

// Analyzer runs the greenery pipeline.
type Analyzer struct {
	env    analysis.Env
	source Source
}

func New(env analysis.Env, source Source) *Analyzer {
	return &Analyzer{env: env, source: source}
}

// Analyze plans planting for location. Locations are free text; there is no
// site registry to resolve against.
func (a *Analyzer) Analyze(ctx context.Context, location string, opts Options) (Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Report{}, analysis.Invalid("location", location, "must not be empty")
	}

	area := opts.AreaSqm
	if area == 0 {
		area = DefaultAreaSqm
	}
	if area < 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return Report{}, analysis.Invalid("area_sqm", opts.AreaSqm, "must be positive")
	}

	var soil Soil
	source := SoilSimulated
	if len(opts.Soil) > 0 {
		source = SoilOverride
		soil = Soil{Readings: soilDefaults.Clone(), Texture: opts.Texture}
		for k, v := range opts.Soil {
			soil.Readings[k] = v
		}
	} else {
		var err error
		soil, err = a.source.Soil(ctx, location)
		if err != nil {
			return Report{}, fmt.Errorf("soil profile for %s: %w", location, err)
		}
		if texture := strings.TrimSpace(opts.Texture); texture != "" {
			soil.Texture = texture
		}
	}

	plants := Rank(a.env.Registry.Plants(), soil.Readings)
	layout := Layout(plants, area)

	return Assemble(Input{
		Location: location,
		AreaSqm:  area,
		At:       a.env.Now(),
		Source:   source,
		Soil:     soil,
		Plants:   plants,
		Layout:   layout,
		Plan:     ImprovementPlan(soil.Readings),
	}), nil
}

// Suitability scores a plant against soil readings on a 0-1 scale. Missing
// readings take the neutral defaults.
func Suitability(p registry.Plant, soil signal.Sample) float64 {
	return float64(suitabilityPoints(p, soil)) / 100
}

func suitabilityPoints(p registry.Plant, soil signal.Sample) int {
	points := 100
	if !p.PH.Contains(soil.Get(PH, soilDefaults[PH])) {
		points -= phPenalty
	}
	if !p.Moisture.Contains(soil.Get(Moisture, soilDefaults[Moisture])) {
		points -= moisturePenalty
	}
	if !p.Nitrogen.Contains(soil.Get(Nitrogen, soilDefaults[Nitrogen])) {
		points -= nitrogenPenalty
	}
	return max(points, 0)
}

// Rank keeps plants scoring at least the cutoff, best first. Ties keep
// catalog order. At most TopK are returned.
func Rank(catalog []registry.Plant, soil signal.Sample) []RecommendedPlant {
	out := make([]RecommendedPlant, 0, len(catalog))
	for _, p := range catalog {
		pts := suitabilityPoints(p, soil)
		if pts < cutoffPoints {
			continue
		}
		out = append(out, RecommendedPlant{Plant: p, SuitabilityScore: analysis.Round(float64(pts)/100, 3)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuitabilityScore > out[j].SuitabilityScore })
	if len(out) > TopK {
		out = out[:TopK]
	}
	return out
}

// Layout allots up to 40% of the remaining area to each of the top three
// species in turn, at least one specimen each.
func Layout(plants []RecommendedPlant, areaSqm float64) []LayoutEntry {
	n := min(len(plants), LayoutTopN)
	out := make([]LayoutEntry, 0, n)
	remaining := areaSqm
	for i, p := range plants[:n] {
		footprint := math.Pi * p.CanopyRadiusM * p.CanopyRadiusM
		count := max(1, int(remaining*layoutShare/footprint))
		zone := "Secondary"
		if i == 0 {
			zone = "Primary"
		}
		out = append(out, LayoutEntry{
			Plant:          p.ID,
			Name:           p.Name,
			Count:          count,
			SpacingM:       analysis.Round(p.CanopyRadiusM*spacingFactor, 2),
			AreaCoveredSqm: analysis.Round(float64(count)*footprint, 1),
			Zone:           zone,
		})
		remaining -= float64(count) * footprint
	}
	return out
}

// ExpectedCO2 sums yearly absorption, counting laid-out specimens and one of
// every other recommended plant.
func ExpectedCO2(plants []RecommendedPlant, layout []LayoutEntry) float64 {
	counts := make(map[string]int, len(layout))
	for _, l := range layout {
		counts[l.Plant] = l.Count
	}
	var total float64
	for _, p := range plants {
		n, ok := counts[p.ID]
		if !ok {
			n = 1
		}
		total += p.CO2KgPerYear * float64(n)
	}
	return analysis.Round(total, 1)
}

// SoilQuality labels a soil profile.
func SoilQuality(soil signal.Sample) string {
	ph := soil.Get(PH, soilDefaults[PH])
	om := soil.Get(OrganicMatter, soilDefaults[OrganicMatter])
	switch {
	case ph >= 6.0 && ph <= 7.5 && om >= 3.0:
		return "Excellent"
	case ph >= 5.5 && ph <= 8.0 && om >= 1.5:
		return "Good"
	case om >= 0.8:
		return "Fair — Amendments recommended"
	default:
		return "Poor — Major amendments required"
	}
}

// Input is everything Assemble needs.
type Input struct {
	Location string
	AreaSqm  float64
	At       time.Time
	Source   string
	Soil     Soil
	Plants   []RecommendedPlant
	Layout   []LayoutEntry
	Plan     []string
}

// Assemble builds the report.
func Assemble(in Input) Report {
	readings := make(map[string]float64, len(in.Soil.Readings))
	for k, v := range in.Soil.Readings {
		readings[k] = analysis.Round(v, 2)
	}
	return Report{
		Location:            in.Location,
		AreaSqm:             in.AreaSqm,
		GeneratedAt:         in.At.UTC().Format(time.RFC3339),
		SoilSource:          in.Source,
		SoilAnalysis:        readings,
		SoilTexture:         in.Soil.Texture,
		SoilQuality:         SoilQuality(in.Soil.Readings),
		RecommendedPlants:   append([]RecommendedPlant{}, in.Plants...),
		PlantingLayout:      append([]LayoutEntry{}, in.Layout...),
		SoilImprovementPlan: append([]string{}, in.Plan...),
		ExpectedCO2KgYear:   ExpectedCO2(in.Plants, in.Layout),
		MaintenanceNotes:    MaintenanceNotes(in.Plants),
	}
}
