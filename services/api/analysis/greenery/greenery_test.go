package greenery

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

func newAnalyzer(noise signal.Noise) *Analyzer {
	env := analysis.Env{
		Registry: registry.Default(),
		Clock:    signal.FixedClock(time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)),
		Log:      logger.Discard(),
	}
	return New(env, NewSimulator(noise))
}

func TestSuitability(t *testing.T) {
	plant := registry.Plant{
		PH:       registry.Range{Min: 6, Max: 7},
		Moisture: registry.Range{Min: 40, Max: 60},
		Nitrogen: registry.Range{Min: 20, Max: 40},
	}
	tests := []struct {
		name string
		soil signal.Sample
		want float64
	}{
		{"all within", signal.Sample{PH: 6.5, Moisture: 50, Nitrogen: 30}, 1.0},
		{"ph miss", signal.Sample{PH: 8, Moisture: 50, Nitrogen: 30}, 0.6},
		{"moisture miss", signal.Sample{PH: 6.5, Moisture: 10, Nitrogen: 30}, 0.7},
		{"nitrogen miss", signal.Sample{PH: 6.5, Moisture: 50, Nitrogen: 90}, 0.8},
		{"all miss", signal.Sample{PH: 9, Moisture: 10, Nitrogen: 90}, 0.1},
		{"bounds inclusive", signal.Sample{PH: 7, Moisture: 40, Nitrogen: 40}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Suitability(plant, tt.soil); got != tt.want {
				t.Fatalf("Suitability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankExcludesLowScoresAndCapsTopK(t *testing.T) {
	wide := registry.Range{Min: 0, Max: 1000}
	narrow := registry.Range{Min: -2, Max: -1}
	var catalog []registry.Plant
	for i := 0; i < 7; i++ {
		catalog = append(catalog, registry.Plant{ID: string(rune('a' + i)), PH: wide, Moisture: wide, Nitrogen: wide})
	}
	catalog = append(catalog, registry.Plant{ID: "never", PH: narrow, Moisture: narrow, Nitrogen: narrow})

	got := Rank(catalog, signal.Sample{PH: 7, Moisture: 50, Nitrogen: 50})
	if len(got) != TopK {
		t.Fatalf("len = %d, want %d", len(got), TopK)
	}
	for i, p := range got {
		if p.ID == "never" {
			t.Fatal("zero-score plant ranked")
		}
		if p.ID != string(rune('a'+i)) {
			t.Fatalf("tie order broken at %d: %s", i, p.ID)
		}
	}
}

// A plant missing pH and nitrogen lands exactly on the cutoff and is kept.
// Scores are summed in integer points, so 0.4 never drifts below itself.
func TestRankKeepsScoresExactlyAtCutoff(t *testing.T) {
	got := Rank(registry.Default().Plants(), signal.Sample{PH: 5.0, Moisture: 50, Nitrogen: 5})

	want := []string{"neem", "peepal", "bamboo", "bougainvillea", "tulsi"}
	if len(got) != len(want) {
		t.Fatalf("kept %d plants, want %d: %+v", len(got), len(want), got)
	}
	for i, p := range got {
		if p.ID != want[i] || p.SuitabilityScore != 0.4 {
			t.Fatalf("rank %d = %s (%v), want %s (0.4)", i, p.ID, p.SuitabilityScore, want[i])
		}
	}
}

func TestAnalyzeFixedSoil(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}).Analyze(context.Background(), "North Lawn", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if r.AreaSqm != DefaultAreaSqm || r.SoilSource != SoilSimulated || r.SoilTexture != "Sandy loam" {
		t.Fatalf("header = %+v", r)
	}
	if r.SoilQuality != "Poor — Major amendments required" {
		t.Fatalf("quality = %q", r.SoilQuality)
	}

	var ids []string
	for _, p := range r.RecommendedPlants {
		ids = append(ids, p.ID)
	}
	if strings.Join(ids, ",") != "bougainvillea,neem,peepal,bamboo" {
		t.Fatalf("ranking = %v", ids)
	}
	if r.RecommendedPlants[0].SuitabilityScore != 1.0 || r.RecommendedPlants[1].SuitabilityScore != 0.6 {
		t.Fatalf("scores = %+v", r.RecommendedPlants)
	}

	if len(r.PlantingLayout) != LayoutTopN {
		t.Fatalf("layout = %+v", r.PlantingLayout)
	}
	first := r.PlantingLayout[0]
	if first.Plant != "bougainvillea" || first.Count != 7 || first.SpacingM != 6.6 || first.AreaCoveredSqm != 197.9 || first.Zone != "Primary" {
		t.Fatalf("primary = %+v", first)
	}
	if r.PlantingLayout[1].Count != 1 || r.PlantingLayout[1].Zone != "Secondary" {
		t.Fatalf("secondary = %+v", r.PlantingLayout[1])
	}

	if r.ExpectedCO2KgYear != 120 {
		t.Fatalf("co2 = %v", r.ExpectedCO2KgYear)
	}
	if len(r.SoilImprovementPlan) != 3 || !strings.Contains(r.SoilImprovementPlan[0], "lime") {
		t.Fatalf("plan = %v", r.SoilImprovementPlan)
	}
	if last := r.MaintenanceNotes[len(r.MaintenanceNotes)-1]; !strings.HasPrefix(last, "🌳 Bougainvillea") {
		t.Fatalf("primary note = %q", last)
	}
}

func TestSoilOverrideMergesDefaults(t *testing.T) {
	r, err := newAnalyzer(signal.Fixed{}).Analyze(context.Background(), "plot-7", Options{
		AreaSqm: 120,
		Soil:    signal.Sample{PH: 6.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.SoilSource != SoilOverride {
		t.Fatalf("source = %s", r.SoilSource)
	}
	if r.SoilAnalysis[Moisture] != 50 || r.SoilAnalysis[Nitrogen] != 50 || r.SoilAnalysis[PH] != 6.5 {
		t.Fatalf("soil = %v", r.SoilAnalysis)
	}
	if len(r.SoilImprovementPlan) != 1 || !strings.HasPrefix(r.SoilImprovementPlan[0], "✅") {
		t.Fatalf("plan = %v", r.SoilImprovementPlan)
	}
	if r.RecommendedPlants[0].SuitabilityScore != 1.0 {
		t.Fatalf("top = %+v", r.RecommendedPlants[0])
	}
}

func TestTextureOverridesSimulatedSoil(t *testing.T) {
	a := newAnalyzer(signal.Fixed{I: 2})

	r, err := a.Analyze(context.Background(), "north lawn", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.SoilSource != SoilSimulated || r.SoilTexture != "Loam" {
		t.Fatalf("simulated soil = %s %q", r.SoilSource, r.SoilTexture)
	}

	r, err = a.Analyze(context.Background(), "north lawn", Options{Texture: " Silty clay "})
	if err != nil {
		t.Fatal(err)
	}
	if r.SoilSource != SoilSimulated || r.SoilTexture != "Silty clay" {
		t.Fatalf("surveyed texture = %s %q", r.SoilSource, r.SoilTexture)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	a := newAnalyzer(signal.Fixed{})
	if _, err := a.Analyze(context.Background(), " ", Options{}); !errors.Is(err, analysis.ErrInvalidOption) {
		t.Fatalf("empty location err = %v", err)
	}
	if _, err := a.Analyze(context.Background(), "lawn", Options{AreaSqm: -5}); !errors.Is(err, analysis.ErrInvalidOption) {
		t.Fatalf("negative area err = %v", err)
	}
}

func TestNoFitMaintenanceNote(t *testing.T) {
	notes := MaintenanceNotes(nil)
	if len(notes) != 5 || !strings.Contains(notes[4], "No catalog species") {
		t.Fatalf("notes = %v", notes)
	}
}
