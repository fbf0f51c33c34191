package registry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRegistryLookups(t *testing.T) {
	r := Default()

	if z, ok := r.WaterZone("Z4"); !ok || !z.Degraded {
		t.Fatalf("Z4 = %+v, ok=%v", z, ok)
	}
	if l, ok := r.ParkingLot("P1"); !ok || l.Capacity != 500 {
		t.Fatalf("P1 = %+v, ok=%v", l, ok)
	}
	if z, ok := r.FootfallZone("hostel_road"); !ok || !z.Shared || z.CapacityPPH != 350 {
		t.Fatalf("hostel_road = %+v", z)
	}
	if a := r.DefaultWasteArea(); a.ID != "campus_wide" || a.DailyKG != 600 {
		t.Fatalf("default area = %+v", a)
	}
	if _, ok := r.Plant("neem"); !ok {
		t.Fatalf("neem missing")
	}
	if len(r.Plants()) != 7 {
		t.Fatalf("plants = %d", len(r.Plants()))
	}
	if !r.HasSpaceType("lab") || r.HasSpaceType("rooftop") {
		t.Fatalf("space types wrong")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	r := Default()

	lots := r.ParkingLots()
	lots[0].Capacity = 1
	if l, _ := r.ParkingLot("P1"); l.Capacity != 500 {
		t.Fatalf("registry mutated through accessor")
	}

	plants := r.Plants()
	plants[0].Benefits[0] = "changed"
	if r.Plants()[0].Benefits[0] == "changed" {
		t.Fatalf("plant benefits aliased")
	}
}

func TestNewRejectsInvalidDocuments(t *testing.T) {
	tests := map[string]Document{
		"duplicate lot": {ParkingLots: []ParkingLot{{ID: "P1", Capacity: 1}, {ID: "P1", Capacity: 2}}},
		"zero capacity": {FootfallZones: []FootfallZone{{ID: "gate", CapacityPPH: 0}}},
		"missing default": {
			WasteAreas:       []WasteArea{{ID: "canteen", DailyKG: 10, BiodegradableFraction: 0.5}},
			DefaultWasteArea: "nowhere",
		},
		"uppercase area": {
			WasteAreas:       []WasteArea{{ID: "Canteen", DailyKG: 10, BiodegradableFraction: 0.5}},
			DefaultWasteArea: "Canteen",
		},
		"inverted range": {WaterParameters: []WaterParameter{{Name: "ph", Min: 9, Max: 6}}},
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := New(doc); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodeOverridesSections(t *testing.T) {
	src := `
parking_lots:
  - id: L1
    name: Library Lot
    capacity: 80
    lat: 1.5
    lon: 2.5
waste_areas:
  - id: canteen
    name: Canteen
    daily_kg: 120
    biodegradable_fraction: 0.8
default_waste_area: canteen
`
	doc, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r, err := New(doc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if lots := r.ParkingLots(); len(lots) != 1 || lots[0].ID != "L1" {
		t.Fatalf("lots = %+v", lots)
	}
	if r.DefaultWasteArea().ID != "canteen" {
		t.Fatalf("default area = %+v", r.DefaultWasteArea())
	}
	if len(r.WaterZones()) != 5 {
		t.Fatalf("water zones should fall back to built-in tables")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("parking_lot: []\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default().Document()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "campus.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if p, ok := r.Plant("areca_palm"); !ok || p.CanopyRadiusM != 2 {
		t.Fatalf("areca_palm = %+v", p)
	}
}

func TestFallbackPolicy(t *testing.T) {
	p, err := ParsePolicy("")
	if err != nil || p != FallbackDefault {
		t.Fatalf("empty policy = %q, %v", p, err)
	}
	if p.Resolve("water zone", "Z9") != nil {
		t.Fatalf("default policy should allow fallback")
	}

	strict, err := ParsePolicy("STRICT")
	if err != nil {
		t.Fatal(err)
	}
	if err := strict.Resolve("water zone", "Z9"); !errors.Is(err, ErrUnknownZone) {
		t.Fatalf("strict err = %v", err)
	}

	if _, err := ParsePolicy("lenient"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey(" Academic Block "); got != "academic_block" {
		t.Fatalf("NormalizeKey = %q", got)
	}
}
