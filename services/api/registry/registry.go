// Package registry holds the static campus tables every analyzer resolves
// identifiers against. A Registry is built once at startup and never
// mutated; accessors hand out copies.
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// WaterParameter is a monitored water parameter with its acceptable range and
// the baseline the simulator perturbs around.
type WaterParameter struct {
	Name     string  `json:"name" yaml:"name"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Mean     float64 `json:"mean" yaml:"mean"`
	StdDev   float64 `json:"stddev" yaml:"stddev"`
	Absolute bool    `json:"absolute,omitempty" yaml:"absolute,omitempty"`
}

// WaterZone is a distribution zone. Degraded zones carry injected turbidity
// and TDS excursions in simulation.
type WaterZone struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
	Degraded bool    `json:"degraded" yaml:"degraded"`
}

// FootfallZone is a pedestrian corridor with a people-per-hour capacity.
type FootfallZone struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	CapacityPPH  int     `json:"capacity_pph" yaml:"capacity_pph"`
	Lat          float64 `json:"lat" yaml:"lat"`
	Lon          float64 `json:"lon" yaml:"lon"`
	Shared       bool    `json:"shared" yaml:"shared"`
	ConflictType string  `json:"conflict_type,omitempty" yaml:"conflict_type,omitempty"`
}

// ParkingLot is a car park with a fixed number of slots.
type ParkingLot struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Capacity int     `json:"capacity" yaml:"capacity"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
}

// WasteArea is a waste generation profile.
type WasteArea struct {
	ID                    string  `json:"id" yaml:"id"`
	Name                  string  `json:"name" yaml:"name"`
	DailyKG               float64 `json:"daily_kg" yaml:"daily_kg"`
	BiodegradableFraction float64 `json:"biodegradable_fraction" yaml:"biodegradable_fraction"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in the range, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Plant is a catalog species for greenery planning.
type Plant struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Type             string   `json:"type" yaml:"type"`
	PH               Range    `json:"ph" yaml:"ph"`
	Moisture         Range    `json:"moisture" yaml:"moisture"`
	Nitrogen         Range    `json:"nitrogen" yaml:"nitrogen"`
	CO2KgPerYear     float64  `json:"co2_kg_per_year" yaml:"co2_kg_per_year"`
	WaterRequirement string   `json:"water_requirement" yaml:"water_requirement"`
	GrowthRate       string   `json:"growth_rate" yaml:"growth_rate"`
	CanopyRadiusM    float64  `json:"canopy_radius_m" yaml:"canopy_radius_m"`
	Benefits         []string `json:"benefits" yaml:"benefits"`
}

// Document is the serialized registry layout (YAML file, seeder input).
// Empty sections fall back to the built-in tables.
type Document struct {
	WaterParameters  []WaterParameter `json:"water_parameters" yaml:"water_parameters"`
	WaterZones       []WaterZone      `json:"water_zones" yaml:"water_zones"`
	FootfallZones    []FootfallZone   `json:"footfall_zones" yaml:"footfall_zones"`
	ParkingLots      []ParkingLot     `json:"parking_lots" yaml:"parking_lots"`
	WasteAreas       []WasteArea      `json:"waste_areas" yaml:"waste_areas"`
	DefaultWasteArea string           `json:"default_waste_area" yaml:"default_waste_area"`
	Plants           []Plant          `json:"plants" yaml:"plants"`
	SpaceTypes       []string         `json:"space_types" yaml:"space_types"`
}

// Registry is the immutable, indexed form of a Document.
type Registry struct {
	doc Document

	waterZones    map[string]WaterZone
	footfallZones map[string]FootfallZone
	parkingLots   map[string]ParkingLot
	wasteAreas    map[string]WasteArea
	plants        map[string]Plant
}

// New validates doc, fills empty sections from the built-in tables and
// indexes it.
func New(doc Document) (*Registry, error) {
	doc = withDefaults(doc)
	if err := validate(doc); err != nil {
		return nil, err
	}

	r := &Registry{
		doc:           doc,
		waterZones:    make(map[string]WaterZone, len(doc.WaterZones)),
		footfallZones: make(map[string]FootfallZone, len(doc.FootfallZones)),
		parkingLots:   make(map[string]ParkingLot, len(doc.ParkingLots)),
		wasteAreas:    make(map[string]WasteArea, len(doc.WasteAreas)),
		plants:        make(map[string]Plant, len(doc.Plants)),
	}
	for _, z := range doc.WaterZones {
		r.waterZones[z.ID] = z
	}
	for _, z := range doc.FootfallZones {
		r.footfallZones[z.ID] = z
	}
	for _, l := range doc.ParkingLots {
		r.parkingLots[l.ID] = l
	}
	for _, a := range doc.WasteAreas {
		r.wasteAreas[a.ID] = a
	}
	for _, p := range doc.Plants {
		r.plants[p.ID] = p
	}
	return r, nil
}

// Default returns the built-in campus registry.
func Default() *Registry {
	r, err := New(Document{})
	if err != nil {
		panic(fmt.Sprintf("built-in registry invalid: %v", err))
	}
	return r
}

// Document returns a deep-enough copy of the backing document for export.
func (r *Registry) Document() Document {
	return Document{
		WaterParameters:  r.WaterParameters(),
		WaterZones:       r.WaterZones(),
		FootfallZones:    r.FootfallZones(),
		ParkingLots:      r.ParkingLots(),
		WasteAreas:       r.WasteAreas(),
		DefaultWasteArea: r.doc.DefaultWasteArea,
		Plants:           r.Plants(),
		SpaceTypes:       r.SpaceTypes(),
	}
}

func (r *Registry) WaterParameters() []WaterParameter {
	return append([]WaterParameter(nil), r.doc.WaterParameters...)
}

func (r *Registry) WaterZones() []WaterZone { return append([]WaterZone(nil), r.doc.WaterZones...) }

func (r *Registry) FootfallZones() []FootfallZone {
	return append([]FootfallZone(nil), r.doc.FootfallZones...)
}

func (r *Registry) ParkingLots() []ParkingLot { return append([]ParkingLot(nil), r.doc.ParkingLots...) }

func (r *Registry) WasteAreas() []WasteArea { return append([]WasteArea(nil), r.doc.WasteAreas...) }

// Plants returns the catalog in declaration order.
func (r *Registry) Plants() []Plant {
	out := make([]Plant, len(r.doc.Plants))
	for i, p := range r.doc.Plants {
		p.Benefits = append([]string(nil), p.Benefits...)
		out[i] = p
	}
	return out
}

func (r *Registry) SpaceTypes() []string { return append([]string(nil), r.doc.SpaceTypes...) }

func (r *Registry) WaterZone(id string) (WaterZone, bool) {
	z, ok := r.waterZones[id]
	return z, ok
}

func (r *Registry) FootfallZone(id string) (FootfallZone, bool) {
	z, ok := r.footfallZones[id]
	return z, ok
}

func (r *Registry) ParkingLot(id string) (ParkingLot, bool) {
	l, ok := r.parkingLots[id]
	return l, ok
}

func (r *Registry) WasteArea(id string) (WasteArea, bool) {
	a, ok := r.wasteAreas[id]
	return a, ok
}

// DefaultWasteArea is the campus-wide profile used for unknown areas.
func (r *Registry) DefaultWasteArea() WasteArea {
	return r.wasteAreas[r.doc.DefaultWasteArea]
}

func (r *Registry) Plant(id string) (Plant, bool) {
	p, ok := r.plants[id]
	return p, ok
}

// HasSpaceType reports whether t is a known space type.
func (r *Registry) HasSpaceType(t string) bool {
	for _, s := range r.doc.SpaceTypes {
		if s == t {
			return true
		}
	}
	return false
}

func withDefaults(doc Document) Document {
	def := builtin()
	if len(doc.WaterParameters) == 0 {
		doc.WaterParameters = def.WaterParameters
	}
	if len(doc.WaterZones) == 0 {
		doc.WaterZones = def.WaterZones
	}
	if len(doc.FootfallZones) == 0 {
		doc.FootfallZones = def.FootfallZones
	}
	if len(doc.ParkingLots) == 0 {
		doc.ParkingLots = def.ParkingLots
	}
	if len(doc.WasteAreas) == 0 {
		doc.WasteAreas = def.WasteAreas
	}
	if doc.DefaultWasteArea == "" {
		doc.DefaultWasteArea = def.DefaultWasteArea
	}
	if len(doc.Plants) == 0 {
		doc.Plants = def.Plants
	}
	if len(doc.SpaceTypes) == 0 {
		doc.SpaceTypes = def.SpaceTypes
	}
	return doc
}

func validate(doc Document) error {
	var errs []error

	seen := make(map[string]bool)
	for _, p := range doc.WaterParameters {
		if p.Name == "" || p.Min > p.Max {
			errs = append(errs, fmt.Errorf("water parameter %q: invalid range %v-%v", p.Name, p.Min, p.Max))
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("water parameter %q: duplicate", p.Name))
		}
		seen[p.Name] = true
	}

	errs = append(errs, uniqueIDs("water zone", len(doc.WaterZones), func(i int) string { return doc.WaterZones[i].ID })...)
	errs = append(errs, uniqueIDs("footfall zone", len(doc.FootfallZones), func(i int) string { return doc.FootfallZones[i].ID })...)
	errs = append(errs, uniqueIDs("parking lot", len(doc.ParkingLots), func(i int) string { return doc.ParkingLots[i].ID })...)
	errs = append(errs, uniqueIDs("waste area", len(doc.WasteAreas), func(i int) string { return doc.WasteAreas[i].ID })...)
	errs = append(errs, uniqueIDs("plant", len(doc.Plants), func(i int) string { return doc.Plants[i].ID })...)

	for _, z := range doc.FootfallZones {
		if z.CapacityPPH <= 0 {
			errs = append(errs, fmt.Errorf("footfall zone %q: capacity_pph must be positive", z.ID))
		}
	}
	for _, l := range doc.ParkingLots {
		if l.Capacity <= 0 {
			errs = append(errs, fmt.Errorf("parking lot %q: capacity must be positive", l.ID))
		}
	}

	defaultFound := false
	for _, a := range doc.WasteAreas {
		if a.ID != NormalizeKey(a.ID) {
			errs = append(errs, fmt.Errorf("waste area %q: id must be lowercase with underscores", a.ID))
		}
		if a.DailyKG < 0 || a.BiodegradableFraction < 0 || a.BiodegradableFraction > 1 {
			errs = append(errs, fmt.Errorf("waste area %q: invalid profile", a.ID))
		}
		if a.ID == doc.DefaultWasteArea {
			defaultFound = true
		}
	}
	if !defaultFound {
		errs = append(errs, fmt.Errorf("default_waste_area %q not found in waste_areas", doc.DefaultWasteArea))
	}

	for _, p := range doc.Plants {
		if p.CanopyRadiusM <= 0 {
			errs = append(errs, fmt.Errorf("plant %q: canopy_radius_m must be positive", p.ID))
		}
	}

	return errors.Join(errs...)
}

func uniqueIDs(kind string, n int, id func(int) string) []error {
	var errs []error
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		switch {
		case v == "":
			errs = append(errs, fmt.Errorf("%s #%d: id is required", kind, i))
		case seen[v]:
			errs = append(errs, fmt.Errorf("%s %q: duplicate id", kind, v))
		}
		seen[v] = true
	}
	return errs
}

// NormalizeKey lowercases s and replaces spaces with underscores.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
