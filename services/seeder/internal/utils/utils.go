package utils

import (
	"fmt"
	"strings"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/models"
)

// BuildRows converts a validated registry into database-ready rows. Row
// positions follow document order so the API reads tables back unchanged.
func BuildRows(reg *registry.Registry) models.Rows {
	doc := reg.Document()
	var rows models.Rows

	for i, p := range doc.WaterParameters {
		rows.WaterParameters = append(rows.WaterParameters, models.WaterParameterRow{
			Name: p.Name, Min: p.Min, Max: p.Max, Mean: p.Mean, StdDev: p.StdDev,
			Absolute: p.Absolute, Position: i,
		})
	}
	for i, z := range doc.WaterZones {
		rows.WaterZones = append(rows.WaterZones, models.WaterZoneRow{
			ID: z.ID, Name: z.Name, Lat: z.Lat, Lon: z.Lon, Degraded: z.Degraded, Position: i,
		})
	}
	for i, z := range doc.FootfallZones {
		rows.FootfallZones = append(rows.FootfallZones, models.FootfallZoneRow{
			ID: z.ID, Name: z.Name, CapacityPPH: z.CapacityPPH, Lat: z.Lat, Lon: z.Lon,
			Shared: z.Shared, ConflictType: NullableString(z.ConflictType), Position: i,
		})
	}
	for i, l := range doc.ParkingLots {
		rows.ParkingLots = append(rows.ParkingLots, models.ParkingLotRow{
			ID: l.ID, Name: l.Name, Capacity: l.Capacity, Lat: l.Lat, Lon: l.Lon, Position: i,
		})
	}
	for i, a := range doc.WasteAreas {
		rows.WasteAreas = append(rows.WasteAreas, models.WasteAreaRow{
			ID: a.ID, Name: a.Name, DailyKG: a.DailyKG, BiodegradableFraction: a.BiodegradableFraction,
			IsDefault: a.ID == doc.DefaultWasteArea, Position: i,
		})
	}
	for i, p := range doc.Plants {
		benefits := p.Benefits
		if benefits == nil {
			benefits = []string{}
		}
		rows.Plants = append(rows.Plants, models.PlantRow{
			ID: p.ID, Name: p.Name, PlantType: p.Type,
			PHMin: p.PH.Min, PHMax: p.PH.Max,
			MoistureMin: p.Moisture.Min, MoistureMax: p.Moisture.Max,
			NitrogenMin: p.Nitrogen.Min, NitrogenMax: p.Nitrogen.Max,
			CO2KgPerYear: p.CO2KgPerYear, WaterRequirement: p.WaterRequirement,
			GrowthRate: p.GrowthRate, CanopyRadiusM: p.CanopyRadiusM,
			Benefits: benefits, Position: i,
		})
	}
	for i, t := range doc.SpaceTypes {
		rows.SpaceTypes = append(rows.SpaceTypes, models.SpaceTypeRow{Name: t, Position: i})
	}
	return rows
}

// NullableString maps blank strings to nil.
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Summary renders per-table row counts for logging.
func Summary(rows models.Rows) string {
	return fmt.Sprintf("water_parameters=%d water_zones=%d footfall_zones=%d parking_lots=%d waste_areas=%d plants=%d space_types=%d",
		len(rows.WaterParameters), len(rows.WaterZones), len(rows.FootfallZones),
		len(rows.ParkingLots), len(rows.WasteAreas), len(rows.Plants), len(rows.SpaceTypes))
}

// IsRemote reports whether a registry source should be fetched over HTTP.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
