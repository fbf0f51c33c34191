package models

// WaterParameterRow is a campus.water_parameters record.
type WaterParameterRow struct {
	Name     string
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	Absolute bool
	Position int
}

// WaterZoneRow is a campus.water_zones record.
type WaterZoneRow struct {
	ID       string
	Name     string
	Lat      float64
	Lon      float64
	Degraded bool
	Position int
}

// FootfallZoneRow is a campus.footfall_zones record. An empty conflict type
// is stored as NULL.
type FootfallZoneRow struct {
	ID           string
	Name         string
	CapacityPPH  int
	Lat          float64
	Lon          float64
	Shared       bool
	ConflictType *string
	Position     int
}

// ParkingLotRow is a campus.parking_lots record.
type ParkingLotRow struct {
	ID       string
	Name     string
	Capacity int
	Lat      float64
	Lon      float64
	Position int
}

// WasteAreaRow is a campus.waste_areas record.
type WasteAreaRow struct {
	ID                    string
	Name                  string
	DailyKG               float64
	BiodegradableFraction float64
	IsDefault             bool
	Position              int
}

// PlantRow is a campus.plants record with its ranges flattened.
type PlantRow struct {
	ID               string
	Name             string
	PlantType        string
	PHMin            float64
	PHMax            float64
	MoistureMin      float64
	MoistureMax      float64
	NitrogenMin      float64
	NitrogenMax      float64
	CO2KgPerYear     float64
	WaterRequirement string
	GrowthRate       string
	CanopyRadiusM    float64
	Benefits         []string
	Position         int
}

// SpaceTypeRow is a campus.space_types record.
type SpaceTypeRow struct {
	Name     string
	Position int
}

// Rows is the full set of registry records written in one run.
type Rows struct {
	WaterParameters []WaterParameterRow
	WaterZones      []WaterZoneRow
	FootfallZones   []FootfallZoneRow
	ParkingLots     []ParkingLotRow
	WasteAreas      []WasteAreaRow
	Plants          []PlantRow
	SpaceTypes      []SpaceTypeRow
}
