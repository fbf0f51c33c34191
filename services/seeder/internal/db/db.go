package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/models"
)

// schemaSQL creates the registry tables read by the API's postgres source.
const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS campus;

CREATE TABLE IF NOT EXISTS campus.water_parameters (
    name      TEXT PRIMARY KEY,
    min_value DOUBLE PRECISION NOT NULL,
    max_value DOUBLE PRECISION NOT NULL,
    mean      DOUBLE PRECISION NOT NULL,
    stddev    DOUBLE PRECISION NOT NULL,
    absolute  BOOLEAN NOT NULL DEFAULT FALSE,
    position  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.water_zones (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    lat      DOUBLE PRECISION NOT NULL,
    lon      DOUBLE PRECISION NOT NULL,
    degraded BOOLEAN NOT NULL DEFAULT FALSE,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.footfall_zones (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    capacity_pph  INTEGER NOT NULL CHECK (capacity_pph > 0),
    lat           DOUBLE PRECISION NOT NULL,
    lon           DOUBLE PRECISION NOT NULL,
    shared        BOOLEAN NOT NULL DEFAULT FALSE,
    conflict_type TEXT,
    position      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.parking_lots (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    lat      DOUBLE PRECISION NOT NULL,
    lon      DOUBLE PRECISION NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.waste_areas (
    id                     TEXT PRIMARY KEY,
    name                   TEXT NOT NULL,
    daily_kg               DOUBLE PRECISION NOT NULL,
    biodegradable_fraction DOUBLE PRECISION NOT NULL,
    is_default             BOOLEAN NOT NULL DEFAULT FALSE,
    position               INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.plants (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    plant_type        TEXT NOT NULL,
    ph_min            DOUBLE PRECISION NOT NULL,
    ph_max            DOUBLE PRECISION NOT NULL,
    moisture_min      DOUBLE PRECISION NOT NULL,
    moisture_max      DOUBLE PRECISION NOT NULL,
    nitrogen_min      DOUBLE PRECISION NOT NULL,
    nitrogen_max      DOUBLE PRECISION NOT NULL,
    co2_kg_per_year   DOUBLE PRECISION NOT NULL,
    water_requirement TEXT NOT NULL,
    growth_rate       TEXT NOT NULL,
    canopy_radius_m   DOUBLE PRECISION NOT NULL CHECK (canopy_radius_m > 0),
    benefits          TEXT[] NOT NULL DEFAULT '{}',
    position          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campus.space_types (
    name     TEXT PRIMARY KEY,
    position INTEGER NOT NULL DEFAULT 0
);
`

// EnsureSchema creates the campus schema and tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertRegistry writes every registry row in a single transaction. With
// prune set, rows whose key is absent from the new set are deleted.
func UpsertRegistry(ctx context.Context, pool *pgxpool.Pool, rows models.Rows, prune bool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queueRows(batch, rows)
	if prune {
		queuePrune(batch, rows)
	}

	res := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return fmt.Errorf("registry batch statement %d: %w", i, err)
		}
	}
	if err := res.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func queueRows(batch *pgx.Batch, rows models.Rows) {
	for _, p := range rows.WaterParameters {
		batch.Queue(`INSERT INTO campus.water_parameters (name, min_value, max_value, mean, stddev, absolute, position)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (name) DO UPDATE
SET min_value = EXCLUDED.min_value,
    max_value = EXCLUDED.max_value,
    mean = EXCLUDED.mean,
    stddev = EXCLUDED.stddev,
    absolute = EXCLUDED.absolute,
    position = EXCLUDED.position`,
			p.Name, p.Min, p.Max, p.Mean, p.StdDev, p.Absolute, p.Position)
	}

	for _, z := range rows.WaterZones {
		batch.Queue(`INSERT INTO campus.water_zones (id, name, lat, lon, degraded, position)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    degraded = EXCLUDED.degraded,
    position = EXCLUDED.position`,
			z.ID, z.Name, z.Lat, z.Lon, z.Degraded, z.Position)
	}

	for _, z := range rows.FootfallZones {
		batch.Queue(`INSERT INTO campus.footfall_zones (id, name, capacity_pph, lat, lon, shared, conflict_type, position)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    capacity_pph = EXCLUDED.capacity_pph,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    shared = EXCLUDED.shared,
    conflict_type = EXCLUDED.conflict_type,
    position = EXCLUDED.position`,
			z.ID, z.Name, z.CapacityPPH, z.Lat, z.Lon, z.Shared, z.ConflictType, z.Position)
	}

	for _, l := range rows.ParkingLots {
		batch.Queue(`INSERT INTO campus.parking_lots (id, name, capacity, lat, lon, position)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    capacity = EXCLUDED.capacity,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    position = EXCLUDED.position`,
			l.ID, l.Name, l.Capacity, l.Lat, l.Lon, l.Position)
	}

	// Only one area may carry the default flag, so clear it before upserting.
	batch.Queue(`UPDATE campus.waste_areas SET is_default = FALSE WHERE is_default`)
	for _, a := range rows.WasteAreas {
		batch.Queue(`INSERT INTO campus.waste_areas (id, name, daily_kg, biodegradable_fraction, is_default, position)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    daily_kg = EXCLUDED.daily_kg,
    biodegradable_fraction = EXCLUDED.biodegradable_fraction,
    is_default = EXCLUDED.is_default,
    position = EXCLUDED.position`,
			a.ID, a.Name, a.DailyKG, a.BiodegradableFraction, a.IsDefault, a.Position)
	}

	for _, p := range rows.Plants {
		batch.Queue(`INSERT INTO campus.plants (id, name, plant_type, ph_min, ph_max, moisture_min, moisture_max,
    nitrogen_min, nitrogen_max, co2_kg_per_year, water_requirement, growth_rate, canopy_radius_m, benefits, position)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    plant_type = EXCLUDED.plant_type,
    ph_min = EXCLUDED.ph_min,
    ph_max = EXCLUDED.ph_max,
    moisture_min = EXCLUDED.moisture_min,
    moisture_max = EXCLUDED.moisture_max,
    nitrogen_min = EXCLUDED.nitrogen_min,
    nitrogen_max = EXCLUDED.nitrogen_max,
    co2_kg_per_year = EXCLUDED.co2_kg_per_year,
    water_requirement = EXCLUDED.water_requirement,
    growth_rate = EXCLUDED.growth_rate,
    canopy_radius_m = EXCLUDED.canopy_radius_m,
    benefits = EXCLUDED.benefits,
    position = EXCLUDED.position`,
			p.ID, p.Name, p.PlantType, p.PHMin, p.PHMax, p.MoistureMin, p.MoistureMax,
			p.NitrogenMin, p.NitrogenMax, p.CO2KgPerYear, p.WaterRequirement, p.GrowthRate,
			p.CanopyRadiusM, p.Benefits, p.Position)
	}

	for _, s := range rows.SpaceTypes {
		batch.Queue(`INSERT INTO campus.space_types (name, position)
VALUES ($1,$2)
ON CONFLICT (name) DO UPDATE SET position = EXCLUDED.position`,
			s.Name, s.Position)
	}
}

func queuePrune(batch *pgx.Batch, rows models.Rows) {
	keys := func(n int, key func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = key(i)
		}
		return out
	}

	batch.Queue(`DELETE FROM campus.water_parameters WHERE NOT (name = ANY($1))`,
		keys(len(rows.WaterParameters), func(i int) string { return rows.WaterParameters[i].Name }))
	batch.Queue(`DELETE FROM campus.water_zones WHERE NOT (id = ANY($1))`,
		keys(len(rows.WaterZones), func(i int) string { return rows.WaterZones[i].ID }))
	batch.Queue(`DELETE FROM campus.footfall_zones WHERE NOT (id = ANY($1))`,
		keys(len(rows.FootfallZones), func(i int) string { return rows.FootfallZones[i].ID }))
	batch.Queue(`DELETE FROM campus.parking_lots WHERE NOT (id = ANY($1))`,
		keys(len(rows.ParkingLots), func(i int) string { return rows.ParkingLots[i].ID }))
	batch.Queue(`DELETE FROM campus.waste_areas WHERE NOT (id = ANY($1))`,
		keys(len(rows.WasteAreas), func(i int) string { return rows.WasteAreas[i].ID }))
	batch.Queue(`DELETE FROM campus.plants WHERE NOT (id = ANY($1))`,
		keys(len(rows.Plants), func(i int) string { return rows.Plants[i].ID }))
	batch.Queue(`DELETE FROM campus.space_types WHERE NOT (name = ANY($1))`,
		keys(len(rows.SpaceTypes), func(i int) string { return rows.SpaceTypes[i].Name }))
}

// CountRows reports how many records each registry table holds.
func CountRows(ctx context.Context, pool *pgxpool.Pool) (map[string]int, error) {
	tables := []string{"water_parameters", "water_zones", "footfall_zones", "parking_lots", "waste_areas", "plants", "space_types"}
	counts := make(map[string]int, len(tables))
	for _, t := range tables {
		var n int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM campus."+t).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		counts[t] = n
	}
	return counts, nil
}
