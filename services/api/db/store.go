package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const waterParametersSQL = `
    SELECT name, min_value, max_value, mean, stddev, absolute
    FROM campus.water_parameters
    ORDER BY position, name
`

const waterZonesSQL = `
    SELECT id, name, lat, lon, degraded
    FROM campus.water_zones
    ORDER BY position, id
`

const footfallZonesSQL = `
    SELECT id, name, capacity_pph, lat, lon, shared, COALESCE(conflict_type, '')
    FROM campus.footfall_zones
    ORDER BY position, id
`

const parkingLotsSQL = `
    SELECT id, name, capacity, lat, lon
    FROM campus.parking_lots
    ORDER BY position, id
`

const wasteAreasSQL = `
    SELECT id, name, daily_kg, biodegradable_fraction, is_default
    FROM campus.waste_areas
    ORDER BY position, id
`

const plantsSQL = `
    SELECT id, name, plant_type, ph_min, ph_max, moisture_min, moisture_max,
           nitrogen_min, nitrogen_max, co2_kg_per_year, water_requirement,
           growth_rate, canopy_radius_m, benefits
    FROM campus.plants
    ORDER BY position, id
`

const spaceTypesSQL = `
    SELECT name FROM campus.space_types ORDER BY position, name
`

func collect[T any](ctx context.Context, pool *pgxpool.Pool, sql string, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, fn)
}

// LoadDocument reads the campus registry tables. Empty tables leave their
// section empty so registry.New fills it from the built-in profiles.
func (s *Store) LoadDocument(ctx context.Context) (registry.Document, error) {
	var doc registry.Document
	var err error

	doc.WaterParameters, err = collect(ctx, s.pool, waterParametersSQL, func(row pgx.CollectableRow) (registry.WaterParameter, error) {
		var p registry.WaterParameter
		err := row.Scan(&p.Name, &p.Min, &p.Max, &p.Mean, &p.StdDev, &p.Absolute)
		return p, err
	})
	if err != nil {
		return doc, fmt.Errorf("load water parameters: %w", err)
	}

	doc.WaterZones, err = collect(ctx, s.pool, waterZonesSQL, func(row pgx.CollectableRow) (registry.WaterZone, error) {
		var z registry.WaterZone
		err := row.Scan(&z.ID, &z.Name, &z.Lat, &z.Lon, &z.Degraded)
		return z, err
	})
	if err != nil {
		return doc, fmt.Errorf("load water zones: %w", err)
	}

	doc.FootfallZones, err = collect(ctx, s.pool, footfallZonesSQL, func(row pgx.CollectableRow) (registry.FootfallZone, error) {
		var z registry.FootfallZone
		err := row.Scan(&z.ID, &z.Name, &z.CapacityPPH, &z.Lat, &z.Lon, &z.Shared, &z.ConflictType)
		return z, err
	})
	if err != nil {
		return doc, fmt.Errorf("load footfall zones: %w", err)
	}

	doc.ParkingLots, err = collect(ctx, s.pool, parkingLotsSQL, func(row pgx.CollectableRow) (registry.ParkingLot, error) {
		var l registry.ParkingLot
		err := row.Scan(&l.ID, &l.Name, &l.Capacity, &l.Lat, &l.Lon)
		return l, err
	})
	if err != nil {
		return doc, fmt.Errorf("load parking lots: %w", err)
	}

	doc.WasteAreas, err = collect(ctx, s.pool, wasteAreasSQL, func(row pgx.CollectableRow) (registry.WasteArea, error) {
		var a registry.WasteArea
		var isDefault bool
		if err := row.Scan(&a.ID, &a.Name, &a.DailyKG, &a.BiodegradableFraction, &isDefault); err != nil {
			return a, err
		}
		if isDefault {
			if doc.DefaultWasteArea != "" {
				return a, errors.New("more than one default waste area")
			}
			doc.DefaultWasteArea = a.ID
		}
		return a, nil
	})
	if err != nil {
		return doc, fmt.Errorf("load waste areas: %w", err)
	}

	doc.Plants, err = collect(ctx, s.pool, plantsSQL, func(row pgx.CollectableRow) (registry.Plant, error) {
		var p registry.Plant
		err := row.Scan(&p.ID, &p.Name, &p.Type,
			&p.PH.Min, &p.PH.Max, &p.Moisture.Min, &p.Moisture.Max, &p.Nitrogen.Min, &p.Nitrogen.Max,
			&p.CO2KgPerYear, &p.WaterRequirement, &p.GrowthRate, &p.CanopyRadiusM, &p.Benefits)
		return p, err
	})
	if err != nil {
		return doc, fmt.Errorf("load plants: %w", err)
	}

	doc.SpaceTypes, err = collect(ctx, s.pool, spaceTypesSQL, pgx.RowTo[string])
	if err != nil {
		return doc, fmt.Errorf("load space types: %w", err)
	}

	return doc, nil
}

// LoadRegistry builds a validated registry from the database.
func (s *Store) LoadRegistry(ctx context.Context) (*registry.Registry, error) {
	doc, err := s.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	return registry.New(doc)
}
