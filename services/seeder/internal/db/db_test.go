package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	apidb "github.com/02loveslollipop/campus-pulse/services/api/db"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/utils"
)

// Seeds a scratch database and reads it back through the API store.
func TestUpsertRegistryRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatal(err)
	}
	rows := utils.BuildRows(registry.Default())
	for range 2 {
		if err := UpsertRegistry(ctx, pool, rows, true); err != nil {
			t.Fatalf("UpsertRegistry: %v", err)
		}
	}

	counts, err := CountRows(ctx, pool)
	if err != nil {
		t.Fatal(err)
	}
	if counts["parking_lots"] != len(rows.ParkingLots) || counts["plants"] != len(rows.Plants) {
		t.Fatalf("counts = %v", counts)
	}

	store, err := apidb.New(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	reg, err := store.LoadRegistry(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reg.DefaultWasteArea().ID != "campus_wide" {
		t.Fatalf("default waste area = %s", reg.DefaultWasteArea().ID)
	}
	if lots := reg.ParkingLots(); lots[0].ID != "P1" {
		t.Fatalf("lot order = %+v", lots)
	}
}
