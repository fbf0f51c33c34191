package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/logger"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/config"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/db"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/source"
	"github.com/02loveslollipop/campus-pulse/services/seeder/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seeder failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg.LogLevel, "")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}

	reg, err := source.Load(ctx, client, cfg.Source)
	if err != nil {
		return err
	}
	rows := utils.BuildRows(reg)
	lg.WithField("source", cfg.Source).Infof("registry loaded: %s", utils.Summary(rows))

	if cfg.DryRun {
		for _, l := range rows.ParkingLots {
			lg.WithFields(logrus.Fields{"id": l.ID, "capacity": l.Capacity}).Info("dry-run: would upsert parking lot")
		}
		for _, p := range rows.Plants {
			lg.WithFields(logrus.Fields{"id": p.ID, "type": p.PlantType}).Info("dry-run: would upsert plant")
		}
		lg.Infof("dry-run: skipping database writes (prune=%v)", cfg.Prune)
		return nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	if err := db.UpsertRegistry(ctx, pool, rows, cfg.Prune); err != nil {
		return err
	}

	counts, err := db.CountRows(ctx, pool)
	if err != nil {
		return err
	}
	fields := logrus.Fields{}
	for t, n := range counts {
		fields[t] = n
	}
	lg.WithFields(fields).Info("registry seeded")
	return nil
}
