package main

import (
	"context"
	"log"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/database/migration"
	"mentorhub/internal/database/seeder"
	dbpostgres "mentorhub/internal/database/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("seed complete")
}
