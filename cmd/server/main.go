package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"timeoff/internal/app/server"
	"timeoff/internal/platform/config"
	"timeoff/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer cleanup()

	if cfg.RunSeed {
		if err := storage.Seed(ctx, store, cfg.SeedPassword, cfg.PTOAnnualDays, time.Now()); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app := server.New(cfg, store)
	defer app.Close()

	log.Printf("time-off server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// openStore picks Postgres when DATABASE_URL is set, the JSON file store
// otherwise.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store := storage.NewPGStore(pool)
		if err := store.Bootstrap(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Println("using postgres document store")
		return store, pool.Close, nil
	}

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("using file store in %s", cfg.DataDir)
	return store, func() {}, nil
}
