package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"tourmarket/internal/booking"
	"tourmarket/internal/review"
	"tourmarket/internal/seed"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
	"tourmarket/pkg/config"
	"tourmarket/pkg/db"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply migrations before seeding (MIGRATIONS_PATH or file://migrations)")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "missing DATABASE_URL")
		os.Exit(2)
	}

	ctx := context.Background()

	if *migrate {
		path := cfg.MigrationsPath
		if path == "" {
			path = "file://migrations"
		}
		if err := db.Migrate(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
	}

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	counts, err := seed.Run(ctx, seed.Stores{
		Users:    user.NewRepository(pool),
		Packages: tourpackage.NewRepository(pool),
		Bookings: booking.NewRepository(pool),
		Reviews:  review.NewRepository(pool),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(counts)
}
