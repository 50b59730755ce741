package main

import (
	"context"
	"fmt"
	"os"

	"tourmarket/pkg/config"
	"tourmarket/pkg/db"
)

func main() {
	cfg := config.Load()
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "file://migrations"
	}
	if cfg.DatabaseURL == "" && cfg.DirectURL == "" {
		fmt.Fprintln(os.Stderr, "missing DATABASE_URL (or DIRECT_URL)")
		os.Exit(2)
	}

	// Uses DIRECT_URL when set.
	if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}

	// Ensure the runtime connection opens too. DSNs are never printed.
	pool, err := db.Open(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime db open failed: %v\n", err)
		os.Exit(1)
	}
	pool.Close()

	fmt.Println("migrations applied")
}
