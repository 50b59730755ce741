package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourmarket/internal/httpapi"
	"tourmarket/internal/memstore"
	"tourmarket/pkg/config"
	"tourmarket/pkg/db"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stores httpapi.Stores
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Printf("store driver=memory: data is lost on exit")
		stores = httpapi.MemoryStores(memstore.New())
	default:
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer conn.Close()

		if cfg.MigrationsPath != "" {
			if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
				log.Fatalf("migrate: %v", err)
			}
		}
		stores = httpapi.PostgresStores(conn)
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:    cfg,
		Stores: stores,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("http listening on %s env=%s authz=%s", cfg.HTTPAddr, cfg.AppEnv, cfg.AuthzMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}
