package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	AuthzOpen = "open"
	AuthzRole = "role"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DATABASE_URL: runtime connection (may be a pooler)
	// DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	// StoreDriver selects the backing store: "postgres" (default) or "memory".
	StoreDriver string

	// AllowedOrigins is a comma-separated allowlist of origins allowed to call the API from a browser.
	AllowedOrigins []string

	// AuthzMode is "open" (every caller may perform every operation) or "role".
	AuthzMode string

	// ActorTokenSecret signs acting-user bearer tokens (HS256).
	ActorTokenSecret string

	Review ReviewConfig
}

type ReviewConfig struct {
	RequirePaidBooking bool
	OnePerPackage      bool
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:           env("APP_ENV", "dev"),
		HTTPAddr:         httpAddr,
		MigrationsPath:   os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DirectURL:        os.Getenv("DIRECT_URL"),
		StoreDriver:      strings.ToLower(env("STORE_DRIVER", StorePostgres)),
		AllowedOrigins:   envList("ALLOWED_ORIGINS", "http://localhost:3000"),
		AuthzMode:        strings.ToLower(env("AUTHZ_MODE", AuthzOpen)),
		ActorTokenSecret: os.Getenv("ACTOR_TOKEN_SECRET"),
		Review: ReviewConfig{
			RequirePaidBooking: envBool("REVIEW_REQUIRE_PAID_BOOKING", false),
			OnePerPackage:      envBool("REVIEW_ONE_PER_PACKAGE", false),
		},
	}
}

// Validate reports configuration the process cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required")
		}
	case StoreMemory:
	default:
		return errors.New("STORE_DRIVER must be postgres or memory")
	}
	switch c.AuthzMode {
	case AuthzOpen, AuthzRole:
	default:
		return errors.New("AUTHZ_MODE must be open or role")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
