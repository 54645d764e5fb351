// pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// TenantFile is the YAML catalog the registry reloads from; the reload
	// interval lives inside the file next to the data it governs.
	TenantFile string

	// Debug dumps provider responses to the log at debug level.
	Debug bool

	TokenTTL     time.Duration
	TokenCleanup time.Duration

	// Redis & Postgres are both optional: without Redis tokens live in
	// process memory, without Postgres user records are not persisted.
	RedisURL    string
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:          env("VIISP_ENV", "dev"),
		HTTPAddr:     env("VIISP_HTTP_ADDR", ":8080"),
		TenantFile:   env("VIISP_TENANT_FILE", "tenants.yaml"),
		Debug:        envBool("VIISP_DEBUG", false),
		TokenTTL:     envDur("TOKEN_TTL_SEC", 300) * time.Second,
		TokenCleanup: envDur("TOKEN_CLEANUP_SEC", 3600) * time.Second,
		RedisURL:     env("REDIS_URL", ""),
		DatabaseURL:  env("DATABASE_URL", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Println("[WARN] DATABASE_URL not set, user records will not be persisted")
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return def
}

func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
