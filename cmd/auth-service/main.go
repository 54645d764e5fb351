// cmd/auth-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viispgw/internal/authapi"
	"viispgw/internal/users"
	"viispgw/pkg/config"
	"viispgw/pkg/db"
	"viispgw/pkg/logger"
	"viispgw/pkg/metrics"
	"viispgw/pkg/tenants"
	"viispgw/pkg/tokens"
	"viispgw/pkg/viisp"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.Debug)

	pool := db.MustConnect(cfg, log)
	rdb := db.MustRedis(cfg, log)

	rec := metrics.NewRecorder()
	registry := tenants.NewRegistry(tenants.FileSource{Path: cfg.TenantFile}, log, rec)

	var broker tokens.Broker
	if rdb != nil {
		broker = tokens.NewRedisBroker(rdb, cfg.TokenTTL)
		log.Infow("token broker: redis", "ttl", cfg.TokenTTL)
	} else {
		broker = tokens.NewMemoryBroker(cfg.TokenTTL, cfg.TokenCleanup)
		log.Infow("token broker: memory", "ttl", cfg.TokenTTL, "cleanup", cfg.TokenCleanup)
	}

	var store *users.Store
	if pool != nil {
		if err := users.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalw("schema", "err", err)
		}
		store = users.NewStore(pool, log)
	}

	client := viisp.NewClient(log, rec)
	app := authapi.New(log, registry, client, broker, store, rec, cfg.Debug)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: app.Handler()}
	go func() {
		log.Infow("auth-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	fmt.Println("auth-service stopped")
}
