// internal/authapi/app.go
package authapi

import (
	"go.uber.org/zap"

	"viispgw/internal/users"
	"viispgw/pkg/metrics"
	"viispgw/pkg/tenants"
	"viispgw/pkg/tokens"
	"viispgw/pkg/viisp"
)

// App is the gateway's HTTP surface: it resolves tenants, drives the signed
// protocol client and brokers tokens. Handlers and routing are methods on
// this type.
//
// Keep it lean: shared deps only. Request-scoped work uses context.
type App struct {
	log      *zap.SugaredLogger
	registry *tenants.Registry
	client   *viisp.Client
	broker   tokens.Broker
	users    *users.Store // nil when no database is configured
	rec      *metrics.Recorder
	debug    bool
}

func New(log *zap.SugaredLogger, registry *tenants.Registry, client *viisp.Client, broker tokens.Broker, store *users.Store, rec *metrics.Recorder, debug bool) *App {
	return &App{
		log:      log,
		registry: registry,
		client:   client,
		broker:   broker,
		users:    store,
		rec:      rec,
		debug:    debug,
	}
}
