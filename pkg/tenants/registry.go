package tenants

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"viispgw/pkg/metrics"
	"viispgw/pkg/viisp"
)

// ErrUnknownTenant reports a secret key with no provisioned application.
// The boundary maps it to 401; a resolved tenant with a disabled flow is a
// separate 403 decision made there.
var ErrUnknownTenant = errors.New("unknown tenant")

const defaultReloadInterval = 300 * time.Second

// Registry resolves secret keys to tenant configuration. The resolved map
// lives in an immutable snapshot behind an atomic pointer: reload builds a
// fresh map and swaps it in wholesale, so readers never observe a
// half-populated state and need no lock.
type Registry struct {
	source Source
	log    *zap.SugaredLogger
	rec    *metrics.Recorder

	mu   sync.Mutex // serializes reload; lookups never take it
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	data       map[string]*TenantConfig
	nextReload time.Time
}

// NewRegistry builds the registry and performs the initial load.
func NewRegistry(source Source, log *zap.SugaredLogger, rec *metrics.Recorder) *Registry {
	r := &Registry{source: source, log: log, rec: rec}
	r.reload(time.Now())
	return r
}

// Resolve returns the tenant for a secret key. When the current snapshot is
// past its reload deadline the catalogs are re-read first; the triggering
// caller blocks on the rebuild, which is cheap relative to its interval.
func (r *Registry) Resolve(key string) (*TenantConfig, error) {
	now := time.Now()
	snap := r.snap.Load()
	if snap == nil || now.After(snap.nextReload) {
		snap = r.reload(now)
	}
	if t, ok := snap.data[key]; ok {
		return t, nil
	}
	return nil, ErrUnknownTenant
}

func (r *Registry) reload(now time.Time) *snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have finished the same reload while we waited.
	if snap := r.snap.Load(); snap != nil && now.Before(snap.nextReload) {
		return snap
	}

	cat, err := r.source.Load()
	if err != nil {
		r.log.Errorw("tenant catalog load failed", "err", err)
		r.rec.RegistryReload("error")
		// Keep serving the previous snapshot and retry next interval.
		prev := r.snap.Load()
		next := &snapshot{data: map[string]*TenantConfig{}, nextReload: now.Add(defaultReloadInterval)}
		if prev != nil {
			next.data = prev.data
		}
		r.snap.Store(next)
		return next
	}

	interval := defaultReloadInterval
	if cat.ReloadSeconds > 0 {
		interval = time.Duration(cat.ReloadSeconds) * time.Second
	}

	data := make(map[string]*TenantConfig, len(cat.Applications))
	for name, app := range cat.Applications {
		// No mapped secret means "not yet provisioned", not an error.
		if app.Secret == "" {
			continue
		}
		t, err := buildTenant(name, app, cat)
		if err != nil {
			// An invalid certificate must never produce a usable-looking
			// tenant; the entry is dropped until the catalog is fixed.
			r.log.Errorw("tenant dropped from snapshot", "tenant", name, "err", err)
			continue
		}
		data[app.Secret] = t
	}

	next := &snapshot{data: data, nextReload: now.Add(interval)}
	r.snap.Store(next)
	r.rec.RegistryReload("ok")
	r.log.Infow("tenant registry reloaded", "tenants", len(data), "next_reload", next.nextReload)
	return next
}

func buildTenant(name string, app ApplicationEntry, cat *Catalog) (*TenantConfig, error) {
	certRef := app.Certificate
	if certRef == "" {
		certRef = "Default"
	}
	signer, err := viisp.NewSigner(cat.Certificates[certRef].Bundle, cat.Certificates[certRef].Passphrase)
	if err != nil {
		return nil, err
	}

	tmplRef := app.Template
	if tmplRef == "" {
		tmplRef = "Default"
	}
	var template *viisp.AuthenticationRequest
	if tmpl, ok := cat.Templates[tmplRef]; ok {
		tmplCopy := tmpl
		template = &tmplCopy
	} else {
		template = viisp.DefaultTemplate()
	}

	return &TenantConfig{
		SecretKey:           app.Secret,
		Name:                name,
		AllowLegacyFlow:     app.AllowLegacyFlow,
		ExposeRawIdentifier: app.ExposeRawIdentifier,
		AllowUserLookup:     app.AllowUserLookup,
		Viisp: viisp.Config{
			Signer:      signer,
			SubmitURL:   firstNonEmpty(app.SubmitURL, cat.SubmitURL, viisp.DefaultSubmitURL),
			TicketURL:   firstNonEmpty(app.TicketURL, cat.TicketURL, viisp.DefaultTicketURL),
			PID:         app.PartyID,
			PostbackURL: firstNonEmpty(app.PostbackURL, template.PostbackURL),
			Template:    template,
		},
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
