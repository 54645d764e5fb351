// internal/authapi/server.go
package authapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"viispgw/pkg/middleware"
	"viispgw/pkg/problems"
	"viispgw/pkg/viisp"
)

// Handler builds the HTTP handler with routes and middleware.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(a.log))
	r.Use(middleware.DebugWriteHeader())
	r.Use(middleware.Tracing("viisp-gateway"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

	r.Route("/auth", func(ar chi.Router) {
		ar.Route("/v1/{key}", func(vr chi.Router) {
			vr.Use(middleware.WithTenant(a.registry))
			vr.Get("/sign", a.legacySign)
			vr.Get("/data", a.legacyData)
		})
		ar.Route("/v2/{key}", func(vr chi.Router) {
			vr.Use(middleware.WithTenant(a.registry))
			vr.Get("/", a.issueToken)
			vr.Get("/{token}", a.redeemToken)
			vr.Post("/user", a.createUser)
			vr.Get("/user/{user}", a.getUser)
		})
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFault hands a provider (or synthesized) fault to the caller. The
// provider's code/message pass through verbatim.
func writeFault(w http.ResponseWriter, f *viisp.Fault) {
	writeJSON(w, http.StatusBadRequest, f)
}

// writeErr translates the errors the protocol layer can return: validation
// failures are the caller's problem, anything else means the provider could
// not be reached.
func (a *App) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *viisp.ValidationError
	if errors.As(err, &verr) {
		problems.Write(w, http.StatusBadRequest, "invalid-request", verr.Error())
		return
	}
	if r.Context().Err() != nil {
		// Caller went away; nothing useful to write.
		return
	}
	a.log.Errorw("provider call failed", "path", r.URL.Path, "err", err)
	problems.Write(w, http.StatusBadGateway, "provider-unreachable", "identity provider request failed")
}

// hostOf strips the query template from a ticket URL, leaving the bare
// authentication host callers redirect to.
func hostOf(ticketURL string) string {
	return strings.SplitN(ticketURL, "?", 2)[0]
}

func (a *App) debugDump(label string, v any) {
	if !a.debug {
		return
	}
	raw, _ := json.Marshal(v)
	a.log.Debugw(label, "payload", string(raw))
}
