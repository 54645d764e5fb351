// pkg/middleware/tenant.go
package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"viispgw/pkg/problems"
	"viispgw/pkg/tenants"
)

type ctxTenantKey struct{}

// WithTenant resolves the {key} path parameter against the registry and
// stores the tenant on the request context. The secret key is the caller's
// credential, so an unknown key ends the request with 401; per-flow policy
// (403) is decided by the handlers on the resolved tenant.
func WithTenant(reg *tenants.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, err := reg.Resolve(chi.URLParam(r, "key"))
			if err != nil {
				problems.Write(w, http.StatusUnauthorized, "unknown-application", "secret key not recognized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxTenantKey{}, t)))
		})
	}
}

// TenantFrom returns the tenant stored by WithTenant, or nil outside it.
func TenantFrom(ctx context.Context) *tenants.TenantConfig {
	if v := ctx.Value(ctxTenantKey{}); v != nil {
		return v.(*tenants.TenantConfig)
	}
	return nil
}
