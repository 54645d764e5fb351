package tenants

import (
	"viispgw/pkg/viisp"
)

// TenantConfig is one resolved application: its secret lookup key, policy
// flags and the signed-protocol configuration assembled from the catalogs.
// A TenantConfig is built wholesale on registry reload and never mutated
// afterwards, so readers may hold it across requests.
type TenantConfig struct {
	SecretKey string
	Name      string

	// AllowLegacyFlow enables the v1 endpoints that hand the raw provider
	// ticket to the caller.
	AllowLegacyFlow bool
	// ExposeRawIdentifier includes the national personal code in responses.
	ExposeRawIdentifier bool
	// AllowUserLookup enables reading stored user records by id or code.
	AllowUserLookup bool

	Viisp viisp.Config
}
