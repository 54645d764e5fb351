// pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the gateway's Prometheus collectors. A nil *Recorder is a
// valid no-op, so components can take one without caring whether metrics
// are wired up.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	tokensIssued     prometheus.Counter
	tokenRedemptions *prometheus.CounterVec
	registryReloads  *prometheus.CounterVec
}

// NewRecorder registers the collectors on the default registry.
func NewRecorder() *Recorder {
	return NewRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewRecorderWithRegistry registers on a custom registry. Use this in tests.
func NewRecorderWithRegistry(reg prometheus.Registerer) *Recorder {
	providerRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viispgw_provider_requests_total",
		Help: "Signed protocol calls to the identity provider",
	}, []string{"operation", "result"})

	tokensIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viispgw_tokens_issued_total",
		Help: "Authentication tokens handed to external callers",
	})

	tokenRedemptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viispgw_token_redemptions_total",
		Help: "Token redemption attempts",
	}, []string{"result"})

	registryReloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "viispgw_registry_reloads_total",
		Help: "Tenant registry reload attempts",
	}, []string{"result"})

	reg.MustRegister(providerRequests, tokensIssued, tokenRedemptions, registryReloads)

	return &Recorder{
		providerRequests: providerRequests,
		tokensIssued:     tokensIssued,
		tokenRedemptions: tokenRedemptions,
		registryReloads:  registryReloads,
	}
}

func (r *Recorder) ProviderRequest(operation, result string) {
	if r == nil {
		return
	}
	r.providerRequests.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) TokenIssued() {
	if r == nil {
		return
	}
	r.tokensIssued.Inc()
}

func (r *Recorder) TokenRedemption(result string) {
	if r == nil {
		return
	}
	r.tokenRedemptions.WithLabelValues(result).Inc()
}

func (r *Recorder) RegistryReload(result string) {
	if r == nil {
		return
	}
	r.registryReloads.WithLabelValues(result).Inc()
}
