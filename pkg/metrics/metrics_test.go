// pkg/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorderWithRegistry(prometheus.NewRegistry())

	rec.ProviderRequest("authenticationRequest", "ok")
	rec.ProviderRequest("authenticationRequest", "ok")
	rec.ProviderRequest("authenticationDataRequest", "fault")
	rec.TokenIssued()
	rec.TokenRedemption("hit")
	rec.TokenRedemption("miss")
	rec.RegistryReload("error")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.providerRequests.WithLabelValues("authenticationRequest", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.providerRequests.WithLabelValues("authenticationDataRequest", "fault")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.tokensIssued))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.tokenRedemptions.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.tokenRedemptions.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.registryReloads.WithLabelValues("error")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ProviderRequest("authenticationRequest", "ok")
		rec.TokenIssued()
		rec.TokenRedemption("hit")
		rec.RegistryReload("ok")
	})
}
