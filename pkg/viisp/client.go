// pkg/viisp/client.go
package viisp

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"viispgw/pkg/metrics"
)

// Client talks the signed SOAP protocol. One Client is shared by all tenants
// for the process lifetime; it owns the pooled outbound HTTP connections.
// Per-call behavior (endpoint, signer, defaults) comes from the tenant's
// Config, so the Client itself is stateless and safe for concurrent use.
type Client struct {
	http *http.Client
	log  *zap.SugaredLogger
	rec  *metrics.Recorder
}

func NewClient(log *zap.SugaredLogger, rec *metrics.Recorder) *Client {
	return &Client{
		http: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:  log,
		rec:  rec,
	}
}

// result is satisfied by the typed response structs so the generic execute
// can attach protocol faults without reflection.
type result[T any] interface {
	*T
	setFault(*Fault)
}

// execute signs the serialized request, wraps it in a SOAP envelope, POSTs
// it and resolves the response. Protocol-level failures come back as a
// response with its Error set; only transport breakdowns, cancellation and
// signing failures surface as Go errors. There are no retries: on
// cancellation the request is abandoned.
func execute[T any, PT result[T]](ctx context.Context, c *Client, cfg Config, root *etree.Element, pick func(*soapBody) *T) (*T, error) {
	op := root.Tag

	signed, err := cfg.Signer.Sign(root)
	if err != nil {
		return nil, err
	}
	payload, err := newEnvelope(signed).WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.SubmitURL, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/xml")

	rsp, err := c.http.Do(req)
	if err != nil {
		c.rec.ProviderRequest(op, "transport_error")
		return nil, fmt.Errorf("post %s: %w", op, err)
	}
	defer rsp.Body.Close()

	raw, err := io.ReadAll(rsp.Body)
	if err != nil {
		c.rec.ProviderRequest(op, "transport_error")
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	out := PT(new(T))
	switch {
	case len(bytes.TrimSpace(raw)) == 0:
		out.setFault(faultf(faultCodeEmpty, "Missing response body"))
	default:
		var env soapEnvelope
		if err := xml.Unmarshal(raw, &env); err != nil {
			c.log.Debugw("unparseable provider response", "operation", op, "status", rsp.StatusCode, "err", err)
			out.setFault(faultf(faultCodeFormat, "Invalid response format"))
		} else if env.Body == nil {
			out.setFault(faultf(faultCodeEmpty, "Missing response body"))
		} else if p := pick(env.Body); p != nil && rsp.StatusCode/100 == 2 {
			c.rec.ProviderRequest(op, "ok")
			return p, nil
		} else if env.Body.Fault != nil {
			out.setFault(env.Body.Fault)
		} else {
			out.setFault(faultf(faultCodeError, "Response type not found"))
		}
	}
	c.rec.ProviderRequest(op, "fault")
	c.log.Infow("provider fault", "operation", op, "status", rsp.StatusCode, "fault", (*T)(out))
	return (*T)(out), nil
}
