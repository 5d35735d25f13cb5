// Package crmsync pushes leads to an external CRM. Pushes are best-effort:
// the lead store treats any error returned here as a logged warning, never as
// a failure of the local write.
package crmsync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/resilience"
)

// Pusher sends one lead to an external system.
type Pusher interface {
	Push(ctx context.Context, lead *model.Lead) error
}

// HTTPOptions configures the HTTP pusher.
type HTTPOptions struct {
	// Timeout bounds each push so an unreachable remote cannot stall the
	// caller. Defaults to 10s.
	Timeout time.Duration
	// RPS rate-limits pushes; zero disables limiting.
	RPS float64
}

// HTTPPusher posts leads to {apiURL}/leads with a bearer token, the generic
// external CRM contract.
type HTTPPusher struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTP creates an HTTPPusher for the given endpoint and key.
func NewHTTP(apiURL, apiKey string, opts HTTPOptions) *HTTPPusher {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	p := &HTTPPusher{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: opts.Timeout},
	}
	if opts.RPS > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(opts.RPS), max(int(opts.RPS), 1))
	}
	return p
}

// Push sends the full lead as JSON. Any non-2xx response is a failure.
func (p *HTTPPusher) Push(ctx context.Context, lead *model.Lead) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "crmsync: rate limit")
		}
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "crmsync: marshal lead")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/leads", bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "crmsync: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return eris.Wrapf(err, "crmsync: push lead %s", lead.ID)
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := eris.Errorf("crmsync: push lead %s: unexpected status %d", lead.ID, resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(err, resp.StatusCode)
		}
		return err
	}
	return nil
}
