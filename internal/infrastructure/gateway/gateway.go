// Package gateway is the console's only egress to the backend. It attaches
// the operator's credential to each request, unwraps the backend's
// {success, data} envelope and translates transport failures into
// *domain.Failure values.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/metrics"
)

const (
	// DefaultTimeout bounds every backend request.
	DefaultTimeout = 10 * time.Second
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:5000/api"

	maxBodyBytes = 10 << 20
)

// Options configures a Gateway. Zero values select the defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Log     zerolog.Logger
}

// Gateway implements ports.Gateway over net/http.
type Gateway struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	creds   ports.CredentialSource
	log     zerolog.Logger
	maxBody int64
}

var _ ports.Gateway = (*Gateway)(nil)

// New returns a Gateway reading credentials from creds on every request.
func New(creds ports.CredentialSource, opts Options) *Gateway {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	return &Gateway{
		baseURL: base,
		timeout: timeout,
		client:  client,
		creds:   creds,
		log:     opts.Log,
		maxBody: maxBodyBytes,
	}
}

// BaseURL returns the configured backend root.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Do sends req and decodes the unwrapped payload into out, which may be
// nil or a *json.RawMessage. Failures are returned as *domain.Failure; a
// 401 additionally signs the operator out.
func (g *Gateway) Do(ctx context.Context, req ports.Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()
	start := time.Now()

	status, err := g.do(ctx, method, requestID, req, out)

	elapsed := time.Since(start)
	outcome := "ok"
	if f, ok := domain.AsFailure(err); ok {
		outcome = string(f.Kind)
	} else if err != nil {
		outcome = "error"
	}
	metrics.GatewayRequestsTotal.WithLabelValues(method, outcome).Inc()
	metrics.GatewayRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())

	ev := g.log.Debug()
	if err != nil {
		ev = g.log.Warn().Err(err)
	}
	ev.Str("method", method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", status).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("backend request")

	return err
}

func (g *Gateway) do(ctx context.Context, method, requestID string, req ports.Request, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	httpReq, err := g.build(ctx, method, req)
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	// Read per request so a credential obtained mid-session is used at once.
	if token, ok := g.creds.Credential(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return 0, transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBody+1))
	if err != nil {
		return resp.StatusCode, transportFailure(ctx, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if int64(len(body)) > g.maxBody {
			return resp.StatusCode, &domain.Failure{
				Kind:       domain.KindMalformedResponse,
				StatusCode: resp.StatusCode,
				Message:    "response body too large",
			}
		}
		return resp.StatusCode, decodePayload(resp.StatusCode, body, out)
	}

	// Error bodies only feed the message; a truncated one falls back to
	// the status text.
	failure := statusFailure(resp.StatusCode, body)
	if failure.Kind == domain.KindUnauthorized {
		metrics.GatewaySignOutsTotal.Inc()
		g.creds.SignOut(context.WithoutCancel(ctx))
	}
	return resp.StatusCode, failure
}

func (g *Gateway) build(ctx context.Context, method string, req ports.Request) (*http.Request, error) {
	target := g.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// decodePayload returns data from a {success:true, data} shell, or the
// whole body when it has another shape. An empty body decodes nothing.
func decodePayload(status int, body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if !json.Valid(body) {
		return &domain.Failure{
			Kind:       domain.KindMalformedResponse,
			StatusCode: status,
			Message:    "response body is not JSON",
		}
	}

	payload := body
	if body[0] == '{' {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && *env.Success && env.Data != nil {
			payload = env.Data
		}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], payload...)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &domain.Failure{
			Kind:       domain.KindMalformedResponse,
			StatusCode: status,
			Message:    "unexpected response shape",
			Err:        err,
		}
	}
	return nil
}

func statusFailure(status int, body []byte) *domain.Failure {
	f := &domain.Failure{StatusCode: status, Message: serverMessage(status, body)}
	switch {
	case status == http.StatusUnauthorized:
		f.Kind = domain.KindUnauthorized
	case status == http.StatusForbidden:
		f.Kind = domain.KindForbidden
	case status == http.StatusNotFound:
		f.Kind = domain.KindNotFound
	case status >= 400 && status < 500:
		f.Kind = domain.KindClientError
	case status >= 500:
		f.Kind = domain.KindServerError
	default:
		f.Kind = domain.KindMalformedResponse
	}
	return f
}

// serverMessage lifts "message" (or "error") from an error body, falling
// back to the status text.
func serverMessage(status int, body []byte) string {
	var shell struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &shell); err == nil {
		if shell.Message != "" {
			return shell.Message
		}
		if shell.Error != "" {
			return shell.Error
		}
	}
	return http.StatusText(status)
}

func transportFailure(ctx context.Context, err error) *domain.Failure {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.Failure{
			Kind:    domain.KindTimeout,
			Message: "request timed out",
			Err:     err,
		}
	}
	return &domain.Failure{
		Kind:    domain.KindNetwork,
		Message: "network error - please check your connection",
		Err:     err,
	}
}
