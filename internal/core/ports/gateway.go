package ports

import (
	"context"
	"net/url"
)

// Request describes one backend call. Path is relative to the configured
// base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Gateway is the single egress to the backend. Do decodes the unwrapped
// payload into out (which may be nil) or returns a *domain.Failure.
type Gateway interface {
	Do(ctx context.Context, req Request, out any) error
}
