package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// ErrSessionResolving is reported while the session is still hydrating.
var ErrSessionResolving = errors.New("session still resolving")

// SessionCheck is healthy once the session has left the resolving state.
func SessionCheck(current func() domain.Session) Check {
	return func(context.Context) error {
		if current().Status == domain.StatusResolving {
			return ErrSessionResolving
		}
		return nil
	}
}

// ReadinessHandler handles GET /health/ready: readiness probe.
// Runs every registered check before declaring the console ready.
type ReadinessHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

func NewReadinessHandler(checks map[string]Check) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]dependencyStatus, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
