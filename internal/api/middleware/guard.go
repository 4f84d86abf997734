package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// Action is what the guard does with a navigation.
type Action string

const (
	ActionResolving Action = "resolving"
	ActionRender    Action = "render"
	ActionRedirect  Action = "redirect"
)

// Decision is the guard's verdict for one navigation. Location is set for
// redirects only.
type Decision struct {
	Action   Action
	Location string
}

// Routes names the two views the guard treats specially. Everything else
// is the protected tree.
type Routes struct {
	SignIn string
	Root   string
}

// DefaultRoutes returns the console's sign-in and dashboard paths.
func DefaultRoutes() Routes {
	return Routes{SignIn: "/login", Root: "/"}
}

// IsSignIn reports whether target addresses the sign-in view.
func (r Routes) IsSignIn(target string) bool {
	return target == r.SignIn || strings.HasPrefix(target, strings.TrimRight(r.SignIn, "/")+"/")
}

// Decide maps a session status and a navigation target to an action.
// While resolving nothing redirects, so a reload of a valid session never
// flashes the sign-in view.
func Decide(status domain.Status, target string, routes Routes) Decision {
	signIn := routes.IsSignIn(target)
	switch status {
	case domain.StatusAuthenticated:
		if signIn {
			return Decision{Action: ActionRedirect, Location: routes.Root}
		}
		return Decision{Action: ActionRender}
	case domain.StatusAnonymous:
		if signIn {
			return Decision{Action: ActionRender}
		}
		return Decision{Action: ActionRedirect, Location: routes.SignIn}
	default:
		return Decision{Action: ActionResolving}
	}
}

// statusSource is the part of the session authority the guard watches.
type statusSource interface {
	Current() domain.Session
	Subscribe(listener ports.SessionListener) (unsubscribe func())
}

type resolvingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Guard gates every console route on the session status. Each request is
// decided against the authority's current status; the subscription only
// logs the transitions that trigger re-evaluation.
type Guard struct {
	source      statusSource
	routes      Routes
	log         zerolog.Logger
	unsubscribe func()
}

// NewGuard returns a guard reading its status from source.
func NewGuard(source statusSource, routes Routes, log zerolog.Logger) *Guard {
	g := &Guard{source: source, routes: routes, log: log}
	g.unsubscribe = source.Subscribe(g.onSessionEvent)
	return g
}

// Status returns the status the guard currently enforces.
func (g *Guard) Status() domain.Status {
	return g.source.Current().Status
}

// Close stops following the authority.
func (g *Guard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}

func (g *Guard) onSessionEvent(ev domain.SessionEvent) {
	if ev.Kind != domain.EventTransition {
		return
	}
	e := g.log.Info().
		Str("from", string(ev.From)).
		Str("to", string(ev.Session.Status))
	if ev.Redirect != "" {
		e = e.Str("redirect", ev.Redirect)
	}
	e.Msg("session transition, re-evaluating access")
}

// Middleware applies Decide to each request. Redirects use 303 so the
// protected URL is not kept as a resubmittable history entry.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := Decide(g.Status(), c.Request().URL.Path, g.routes)
			switch d.Action {
			case ActionResolving:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, resolvingResponse{
					Status:  string(domain.StatusResolving),
					Message: "resolving session",
				})
			case ActionRedirect:
				return c.Redirect(http.StatusSeeOther, d.Location)
			default:
				return next(c)
			}
		}
	}
}
