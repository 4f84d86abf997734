package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/storage"
)

func TestDecide(t *testing.T) {
	routes := DefaultRoutes()
	cases := []struct {
		name   string
		status domain.Status
		target string
		want   Decision
	}{
		{"resolving protected", domain.StatusResolving, "/users", Decision{Action: ActionResolving}},
		{"resolving sign-in", domain.StatusResolving, "/login", Decision{Action: ActionResolving}},
		{"anonymous protected", domain.StatusAnonymous, "/projects/p1", Decision{Action: ActionRedirect, Location: "/login"}},
		{"anonymous root", domain.StatusAnonymous, "/", Decision{Action: ActionRedirect, Location: "/login"}},
		{"anonymous sign-in", domain.StatusAnonymous, "/login", Decision{Action: ActionRender}},
		{"anonymous sign-in subpath", domain.StatusAnonymous, "/login/help", Decision{Action: ActionRender}},
		{"anonymous lookalike", domain.StatusAnonymous, "/loginx", Decision{Action: ActionRedirect, Location: "/login"}},
		{"authenticated protected", domain.StatusAuthenticated, "/users", Decision{Action: ActionRender}},
		{"authenticated sign-in", domain.StatusAuthenticated, "/login", Decision{Action: ActionRedirect, Location: "/"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.status, tc.target, routes); got != tc.want {
				t.Fatalf("Decide(%s, %s) = %+v, want %+v", tc.status, tc.target, got, tc.want)
			}
		})
	}
}

type stubSource struct {
	current   domain.Session
	listeners []ports.SessionListener
	unsubbed  bool
}

func (s *stubSource) Current() domain.Session { return s.current }

func (s *stubSource) Subscribe(l ports.SessionListener) func() {
	s.listeners = append(s.listeners, l)
	return func() { s.unsubbed = true }
}

func (s *stubSource) emit(from, to domain.Status, redirect string) {
	s.current = domain.Session{Status: to}
	for _, l := range s.listeners {
		l(domain.SessionEvent{
			Kind:     domain.EventTransition,
			From:     from,
			Session:  domain.Session{Status: to},
			Redirect: redirect,
		})
	}
}

func serve(t *testing.T, g *Guard, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := g.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "view")
	})
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec
}

func TestGuard_FollowsSubscription(t *testing.T) {
	src := &stubSource{current: domain.Session{Status: domain.StatusResolving}}
	g := NewGuard(src, DefaultRoutes(), zerolog.Nop())

	rec := serve(t, g, "/users")
	if rec.Code != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected 503 while resolving, got %d", rec.Code)
	}

	src.emit(domain.StatusResolving, domain.StatusAnonymous, "")
	rec = serve(t, g, "/users")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to sign-in, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if rec = serve(t, g, "/login"); rec.Code != http.StatusOK {
		t.Fatalf("expected sign-in view to render, got %d", rec.Code)
	}

	src.emit(domain.StatusAnonymous, domain.StatusAuthenticated, "")
	if rec = serve(t, g, "/users"); rec.Code != http.StatusOK || rec.Body.String() != "view" {
		t.Fatalf("expected protected view, got %d", rec.Code)
	}
	rec = serve(t, g, "/login")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to root, got %d", rec.Code)
	}

	src.emit(domain.StatusAuthenticated, domain.StatusAnonymous, "/login")
	if rec = serve(t, g, "/projects"); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after sign-out, got %d", rec.Code)
	}

	g.Close()
	if !src.unsubbed {
		t.Fatalf("Close should unsubscribe")
	}
}

func TestGuard_ReadsCurrentStatusWithoutEvents(t *testing.T) {
	src := &stubSource{current: domain.Session{Status: domain.StatusAuthenticated}}
	g := NewGuard(src, DefaultRoutes(), zerolog.Nop())
	if g.Status() != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", g.Status())
	}

	src.current = domain.Session{Status: domain.StatusAnonymous}
	rec := serve(t, g, "/users")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected the undelivered sign-out to be enforced, got %d", rec.Code)
	}
}

func TestGuard_EnforcesSignInWhileDeliveryIsBusy(t *testing.T) {
	ctx := context.Background()
	authority := service.NewSessionAuthority(
		storage.NewCredentialStore(storage.NewMemoryArea(), zerolog.Nop()),
		zerolog.Nop(),
	)
	g := NewGuard(authority, DefaultRoutes(), zerolog.Nop())
	defer g.Close()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	authority.Subscribe(func(domain.SessionEvent) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	hydrated := make(chan struct{})
	go func() {
		defer close(hydrated)
		authority.Hydrate(ctx)
	}()
	<-entered

	// Hydrate's event is still being delivered, so SignIn's own event
	// queues behind it.
	err := authority.SignIn(ctx, domain.Credentials{
		Token:   "tok",
		Profile: domain.Profile{ID: "a1", Email: "a@x", Role: domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if got := Decide(g.Status(), "/", DefaultRoutes()); got.Action != ActionRender {
		t.Fatalf("expected root to render once SignIn returned, got %+v", got)
	}
	rec := serve(t, g, "/login")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected sign-in view to bounce to root, got %d", rec.Code)
	}

	close(release)
	<-hydrated
}
