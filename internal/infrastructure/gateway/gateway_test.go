package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/storage"
)

type stubCreds struct {
	token    string
	signOuts atomic.Int32
}

func (s *stubCreds) Credential() (string, bool) { return s.token, s.token != "" }
func (s *stubCreds) SignOut(context.Context)    { s.signOuts.Add(1) }

func newGateway(t *testing.T, creds ports.CredentialSource, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(creds, Options{BaseURL: srv.URL + "/api", Log: zerolog.Nop()})
}

func TestGateway_AttachesBearerPerRequest(t *testing.T) {
	creds := &stubCreds{}
	var mu sync.Mutex
	var got []string
	gw := newGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing request id")
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	if err := gw.Do(context.Background(), ports.Request{Path: "/users"}, nil); err != nil {
		t.Fatalf("anonymous Do: %v", err)
	}
	creds.token = "tok-1"
	if err := gw.Do(context.Background(), ports.Request{Path: "/users"}, nil); err != nil {
		t.Fatalf("authenticated Do: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if got[0] != "" {
		t.Fatalf("anonymous request must carry no credential, got %q", got[0])
	}
	if got[1] != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", got[1])
	}
}

func TestGateway_BuildsURLAndBody(t *testing.T) {
	gw := newGateway(t, &stubCreds{}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/projects/p1/cancel" {
			t.Errorf("unexpected target %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("q") != "tower" {
			t.Errorf("expected query to be forwarded, got %q", r.URL.RawQuery)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["reason"] != "budget" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	err := gw.Do(context.Background(), ports.Request{
		Method: http.MethodPost,
		Path:   "projects/p1/cancel",
		Query:  url.Values{"q": {"tower"}},
		Body:   map[string]string{"reason": "budget"},
	}, nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestGateway_UnwrapsEnvelope(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"envelope":          {`{"success":true,"data":{"name":"Tower"}}`, `{"name":"Tower"}`},
		"success only":      {`{"success":true,"message":"done"}`, `{"success":true,"message":"done"}`},
		"plain object":      {`{"name":"Tower"}`, `{"name":"Tower"}`},
		"array":             {`[1,2]`, `[1,2]`},
		"success false 200": {`{"success":false,"message":"nope"}`, `{"success":false,"message":"nope"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gw := newGateway(t, &stubCreds{}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			var raw json.RawMessage
			if err := gw.Do(context.Background(), ports.Request{Path: "/x"}, &raw); err != nil {
				t.Fatalf("Do: %v", err)
			}
			if string(raw) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, raw)
			}
		})
	}
}

func TestGateway_DecodesIntoStruct(t *testing.T) {
	gw := newGateway(t, &stubCreds{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"u1","role":"Admin"}}`))
	})
	var p domain.Profile
	if err := gw.Do(context.Background(), ports.Request{Path: "/me"}, &p); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if p.ID != "u1" || !p.IsAdmin() {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestGateway_StatusFailures(t *testing.T) {
	cases := []struct {
		status   int
		body     string
		kind     domain.FailureKind
		sentinel error
		message  string
	}{
		{http.StatusUnauthorized, `{"message":"Token expired"}`, domain.KindUnauthorized, domain.ErrUnauthorized, "Token expired"},
		{http.StatusForbidden, `{"success":false,"message":"Admins only"}`, domain.KindForbidden, domain.ErrForbidden, "Admins only"},
		{http.StatusNotFound, `{"error":"no such project"}`, domain.KindNotFound, domain.ErrNotFound, "no such project"},
		{http.StatusConflict, `{"message":"Email taken"}`, domain.KindClientError, domain.ErrClientError, "Email taken"},
		{http.StatusUnprocessableEntity, ``, domain.KindClientError, domain.ErrClientError, "Unprocessable Entity"},
		{http.StatusInternalServerError, `oops`, domain.KindServerError, domain.ErrServerError, "Internal Server Error"},
		{http.StatusBadGateway, `{"message":"upstream"}`, domain.KindServerError, domain.ErrServerError, "upstream"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			creds := &stubCreds{token: "tok"}
			gw := newGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil)
			f, ok := domain.AsFailure(err)
			if !ok {
				t.Fatalf("expected *domain.Failure, got %v", err)
			}
			if f.Kind != tc.kind || f.StatusCode != tc.status || f.Message != tc.message {
				t.Fatalf("unexpected failure %+v", f)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected errors.Is(%v)", tc.sentinel)
			}

			wantSignOuts := int32(0)
			if tc.status == http.StatusUnauthorized {
				wantSignOuts = 1
			}
			if got := creds.signOuts.Load(); got != wantSignOuts {
				t.Fatalf("expected %d sign-outs, got %d", wantSignOuts, got)
			}
		})
	}
}

func TestGateway_MalformedBody(t *testing.T) {
	gw := newGateway(t, &stubCreds{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})
	err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil)
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response, got %v", err)
	}

	gw = newGateway(t, &stubCreds{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":"a string"}`))
	})
	var p domain.Profile
	err = gw.Do(context.Background(), ports.Request{Path: "/x"}, &p)
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected shape mismatch to be malformed, got %v", err)
	}
}

func TestGateway_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	creds := &stubCreds{token: "tok"}
	gw := New(creds, Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Log: zerolog.Nop()})

	err := gw.Do(context.Background(), ports.Request{Path: "/slow"}, nil)
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if creds.signOuts.Load() != 0 {
		t.Fatalf("a timeout must not sign out")
	}
}

func TestGateway_Network(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	gw := New(&stubCreds{}, Options{BaseURL: base, Log: zerolog.Nop()})
	err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil)
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.KindNetwork || f.StatusCode != 0 {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestGateway_Defaults(t *testing.T) {
	gw := New(&stubCreds{}, Options{})
	if gw.BaseURL() != DefaultBaseURL || gw.timeout != DefaultTimeout {
		t.Fatalf("unexpected defaults %q %v", gw.BaseURL(), gw.timeout)
	}
	gw = New(&stubCreds{}, Options{BaseURL: "http://backend/api/"})
	if gw.BaseURL() != "http://backend/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", gw.BaseURL())
	}
}

func TestGateway_ConcurrentUnauthorizedSignsOutOnce(t *testing.T) {
	area := storage.NewMemoryArea()
	store := storage.NewCredentialStore(area, zerolog.Nop())
	authority := service.NewSessionAuthority(store, zerolog.Nop())
	authority.Hydrate(context.Background())

	err := authority.SignIn(context.Background(), domain.Credentials{
		Token:   "stale",
		Profile: domain.Profile{ID: "a1", Email: "a@x", Role: domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var mu sync.Mutex
	var redirects []string
	authority.Subscribe(func(ev domain.SessionEvent) {
		if ev.Kind == domain.EventTransition {
			mu.Lock()
			redirects = append(redirects, ev.Redirect)
			mu.Unlock()
		}
	})

	gw := newGateway(t, authority, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = gw.Do(context.Background(), ports.Request{Path: "/users"}, nil)
		}()
	}
	wg.Wait()

	if len(redirects) != 1 || redirects[0] != service.DefaultSignInPath {
		t.Fatalf("expected exactly one sign-out transition, got %v", redirects)
	}
	if authority.Current().Status != domain.StatusAnonymous {
		t.Fatalf("expected anonymous session")
	}
	if _, ok := store.Read(context.Background()); ok {
		t.Fatalf("expected credential store cleared")
	}
}

func TestGateway_OversizedBody(t *testing.T) {
	creds := &stubCreds{token: "tok"}
	var status atomic.Int32
	status.Store(http.StatusOK)
	gw := newGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"success":true,"data":"` + strings.Repeat("a", 64) + `"}`))
	})
	gw.maxBody = 32

	err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil)
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.KindMalformedResponse || f.Message != "response body too large" {
		t.Fatalf("expected a too-large failure, got %v", err)
	}

	gw.maxBody = 1 << 10
	if err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil); err != nil {
		t.Fatalf("a body within the limit must decode, got %v", err)
	}

	status.Store(http.StatusUnauthorized)
	gw.maxBody = 32
	if err := gw.Do(context.Background(), ports.Request{Path: "/x"}, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("an oversized error body still maps by status, got %v", err)
	}
	if creds.signOuts.Load() != 1 {
		t.Fatalf("expected the 401 to sign out")
	}
}
