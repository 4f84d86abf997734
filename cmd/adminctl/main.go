// Command adminctl drives the admin console session from a terminal. Each
// invocation restores the stored session first, exactly like a reload of
// the console.
//
// Usage:
//
//	adminctl login -email admin@aiconst.com -password '...'
//	adminctl whoami
//	adminctl get /dashboard/stats
//	adminctl get -q role=contractor /users
//	adminctl logout
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/gateway"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/storage"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/config"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/pkg/logger"
)

const usage = `usage: adminctl <command> [flags]

commands:
  login   -email E -password P   sign in as an admin
  logout                         end the stored session
  whoami                         print the stored session
  get     [-q k=v]... PATH       GET a backend path with the stored credential
`

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "adminctl"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opened, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adminctl:", err)
		os.Exit(1)
	}

	a := newApp(cfg.APIURL, opened.Area, logger.Get(), os.Stdout)
	code := a.run(ctx, os.Args[1:])
	_ = opened.Close()
	os.Exit(code)
}

type app struct {
	authority *service.SessionAuthority
	gateway   ports.Gateway
	auth      ports.AuthService
	out       io.Writer
}

func newApp(apiURL string, area ports.Area, log zerolog.Logger, out io.Writer) *app {
	authority := service.NewSessionAuthority(storage.NewCredentialStore(area, log), log)
	gw := gateway.New(authority, gateway.Options{BaseURL: apiURL, Log: log})
	return &app{
		authority: authority,
		gateway:   gw,
		auth:      service.NewAuthService(gw, authority, log),
		out:       out,
	}
}

// run executes one command and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return 2
	}

	a.authority.Hydrate(ctx)

	var err error
	switch args[0] {
	case "login":
		err = a.login(ctx, args[1:])
	case "logout":
		a.auth.SignOut(ctx)
		fmt.Fprintln(a.out, "signed out")
	case "whoami":
		err = a.whoami()
	case "get":
		err = a.get(ctx, args[1:])
	default:
		fmt.Fprint(a.out, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintln(a.out, "error:", describe(err))
		return 1
	}
	return 0
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to $ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := a.auth.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s <%s>\n", profile.Name, profile.Email)
	return nil
}

type whoamiOutput struct {
	Status     domain.Status           `json:"status"`
	User       *domain.Profile         `json:"user,omitempty"`
	Credential *service.CredentialInfo `json:"credential,omitempty"`
}

func (a *app) whoami() error {
	s := a.authority.Current()
	out := whoamiOutput{Status: s.Status, User: s.Profile}
	if s.Credential != "" {
		info := service.InspectCredential(s.Credential)
		out.Credential = &info
	}
	return a.printJSON(out)
}

// queryFlags collects repeated -q key=value pairs.
type queryFlags url.Values

func (q queryFlags) String() string { return url.Values(q).Encode() }

func (q queryFlags) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	url.Values(q).Add(k, v)
	return nil
}

func (a *app) get(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := queryFlags{}
	fs.Var(query, "q", "query parameter as key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("get takes exactly one path")
	}
	if !a.authority.Current().Authenticated() {
		return domain.ErrNotAuthenticated
	}

	var raw json.RawMessage
	err := a.gateway.Do(ctx, ports.Request{Path: fs.Arg(0), Query: url.Values(query)}, &raw)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAdmin):
		return "access denied. admin privileges required"
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrUnauthorized):
		return "not signed in (run adminctl login)"
	case errors.Is(err, domain.ErrAlreadySignedIn):
		return "already signed in (run adminctl logout first)"
	}
	return err.Error()
}
