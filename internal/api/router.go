package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Nouman-Qamar/Ai-Construction-Admin/docs"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/api/handler"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/api/middleware"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/http/handlers"
)

// Deps carries what the console router wires together.
type Deps struct {
	Log      zerolog.Logger
	Sessions ports.SessionAuthority
	Gateway  ports.Gateway
	Guard    *middleware.Guard
	Routes   middleware.Routes
	// Readiness holds extra checks for /health/ready besides the session.
	Readiness map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Routes.SignIn)

	// Request metrics go to a per-router registry so several routers can
	// coexist in one process; /metrics serves it next to the default one.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "admin_console",
		Registerer: reg,
	}))

	// --- Public routes (never guarded) ---
	readiness := map[string]handlers.Check{"session": handlers.SessionCheck(d.Sessions.Current)}
	for name, check := range d.Readiness {
		readiness[name] = check
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	auth := service.NewAuthService(d.Gateway, d.Sessions, d.Log.With().Str("component", "auth").Logger())
	authHandler := handler.NewAuthHandler(auth, d.Sessions, d.Routes.Root)
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(d.Gateway))
	reviewHandler := handler.NewReviewHandler(service.NewReviewService(d.Gateway))
	projectHandler := handler.NewProjectHandler(service.NewProjectService(d.Gateway), d.Sessions)
	bidHandler := handler.NewBidHandler(service.NewBidService(d.Gateway), d.Sessions)

	// --- Guarded tree: sign-in view plus every protected view ---
	g := e.Group("", d.Guard.Middleware())

	g.GET(d.Routes.SignIn, authHandler.LoginView)
	g.POST(d.Routes.SignIn, authHandler.Login)
	g.POST("/logout", authHandler.Logout)
	g.GET(d.Routes.Root, dashboardHandler.Overview)
	g.GET("/session", authHandler.Session)
	g.PUT("/admin/profile", authHandler.UpdateProfile)
	g.POST("/admin/password", authHandler.ChangePassword)

	users := handler.NewResourceHandler(service.NewResourceService(d.Gateway, service.PathUsers)).Searchable()
	mountResource(g, "/users", users)

	clients := handler.NewResourceHandler(service.NewResourceService(d.Gateway, service.PathClients))
	mountResource(g, "/all-clients", clients)
	g.GET("/all-clients/:id/projects", clients.Related("projects"))

	contractors := handler.NewResourceHandler(service.NewResourceService(d.Gateway, service.PathContractors))
	mountResource(g, "/contractors", contractors)
	g.GET("/contractors/:id/stats", contractors.Related("stats"))

	laborers := handler.NewResourceHandler(service.NewResourceService(d.Gateway, service.PathLaborers))
	mountResource(g, "/laborers", laborers)
	g.GET("/laborers/:id/stats", laborers.Related("stats"))

	mountResource(g, "/projects", projectHandler.ResourceHandler)
	g.GET("/projects/state/:state", projectHandler.ListByState)
	g.PATCH("/projects/:id/status", projectHandler.UpdateStatus)
	g.POST("/projects/:id/cancel", projectHandler.Cancel)

	mountResource(g, "/bids-overview", bidHandler.ResourceHandler)
	g.GET("/bids-overview/project/:projectId", bidHandler.ListByProject)
	g.POST("/bids-overview/:id/accept", bidHandler.Accept)
	g.POST("/bids-overview/:id/reject", bidHandler.Reject)

	g.GET("/verification-requests", reviewHandler.VerificationRequests)
	g.POST("/verification-requests/:id/approve", reviewHandler.Approve)
	g.POST("/verification-requests/:id/reject", reviewHandler.Reject)
	g.GET("/suspended-accounts", reviewHandler.SuspendedAccounts)
	g.POST("/suspended-accounts/:id/suspend", reviewHandler.Suspend)
	g.POST("/suspended-accounts/:id/unsuspend", reviewHandler.Unsuspend)

	return e
}

func mountResource(g *echo.Group, prefix string, h *handler.ResourceHandler) {
	g.GET(prefix, h.List)
	g.POST(prefix, h.Create)
	g.GET(prefix+"/:id", h.Get)
	g.PUT(prefix+"/:id", h.Update)
	g.DELETE(prefix+"/:id", h.Delete)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
