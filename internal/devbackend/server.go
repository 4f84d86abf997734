// Package devbackend is a stand-in for the platform backend: the login
// endpoint, bearer checks and the admin resource endpoints, backed by
// memory or MongoDB. It exists so the console can run and be tested end to
// end without the real platform.
package devbackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// successBody and failureBody are the backend's response envelopes.
type successBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, successBody{Success: true, Data: data})
}

// Options wires a development backend.
type Options struct {
	Accounts  *Accounts
	Records   *Records
	JWTSecret string
	Log       zerolog.Logger
}

// NewServer returns the backend with every route mounted under /api.
func NewServer(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(opts.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := &handlers{accounts: opts.Accounts, records: opts.Records}

	api := e.Group("/api")
	api.POST("/auth/login", h.login)

	admin := api.Group("", Auth(opts.JWTSecret), RBAC(domain.RoleAdmin))

	admin.GET("/users/search", h.searchUsers)
	h.mountCRUD(admin, "/users", CollUsers)
	admin.POST("/users/:id/change-password", h.changePassword)

	h.mountCRUD(admin, "/clients", CollClients)
	admin.GET("/clients/:id/projects", h.clientProjects)
	h.mountCRUD(admin, "/contractors", CollContractors)
	admin.GET("/contractors/:id/stats", h.contractorStats)
	h.mountCRUD(admin, "/laborers", CollLaborers)
	admin.GET("/laborers/:id/stats", h.laborerStats)

	admin.GET("/projects/active", h.projectsByStatus("active", "in_progress"))
	admin.GET("/projects/completed", h.projectsByStatus("completed"))
	admin.GET("/projects/pending", h.projectsByStatus("pending"))
	h.mountCRUD(admin, "/projects", CollProjects)
	admin.PATCH("/projects/:id/status", h.projectStatus)
	admin.POST("/projects/:id/cancel", h.cancelProject)

	admin.GET("/bids/project/:projectId", h.projectBids)
	h.mountCRUD(admin, "/bids", CollBids)
	admin.POST("/bids/:id/accept", h.reviewBid("accepted"))
	admin.POST("/bids/:id/reject", h.reviewBid("rejected"))

	admin.GET("/verification/requests", h.verificationRequests)
	admin.POST("/verification/:id/approve", h.approveVerification)
	admin.POST("/verification/:id/reject", h.rejectVerification)

	admin.GET("/suspension/accounts", h.suspendedAccounts)
	admin.POST("/suspension/:id/suspend", h.suspend)
	admin.POST("/suspension/:id/unsuspend", h.unsuspend)

	admin.GET("/dashboard/stats", h.stats)
	admin.GET("/dashboard/recent-users", h.recent(CollUsers))
	admin.GET("/dashboard/recent-projects", h.recent(CollProjects))

	return e
}

// Seed creates the admin account and its directory entry.
func Seed(ctx context.Context, accounts *Accounts, records *Records, email, password string) error {
	user, err := accounts.Seed(ctx, "Platform Admin", email, password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := records.Get(CollUsers, user.ID); errors.Is(err, domain.ErrRecordNotFound) {
		records.Create(CollUsers, domain.Record{
			"_id":   user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  string(user.Role),
		})
	}
	return nil
}

func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			code, msg = he.Code, fmt.Sprintf("%v", he.Message)
		case errors.Is(err, domain.ErrInvalidCredentials):
			code, msg = http.StatusUnauthorized, "Invalid email or password"
		case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrUserNotFound):
			code, msg = http.StatusNotFound, err.Error()
		case errors.Is(err, domain.ErrUserExists):
			code, msg = http.StatusConflict, err.Error()
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		_ = c.JSON(code, failureBody{Message: msg})
	}
}
