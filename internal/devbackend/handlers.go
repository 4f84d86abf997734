package devbackend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

type handlers struct {
	accounts *Accounts
	records  *Records
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}

func (h *handlers) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	token, user, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Success: true, Token: token, User: user.Profile()})
}

func (h *handlers) mountCRUD(g *echo.Group, prefix, coll string) {
	g.GET(prefix, func(c echo.Context) error {
		return ok(c, http.StatusOK, h.records.List(coll, queryFilter(c)))
	})
	g.GET(prefix+"/:id", func(c echo.Context) error {
		rec, err := h.records.Get(coll, c.Param("id"))
		if err != nil {
			return err
		}
		return ok(c, http.StatusOK, rec)
	})
	g.POST(prefix, func(c echo.Context) error {
		body, err := bindRecord(c)
		if err != nil {
			return err
		}
		return ok(c, http.StatusCreated, h.records.Create(coll, body))
	})
	g.PUT(prefix+"/:id", func(c echo.Context) error {
		body, err := bindRecord(c)
		if err != nil {
			return err
		}
		if coll == CollUsers {
			if _, err := h.accounts.ApplyProfile(c.Request().Context(), c.Param("id"), body); err != nil {
				return err
			}
		}
		rec, err := h.records.Update(coll, c.Param("id"), body)
		if err != nil {
			return err
		}
		return ok(c, http.StatusOK, rec)
	})
	g.DELETE(prefix+"/:id", func(c echo.Context) error {
		if err := h.records.Delete(coll, c.Param("id")); err != nil {
			return err
		}
		return ok(c, http.StatusOK, nil)
	})
}

// queryFilter matches records whose string fields equal every query
// parameter. Parameters without a matching field never match.
func queryFilter(c echo.Context) func(domain.Record) bool {
	params := c.QueryParams()
	if len(params) == 0 {
		return nil
	}
	return func(r domain.Record) bool {
		for k := range params {
			if s, _ := r[k].(string); s != params.Get(k) {
				return false
			}
		}
		return true
	}
}

func bindRecord(c echo.Context) (domain.Record, error) {
	var body domain.Record
	if err := c.Bind(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if body == nil {
		body = domain.Record{}
	}
	return body, nil
}

func fieldEquals(field, value string) func(domain.Record) bool {
	return func(r domain.Record) bool {
		s, _ := r[field].(string)
		return s == value
	}
}

func fieldIn(field string, values ...string) func(domain.Record) bool {
	return func(r domain.Record) bool {
		s, _ := r[field].(string)
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

func flagSet(field string) func(domain.Record) bool {
	return func(r domain.Record) bool {
		b, _ := r[field].(bool)
		return b
	}
}

func (h *handlers) searchUsers(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search query is required")
	}
	return ok(c, http.StatusOK, h.records.List(CollUsers, func(r domain.Record) bool {
		name, _ := r["name"].(string)
		email, _ := r["email"].(string)
		return strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(email), q)
	}))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handlers) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "current and new password are required")
	}
	err := h.accounts.ChangePassword(c.Request().Context(), c.Param("id"), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
	}
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}

func (h *handlers) clientProjects(c echo.Context) error {
	return ok(c, http.StatusOK, h.records.List(CollProjects, fieldEquals("clientId", c.Param("id"))))
}

func (h *handlers) contractorStats(c echo.Context) error {
	mine := fieldEquals("contractorId", c.Param("id"))
	accepted := fieldEquals("status", "accepted")
	return ok(c, http.StatusOK, map[string]int{
		"totalBids":    h.records.Count(CollBids, mine),
		"acceptedBids": h.records.Count(CollBids, func(r domain.Record) bool { return mine(r) && accepted(r) }),
	})
}

func (h *handlers) laborerStats(c echo.Context) error {
	return ok(c, http.StatusOK, map[string]int{
		"assignedProjects": h.records.Count(CollProjects, fieldEquals("laborerId", c.Param("id"))),
	})
}

func (h *handlers) projectsByStatus(statuses ...string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return ok(c, http.StatusOK, h.records.List(CollProjects, fieldIn("status", statuses...)))
	}
}

func (h *handlers) projectStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	rec, err := h.records.Update(CollProjects, c.Param("id"), domain.Record{"status": req.Status})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, rec)
}

func (h *handlers) cancelProject(c echo.Context) error {
	var req struct {
		Reason      string `json:"reason"`
		CancelledBy string `json:"cancelledBy"`
	}
	if err := c.Bind(&req); err != nil || req.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cancellation reason is required")
	}
	rec, err := h.records.Update(CollProjects, c.Param("id"), domain.Record{
		"status":             "cancelled",
		"cancellationReason": req.Reason,
		"cancelledBy":        req.CancelledBy,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, rec)
}

func (h *handlers) projectBids(c echo.Context) error {
	return ok(c, http.StatusOK, h.records.List(CollBids, fieldEquals("projectId", c.Param("projectId"))))
}

func (h *handlers) reviewBid(status string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			ReviewedBy string `json:"reviewedBy"`
		}
		_ = c.Bind(&req)
		rec, err := h.records.Update(CollBids, c.Param("id"), domain.Record{
			"status":     status,
			"reviewedBy": req.ReviewedBy,
		})
		if err != nil {
			return err
		}
		return ok(c, http.StatusOK, rec)
	}
}

func (h *handlers) verificationRequests(c echo.Context) error {
	return ok(c, http.StatusOK, h.records.List(CollUsers, fieldEquals("verificationStatus", "pending")))
}

func (h *handlers) approveVerification(c echo.Context) error {
	return h.updateUser(c, domain.Record{"verificationStatus": "verified", "isVerified": true})
}

func (h *handlers) rejectVerification(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)
	return h.updateUser(c, domain.Record{"verificationStatus": "rejected", "rejectionReason": req.Reason})
}

func (h *handlers) suspendedAccounts(c echo.Context) error {
	return ok(c, http.StatusOK, h.records.List(CollUsers, flagSet("isSuspended")))
}

func (h *handlers) suspend(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)
	return h.updateUser(c, domain.Record{"isSuspended": true, "suspensionReason": req.Reason})
}

func (h *handlers) unsuspend(c echo.Context) error {
	return h.updateUser(c, domain.Record{"isSuspended": false, "suspensionReason": ""})
}

func (h *handlers) updateUser(c echo.Context, patch domain.Record) error {
	rec, err := h.records.Update(CollUsers, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, rec)
}

func (h *handlers) stats(c echo.Context) error {
	return ok(c, http.StatusOK, map[string]int{
		"totalUsers":           h.records.Count(CollUsers, nil),
		"totalClients":         h.records.Count(CollClients, nil),
		"totalContractors":     h.records.Count(CollContractors, nil),
		"totalLaborers":        h.records.Count(CollLaborers, nil),
		"totalProjects":        h.records.Count(CollProjects, nil),
		"activeProjects":       h.records.Count(CollProjects, fieldIn("status", "active", "in_progress")),
		"totalBids":            h.records.Count(CollBids, nil),
		"pendingVerifications": h.records.Count(CollUsers, fieldEquals("verificationStatus", "pending")),
		"suspendedAccounts":    h.records.Count(CollUsers, flagSet("isSuspended")),
	})
}

func (h *handlers) recent(coll string) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 5
		if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
			limit = n
		}
		return ok(c, http.StatusOK, h.records.Recent(coll, limit))
	}
}
