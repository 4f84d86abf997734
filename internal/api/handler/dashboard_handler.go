package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

const maxRecentLimit = 50

// DashboardHandler serves the protected root view.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview returns platform stats with the most recent users and projects.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Param        limit  query     int  false  "Recent items per list (default 5, max 50)"
// @Success      200    {object}  ports.DashboardOverview
// @Failure      400    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       / [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentLimit {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 50")
		}
		limit = n
	}

	overview, err := h.dashboard.Overview(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
