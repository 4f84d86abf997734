package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// ProjectHandler adds the project lifecycle actions to the projects view.
type ProjectHandler struct {
	*ResourceHandler
	projects ports.ProjectService
	sessions sessionReader
}

func NewProjectHandler(projects ports.ProjectService, sessions sessionReader) *ProjectHandler {
	return &ProjectHandler{
		ResourceHandler: NewResourceHandler(projects),
		projects:        projects,
		sessions:        sessions,
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active in_progress on_hold completed cancelled"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// ListByState lists active, completed or pending projects.
//
// @Summary      List projects by state
// @Tags         projects
// @Produce      json
// @Param        state  path      string  true  "active, completed or pending"
// @Success      200    {object}  listResponse
// @Failure      404    {object}  map[string]string
// @Router       /projects/state/{state} [get]
func (h *ProjectHandler) ListByState(c echo.Context) error {
	items, err := h.projects.ListByState(c.Request().Context(), c.Param("state"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// UpdateStatus changes a project's status.
//
// @Summary      Change project status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Project ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rec, err := h.projects.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Cancel cancels a project on behalf of the signed-in operator.
//
// @Summary      Cancel a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Project ID"
// @Param        body  body      cancelRequest  true  "Cancellation reason"
// @Success      200   {object}  map[string]interface{}
// @Router       /projects/{id}/cancel [post]
func (h *ProjectHandler) Cancel(c echo.Context) error {
	var req cancelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	op, err := currentOperator(h.sessions)
	if err != nil {
		return err
	}
	rec, err := h.projects.Cancel(c.Request().Context(), c.Param("id"), req.Reason, op.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// BidHandler adds bid review to the bids overview.
type BidHandler struct {
	*ResourceHandler
	bids     ports.BidService
	sessions sessionReader
}

func NewBidHandler(bids ports.BidService, sessions sessionReader) *BidHandler {
	return &BidHandler{
		ResourceHandler: NewResourceHandler(bids),
		bids:            bids,
		sessions:        sessions,
	}
}

// Accept marks a bid accepted by the signed-in operator.
//
// @Summary      Accept a bid
// @Tags         bids
// @Produce      json
// @Param        id   path      string  true  "Bid ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /bids-overview/{id}/accept [post]
func (h *BidHandler) Accept(c echo.Context) error {
	op, err := currentOperator(h.sessions)
	if err != nil {
		return err
	}
	rec, err := h.bids.Accept(c.Request().Context(), c.Param("id"), op.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Reject marks a bid rejected by the signed-in operator.
//
// @Summary      Reject a bid
// @Tags         bids
// @Produce      json
// @Param        id   path      string  true  "Bid ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /bids-overview/{id}/reject [post]
func (h *BidHandler) Reject(c echo.Context) error {
	op, err := currentOperator(h.sessions)
	if err != nil {
		return err
	}
	rec, err := h.bids.Reject(c.Request().Context(), c.Param("id"), op.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// ListByProject lists the bids on one project.
//
// @Summary      Bids for a project
// @Tags         bids
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  listResponse
// @Router       /bids-overview/project/{projectId} [get]
func (h *BidHandler) ListByProject(c echo.Context) error {
	items, err := h.bids.ListByProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}
