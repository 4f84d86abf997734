package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// ReviewHandler serves the verification and suspension queues.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// VerificationRequests lists accounts awaiting verification.
//
// @Summary      Pending verification requests
// @Tags         review
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /verification-requests [get]
func (h *ReviewHandler) VerificationRequests(c echo.Context) error {
	items, err := h.reviews.VerificationRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// @Summary      Approve a verification request
// @Tags         review
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /verification-requests/{id}/approve [post]
func (h *ReviewHandler) Approve(c echo.Context) error {
	rec, err := h.reviews.ApproveVerification(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// @Summary      Reject a verification request
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Request ID"
// @Param        body  body      reasonRequest  true  "Rejection reason"
// @Success      200   {object}  map[string]interface{}
// @Router       /verification-requests/{id}/reject [post]
func (h *ReviewHandler) Reject(c echo.Context) error {
	var req reasonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rec, err := h.reviews.RejectVerification(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// SuspendedAccounts lists suspended accounts.
//
// @Summary      Suspended accounts
// @Tags         review
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /suspended-accounts [get]
func (h *ReviewHandler) SuspendedAccounts(c echo.Context) error {
	items, err := h.reviews.SuspendedAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// @Summary      Suspend an account
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Account ID"
// @Param        body  body      reasonRequest  true  "Suspension reason"
// @Success      200   {object}  map[string]interface{}
// @Router       /suspended-accounts/{id}/suspend [post]
func (h *ReviewHandler) Suspend(c echo.Context) error {
	var req reasonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rec, err := h.reviews.Suspend(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// @Summary      Lift a suspension
// @Tags         review
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /suspended-accounts/{id}/unsuspend [post]
func (h *ReviewHandler) Unsuspend(c echo.Context) error {
	rec, err := h.reviews.Unsuspend(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}
