package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
)

// AuthHandler serves the sign-in view and the operator's own account.
type AuthHandler struct {
	auth     ports.AuthService
	sessions sessionReader
	root     string
	now      func() time.Time
}

func NewAuthHandler(auth ports.AuthService, sessions sessionReader, root string) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, root: root, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginView struct {
	View   string   `json:"view"`
	Fields []string `json:"fields"`
	Action string   `json:"action"`
}

type signInResponse struct {
	User     domain.Profile `json:"user"`
	Redirect string         `json:"redirect"`
}

type sessionResponse struct {
	Status     domain.Status           `json:"status"`
	User       *domain.Profile         `json:"user,omitempty"`
	Credential *service.CredentialInfo `json:"credential,omitempty"`
	Expired    bool                    `json:"expired,omitempty"`
}

type updateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Avatar *string `json:"avatar" validate:"omitempty,max=2048"`
	Role   *string `json:"role" validate:"omitempty,oneof=admin client contractor laborer user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

// LoginView describes the sign-in form. Only anonymous operators reach it.
//
// @Summary      Sign-in view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginView
// @Success      303  "already signed in, redirected to the dashboard"
// @Router       /login [get]
func (h *AuthHandler) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, loginView{
		View:   "login",
		Fields: []string{"email", "password"},
		Action: "/login",
	})
}

// Login signs the operator in through the backend.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signInResponse{User: profile, Redirect: h.root})
}

// Logout ends the session and sends the operator to the sign-in view.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303  "redirected to the sign-in view"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.SignOut(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, service.DefaultSignInPath)
}

// Session reports the current session and what can be read off the
// credential without verifying it.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s := h.sessions.Current()
	resp := sessionResponse{Status: s.Status, User: s.Profile}
	if s.Credential != "" {
		info := service.InspectCredential(s.Credential)
		resp.Credential = &info
		resp.Expired = info.Expired(h.now())
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateProfile edits the operator's own profile. A role change ends the
// session.
//
// @Summary      Update own profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Success      303   "role changed, session ended"
// @Router       /admin/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := currentOperator(h.sessions); err != nil {
		return err
	}

	patch := domain.ProfilePatch{Name: req.Name, Email: req.Email, Avatar: req.Avatar}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	profile, err := h.auth.UpdateProfile(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangePassword changes the operator's own password.
//
// @Summary      Change own password
// @Tags         account
// @Accept       json
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /admin/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
