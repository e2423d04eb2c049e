package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/api/metrics"
	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// AuthHandler serves token login and the password-recovery flow.
type AuthHandler struct {
	users    ports.UserService
	tokens   ports.TokenService
	tokenTTL time.Duration
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates form credentials and returns a bearer token.
//
// The credential check runs before the liveness check so that a wrong
// password always yields the same generic failure, while correct credentials
// on a terminated account yield a distinct message. Termination is never
// disclosed for a wrong password.
//
// @Summary      OAuth2-style token login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /login/access-token [post]
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := h.users.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}
	if !user.Active() {
		metrics.LoginsTotal.WithLabelValues("terminated").Inc()
		return domain.ErrTerminatedUser
	}

	token, err := h.tokens.IssueAccessToken(user.ID, h.tokenTTL)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// RecoverPassword issues a password-reset token for the username and emails
// the recovery link.
//
// @Summary      Request a password reset email
// @Tags         auth
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /login/password-recovery/{username} [post]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	username := c.Param("username")

	if err := h.users.RequestPasswordReset(c.Request().Context(), username); err != nil {
		return err
	}

	metrics.PasswordResetsRequestedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password recovery email sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50"`
}

// ResetPassword sets a new password from a valid reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  resetPasswordRequest  true  "Reset token and new password"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Router       /login/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully!"})
}
