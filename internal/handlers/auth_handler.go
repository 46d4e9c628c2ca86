package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/services"
)

// AuthHandler handles registration, login and the email/password flows.
type AuthHandler struct {
	auth       *services.AuthService
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

func NewAuthHandler(auth *services.AuthService, cookieName string, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, cookieTTL: cookieTTL, secure: secure}
}

// RegisterAuthRoutes registers the public auth routes. mailLimiter guards
// the endpoints that send email.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, mailLimiter echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/verify-email", h.VerifyEmail)
	g.POST("/resend-verification", h.ResendVerification, mailLimiter)
	g.POST("/forgot-password", h.ForgotPassword, mailLimiter)
	g.POST("/reset-password", h.ResetPassword)
}

// Register creates an account, sends the verification email and opens a
// session right away.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		return err
	}
	h.setAuthCookie(c, token)
	return respond(c, http.StatusCreated, "Registration successful, please verify your email", map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login checks credentials, sets the auth cookie and returns the token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	h.setAuthCookie(c, token)
	return respond(c, http.StatusOK, "Login successful", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return respond(c, http.StatusOK, "Logout successful", nil)
}

// VerifyEmail redeems the emailed verification token. The token comes as a
// query parameter when the user clicks the link, or in the body when the
// frontend posts it.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.Bind(&req); err != nil {
			return apperrors.InvalidInput("invalid request payload")
		}
		token = req.Token
	}
	if token == "" {
		return apperrors.InvalidInput("verification token is required")
	}

	if err := h.auth.VerifyEmail(c.Request().Context(), token); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendVerification re-sends the verification email, throttled.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req models.ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Verification email sent", nil)
}

// ForgotPassword mails a password reset link.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword redeems a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
	}
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset successfully", nil)
}
