package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedcommune/cafe/internal/hash"
	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/middleware/auth"
	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/transport"
)

type AuthHandler struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func accessCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.AccessCookie,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Repo.FindAdminByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		l.Error("admin lookup failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "internal error")
	}

	if !hash.CheckPassword(admin.PasswordHash, req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.NewAccessToken(h.JWTSecret, admin.ID, admin.Username)
	if err != nil {
		l.Error("token issue failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "internal error")
	}

	if err := h.Repo.TouchAdminLastLogin(ctx, admin.ID); err != nil {
		l.Error("last_login update failed", "error", err)
	}
	entry := &models.ActivityLog{
		AdminID:     admin.ID,
		Action:      "login",
		Description: "Admin logged in",
		IPAddress:   c.RealIP(),
	}
	if err := h.Repo.RecordActivity(ctx, entry); err != nil {
		l.Error("activity log failed", "error", err)
	}

	c.SetCookie(accessCookie(token, time.Now().Add(auth.TokenTTL)))

	l.Info("login_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"admin_id":  admin.ID,
		"username":  admin.Username,
		"full_name": admin.FullName,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(accessCookie("", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}
