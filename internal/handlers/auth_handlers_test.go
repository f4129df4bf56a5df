package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/craftedcommune/cafe/internal/hash"
	"github.com/craftedcommune/cafe/internal/middleware/auth"
	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
)

func TestLogin(t *testing.T) {
	db := initTestDB(t)
	secret := []byte("test_secret")

	pwHash, err := hash.HashPassword("correct horse")
	require.NoError(t, err)
	admin := models.AdminUser{Username: "admin", PasswordHash: pwHash, FullName: "Test Admin"}
	require.NoError(t, db.Create(&admin).Error)

	h := &AuthHandler{Repo: repo.New(db), JWTSecret: secret}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "admin",
		"password": "correct horse",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "admin", resp["username"])

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.AccessCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)

	claims, err := auth.ParseAccessToken(secret, cookie.Value)
	require.NoError(t, err)
	require.Equal(t, admin.ID, claims.AdminID)

	// login is audited and last_login is stamped
	var entry models.ActivityLog
	require.NoError(t, db.Where("admin_id = ? AND action = ?", admin.ID, "login").First(&entry).Error)
	var stored models.AdminUser
	require.NoError(t, db.First(&stored, admin.ID).Error)
	require.NotNil(t, stored.LastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := initTestDB(t)

	pwHash, err := hash.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminUser{Username: "admin", PasswordHash: pwHash}).Error)

	h := &AuthHandler{Repo: repo.New(db), JWTSecret: []byte("test_secret")}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, c = doJSONRequest(t, e, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	secret := []byte("test_secret")
	e := echo.New()

	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"admin_id": c.Get("admin_id")})
	}
	guarded := auth.AdminOnly(secret)(next)

	// no cookie
	_, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/admin/orders", nil)
	err := guarded(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	// valid token
	token, err := auth.NewAccessToken(secret, 7, "admin")
	require.NoError(t, err)
	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/admin/orders", nil)
	c.Request().AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: token})
	require.NoError(t, guarded(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// garbage token
	_, c = doJSONRequest(t, e, http.MethodGet, "/api/v1/admin/orders", nil)
	c.Request().AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: "not-a-jwt"})
	err = guarded(c)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
