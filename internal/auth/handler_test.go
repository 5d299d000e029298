package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"union-backend/internal/apperr"
	"union-backend/internal/config"
	"union-backend/internal/database"
	"union-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestApp(t *testing.T, revokeOnLogout bool) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	users := NewRepository(db)
	revoked := NewRevocationList(revokeOnLogout)
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	protect := JWTMiddleware(cfg, users, revoked)
	app.Post("/auth/register", RegisterHandler(users))
	app.Post("/auth/login", LoginHandler(cfg, users))
	app.Get("/auth/me", protect, MeHandler(users))
	app.Post("/auth/logout", protect, LogoutHandler(revoked))
	return app, db
}

func jsonRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegisterThenDuplicateConflict(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret2"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body = decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "conflict", body["error"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "12345"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", decodeBody(t, resp)["error"])
}

func TestLoginAndMe(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	resp, err = app.Test(jsonRequest(t, "GET", "/auth/me", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	user, _ := decodeBody(t, resp)["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "alice", user["username"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "alice", "password": "wrong-pass"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "nobody", "password": "secret1"}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithoutTokenRejected(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "GET", "/auth/me", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	app, db := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	// A well-formed token for a user that no longer exists is useless.
	require.NoError(t, db.Where("username = ?", "alice").Delete(&models.User{}).Error)

	resp, err = app.Test(jsonRequest(t, "GET", "/auth/me", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogoutRevokesTokenWhenEnabled(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/logout", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "GET", "/auth/me", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogoutIsClientSideByDefault(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/register", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", fiber.Map{"username": "alice", "password": "secret1"}, ""))
	require.NoError(t, err)
	token, _ := decodeBody(t, resp)["token"].(string)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/logout", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Without the revocation list the token keeps working until expiry.
	resp, err = app.Test(jsonRequest(t, "GET", "/auth/me", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
