package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "test",
	})
	return fiber.New(), jwtManager
}

func bearerFor(t *testing.T, m *auth.JWTManager, userID uint, role string) string {
	t.Helper()
	token, err := m.GenerateToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequiredRejectsMissingToken(t *testing.T) {
	app, jwtManager := testApp(t)
	mw := NewAuthMiddleware(jwtManager)
	app.Get("/protected", mw.Required(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid or missing token", body["message"])
}

func TestRequiredRejectsMalformedHeader(t *testing.T) {
	app, jwtManager := testApp(t)
	mw := NewAuthMiddleware(jwtManager)
	app.Get("/protected", mw.Required(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredAcceptsValidToken(t *testing.T) {
	app, jwtManager := testApp(t)
	mw := NewAuthMiddleware(jwtManager)
	app.Get("/protected", mw.Required(), func(c *fiber.Ctx) error {
		id, ok := GetUserID(c)
		require.True(t, ok)
		role, ok := GetUserRole(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": id, "role": role})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtManager, 7, model.RoleFaculty))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, model.RoleFaculty, body["role"])
}

func TestRequireRole(t *testing.T) {
	app, jwtManager := testApp(t)
	mw := NewAuthMiddleware(jwtManager)
	app.Post("/admin-only", mw.Required(), mw.RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtManager, 1, model.RoleStudent))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtManager, 1, model.RoleAdmin))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalPassesThroughAnonymous(t *testing.T) {
	app, jwtManager := testApp(t)
	mw := NewAuthMiddleware(jwtManager)
	app.Get("/open", mw.Optional(), func(c *fiber.Ctx) error {
		_, ok := GetUserID(c)
		return c.JSON(fiber.Map{"authenticated": ok})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["authenticated"])
}

func TestRoleAllowed(t *testing.T) {
	allowed := []string{model.RoleAdmin, model.RoleFaculty}
	assert.True(t, RoleAllowed(model.RoleAdmin, allowed))
	assert.True(t, RoleAllowed(model.RoleFaculty, allowed))
	assert.False(t, RoleAllowed(model.RoleStudent, allowed))
	assert.False(t, RoleAllowed("", allowed))
}

func TestCanModify(t *testing.T) {
	owner := int64(5)
	other := int64(9)

	assert.True(t, CanModify(model.RoleAdmin, nil, 1))
	assert.True(t, CanModify(model.RoleAdmin, &other, 1))
	assert.True(t, CanModify(model.RoleFaculty, &owner, 5))
	assert.False(t, CanModify(model.RoleFaculty, &other, 5))
	assert.False(t, CanModify(model.RoleFaculty, nil, 5))
}
