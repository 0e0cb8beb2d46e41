package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/research-portal-api/config"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/auth"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
)

const testSecret = "router-test-secret"

// testApp wires the full route table against empty stores. Handlers
// that reach the database are not exercised here; the tests stop at
// the auth gates in front of them.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	saver, err := upload.NewSaver(t.TempDir())
	require.NoError(t, err)

	env := &config.EnviornmentVariable{
		JWT_SECRET:     testSecret,
		JWT_ISSUER:     "router-test",
		JWT_EXPIRES_IN: time.Hour,
		CORS_ORIGIN:    "*",
	}

	app := fiber.New()
	SetupRoutes(app, &database.PostgreSQLStore{}, &database.GORMStore{}, saver, env)
	return app
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	manager := auth.NewJWTManager(auth.JWTConfig{
		Secret: testSecret,
		Expiry: time.Hour,
		Issuer: "router-test",
	})
	token, err := manager.GenerateToken(1, "gate@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestDashboardRoutesRequireAdmin(t *testing.T) {
	app := testApp(t)

	routes := []string{
		"/api/dashboard/stats",
		"/api/dashboard/publications-per-year",
		"/api/dashboard/patent-growth",
		"/api/dashboard/consultancy-revenue",
		"/api/dashboard/department-comparison",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, route, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			req := httptest.NewRequest(http.MethodGet, route, nil)
			req.Header.Set("Authorization", bearerFor(t, model.RoleFaculty))
			resp, err = app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestUnknownRouteReturnsEnvelope404(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
