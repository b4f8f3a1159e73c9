package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clix-soa/allocation-api/internal/application/dto"
	"github.com/clix-soa/allocation-api/internal/domain/entity"
	httpiface "github.com/clix-soa/allocation-api/internal/interfaces/http"
	"github.com/clix-soa/allocation-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba-suficientemente-largo"

// buildTestApp arma una app mínima con las rutas protegidas que usa la API
// real: una para cualquier usuario autenticado y otra solo-admin.
func buildTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api", httpiface.AuthMiddleware(testSecret))
	api.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpiface.GetUserID(c),
			"role":    httpiface.GetRole(c),
		})
	})
	admin := api.Group("/admin", httpiface.AdminOnly())
	admin.Get("/panel", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/perfil", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/perfil", "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_BearerVacio(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/perfil", "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("otro-secreto", "u1", entity.RoleOperador, "test", 15)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/api/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", entity.RoleOperador, "test", -5)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/api/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenValidoPoblaLocals(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", entity.RoleOperador, "test", 15)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/api/perfil", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "u1", out["user_id"])
	assert.Equal(t, entity.RoleOperador, out["role"])
}

func TestAdminOnly_PermiteAdmin(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", entity.RoleAdmin, "test", 15)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/api/admin/panel", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminOnly_RechazaOperador(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", entity.RoleOperador, "test", 15)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/api/admin/panel", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}
