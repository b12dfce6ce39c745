package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	apphttp "github.com/jmcanizales/papeleria-api/internal/interfaces/http"
	pkgjwt "github.com/jmcanizales/papeleria-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "papeleria-test"
	testExpMin    = 60
)

// buildTestApp levanta una app Fiber mínima con AuthMiddleware + RequireRole y
// un handler que devuelve 200 si ambos middlewares dejan pasar.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"rol":     apphttp.GetRol(c),
			})
		},
	)
	return app
}

func tokenForRol(t *testing.T, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, rol, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(entity.RolAdmin)
	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(entity.RolAdmin)
	resp := doRequest(t, app, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp(entity.RolAdmin)
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RolAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(entity.RolAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RolAdmin, testIssuer, -5)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_RolPermitido(t *testing.T) {
	app := buildTestApp(entity.RolAdmin, entity.RolGestor)
	resp := doRequest(t, app, tokenForRol(t, entity.RolGestor))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolSinPermiso(t *testing.T) {
	app := buildTestApp(entity.RolAdmin)
	resp := doRequest(t, app, tokenForRol(t, entity.RolSolicitante))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
