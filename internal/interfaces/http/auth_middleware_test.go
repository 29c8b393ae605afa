package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	apphttp "github.com/lztmeat/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/lztmeat/inventario-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUserName  = "Carlos Bodega"
	testIssuer    = "inventario-api-test"
	testExpMin    = 60
)

// guardedApp expone GET /guarded detrás de AuthMiddleware + RequireRole(allowed...).
func guardedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func getGuarded(t *testing.T, app *fiber.App, authHeader string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole: matriz de permisos de las rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_Matriz(t *testing.T) {
	catalogo := []string{entity.RoleAdmin}
	ajustes := []string{entity.RoleAdmin, entity.RoleBodeguero}

	cases := []struct {
		name    string
		allowed []string
		role    string
		status  int
		code    string
	}{
		{"admin edita catálogo", catalogo, entity.RoleAdmin, http.StatusOK, ""},
		{"bodeguero no edita catálogo", catalogo, entity.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"vendedor no edita catálogo", catalogo, entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero ajusta stock", ajustes, entity.RoleBodeguero, http.StatusOK, ""},
		{"vendedor no ajusta stock", ajustes, entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"rol desconocido", ajustes, "supervisor", http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := getGuarded(t, guardedApp(tc.allowed...), tokenForRole(t, tc.role))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	status, body := getGuarded(t, guardedApp(entity.RoleAdmin), tokenForRole(t, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret", testUserID, testUserName, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "Token abc", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"firmado con otro secreto", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := getGuarded(t, guardedApp(entity.RoleAdmin), tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"user_name": apphttp.GetUserName(c),
			"role":      apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleVendedor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUserName, body["user_name"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}
