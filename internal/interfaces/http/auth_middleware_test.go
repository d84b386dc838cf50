package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	apphttp "github.com/jhoicas/envos-stock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/envos-stock/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUserName  = "Ana Operaria"
	testIssuer    = "envos-stock-test"
	testExpMin    = 60
)

// guardedApp expone GET /cierre protegido por JWT y por los roles indicados.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/cierre",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":   apphttp.GetUserID(c),
				"user_name": apphttp.GetUserName(c),
				"role":      apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, name, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, name, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin cabecera", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token caducado", tokenFor(t, testUserName, entity.RoleAdmin, -1), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin rol", tokenFor(t, testUserName, "", testExpMin), http.StatusUnauthorized, "MISSING_ROLE"},
		{"operario en ruta de admin", tokenFor(t, testUserName, entity.RoleOperator, testExpMin), http.StatusForbidden, dto.CodeForbidden},
		{"rol desconocido", tokenFor(t, testUserName, "auditor", testExpMin), http.StatusForbidden, dto.CodeForbidden},
	}
	app := guardedApp(entity.RoleAdmin)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cierre", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaIdentidad(t *testing.T) {
	app := guardedApp(entity.RoleAdmin, entity.RoleOperator)

	for _, role := range []string{entity.RoleAdmin, entity.RoleOperator} {
		req := httptest.NewRequest(http.MethodGet, "/cierre", nil)
		req.Header.Set("Authorization", tokenFor(t, testUserName, role, testExpMin))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, role)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, testUserID, body["user_id"])
		assert.Equal(t, testUserName, body["user_name"])
		assert.Equal(t, role, body["role"])
	}
}
