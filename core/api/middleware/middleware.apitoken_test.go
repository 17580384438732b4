package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

// newProtectedApp monta um app mínimo com o grupo protegido registrado no
// padrão de grupo + Use do Fiber v3
func newProtectedApp(token string) *fiber.App {
	app := fiber.New()
	group := app.Group("/ai")
	group.Use(APITokenMiddleware(token))
	group.Get("/ping", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	return app
}

func TestAPITokenMiddlewareSemHeader(t *testing.T) {
	app := newProtectedApp("token-secreto")

	req := httptest.NewRequest("GET", "/ai/ping", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "AUTH_001", payload["code"])
	assert.Equal(t, "error", payload["status"])
}

func TestAPITokenMiddlewareFormatoInvalido(t *testing.T) {
	app := newProtectedApp("token-secreto")

	req := httptest.NewRequest("GET", "/ai/ping", nil)
	req.Header.Set("Authorization", "token-secreto") // sem o prefixo Bearer
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAPITokenMiddlewareTokenErrado(t *testing.T) {
	app := newProtectedApp("token-secreto")

	req := httptest.NewRequest("GET", "/ai/ping", nil)
	req.Header.Set("Authorization", "Bearer outro-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAPITokenMiddlewareTokenCorreto(t *testing.T) {
	app := newProtectedApp("token-secreto")

	req := httptest.NewRequest("GET", "/ai/ping", nil)
	req.Header.Set("Authorization", "Bearer token-secreto")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAPITokenMiddlewareIgualdadeExata(t *testing.T) {
	// Sem normalização: espaços ou caixa diferente não passam
	app := newProtectedApp("Token-Secreto")

	for _, tok := range []string{"token-secreto", "Token-Secreto ", " Token-Secreto"} {
		req := httptest.NewRequest("GET", "/ai/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode, "token %q não deveria autenticar", tok)
	}
}
