package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"propdesk/config"
	"propdesk/store"
	"propdesk/utils"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("tenantID").(string) + "/" + c.Locals("userID").(string))
	})
	return app
}

func TestProtected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := utils.GenerateJWTToken("acme", "u-1", time.Hour)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := protectedApp().Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "acme/u-1", string(body))
	})

	t.Run("query token", func(t *testing.T) {
		resp, err := protectedApp().Test(httptest.NewRequest("GET", "/me?token="+token, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing and malformed", func(t *testing.T) {
		resp, err := protectedApp().Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Token "+token)
		resp, err = protectedApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		config.AppConfig.JWTSecret = "other"
		forged, err := utils.GenerateJWTToken("acme", "u-1", time.Hour)
		require.NoError(t, err)
		config.AppConfig.JWTSecret = "test-secret"

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := protectedApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(DefaultCORSConfig("https://console.example.com")))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "https://console.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://console.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	t.Run("no origin list allows any origin", func(t *testing.T) {
		open := fiber.New()
		open.Use(CORS(CORSConfig{}))
		open.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest("GET", "/x", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		resp, err := open.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
	})
}

func TestAssistantRateLimit(t *testing.T) {
	t.Run("key includes tenant and session", func(t *testing.T) {
		app := fiber.New()
		fctx := &fasthttp.RequestCtx{}
		fctx.Request.SetRequestURI("/api/v1/assistant/sessions/s1/messages")
		c := app.AcquireCtx(fctx)
		defer app.ReleaseCtx(c)

		c.Locals("tenantID", "acme")
		assert.Equal(t, "rl:acme::/api/v1/assistant/sessions/s1/messages", AssistantRateLimitKey(c))
	})

	t.Run("limit is enforced", func(t *testing.T) {
		app := fiber.New()
		app.Post("/sessions/:id/messages",
			func(c *fiber.Ctx) error { c.Locals("tenantID", "acme"); return c.Next() },
			AssistantRateLimiter(store.NewMemoryStorage(), 2),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) },
		)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("POST", "/sessions/s1/messages", nil))
			require.NoError(t, err)
			codes = append(codes, resp.StatusCode)
		}
		assert.Equal(t, []int{fiber.StatusAccepted, fiber.StatusAccepted, fiber.StatusTooManyRequests}, codes)

		resp, err := app.Test(httptest.NewRequest("POST", "/sessions/s2/messages", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	})
}
