package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS([]string{"https://estimator.example.com"}))
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://estimator.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://estimator.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLoggerPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Logger())
	app.Get("/health/live", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/sessions", func(c fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
