package auth_test

import (
	"net/http/httptest"
	"testing"

	"elternaccounts/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/accounts/runs", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{ApiKey: "secret", Skip: []string{"/metrics"}})

	tests := []struct {
		name string
		path string
		key  string
		want int
	}{
		{"ValidKey", "/accounts/runs", "secret", fiber.StatusOK},
		{"WrongKey", "/accounts/runs", "nope", fiber.StatusUnauthorized},
		{"MissingKey", "/accounts/runs", "", fiber.StatusUnauthorized},
		{"SkippedPath", "/metrics", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(auth.Header, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(auth.Config{})
	resp, err := app.Test(httptest.NewRequest("GET", "/accounts/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
