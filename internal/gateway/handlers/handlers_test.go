package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(func(context.Context) error { return nil }))
	app.Get("/health/startup", StartupProbe)
	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)
	return app
}

func TestProbes(t *testing.T) {
	app := newApp()
	for path, status := range map[string]string{
		"/health/live":    "alive",
		"/health/ready":   "ready",
		"/health/startup": "started",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"status":"`+status+`"}`, string(data), path)
	}
}

func TestReadinessFailingCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/ready", ReadinessProbe(func(context.Context) error { return assert.AnError }))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSwaggerSpecIsValidYAML(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		OpenAPI string         `yaml:"openapi"`
		Paths   map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	for _, path := range []string{"/circuits/validate", "/circuits/render/{view}", "/circuits/export", "/library"} {
		assert.Contains(t, doc.Paths, path)
	}
}

func TestSwaggerUI(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "/docs/openapi.yaml")
}
