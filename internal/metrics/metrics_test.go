package metrics

import (
	"net/http"
	"testing"

	"union-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Use(Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperr.NotFound("No such thing")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	return app
}

func TestMiddlewareCountsSuccess(t *testing.T) {
	app := newTestApp()

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/ok", "200"))

	req, err := http.NewRequest("GET", "/ok", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/ok", "200"))
	assert.Equal(t, before+1, after)
}

func TestMiddlewareCountsDomainErrorStatus(t *testing.T) {
	app := newTestApp()

	before404 := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/missing", "404"))
	before200 := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/missing", "200"))

	req, err := http.NewRequest("GET", "/missing", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, before404+1, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, before200, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/missing", "200")))
}

func TestMiddlewareCountsFiberErrorStatus(t *testing.T) {
	app := newTestApp()

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/teapot", "418"))

	req, err := http.NewRequest("GET", "/teapot", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/teapot", "418"))
	assert.Equal(t, before+1, after)
}
