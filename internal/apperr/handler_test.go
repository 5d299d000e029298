package apperr

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestErrorHandlerRendersTaggedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/gone", func(c *fiber.Ctx) error {
		return NotFound("No such row")
	})

	req, err := http.NewRequest("GET", "/gone", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "No such row", body["message"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	req, err := http.NewRequest("GET", "/boom", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, body["message"], "EOF")
}

func TestBodyOverLimitKeepsUploadErrorShape(t *testing.T) {
	app := fiber.New(fiber.Config{
		BodyLimit:    1024,
		ErrorHandler: ErrorHandler,
	})
	app.Post("/upload", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	oversized := strings.NewReader(strings.Repeat("x", 4096))
	req, err := http.NewRequest("POST", "/upload", oversized)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "upload_error", body["error"])
	assert.Contains(t, body["message"], "too large")
}

func TestBodyOverLimitViaHandlerError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/upload", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	req, err := http.NewRequest("POST", "/upload", bytes.NewReader(nil))
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "upload_error", decodeBody(t, resp)["error"])
}
