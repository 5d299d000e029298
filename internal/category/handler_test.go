package category

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerTestApp(t *testing.T) (*fiber.App, *Repository) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	app.Post("/categories/:categoryId/items", AddItemHandler(repo))
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, url string, payload map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAddItemRejectsBlankDescription(t *testing.T) {
	app, repo := newHandlerTestApp(t)

	cat, err := repo.Create("Benefits", models.TargetEmployee)
	require.NoError(t, err)

	for _, payload := range []map[string]interface{}{
		{"title": "Dental"},
		{"title": "Dental", "description": ""},
		{"title": "Dental", "description": "   "},
		{"title": "", "description": "Covered twice a year"},
	} {
		resp := postJSON(t, app, fmt.Sprintf("/categories/%d/items", cat.ID), payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	entries, err := repo.Entries(cat.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddItemAcceptsCompletePayload(t *testing.T) {
	app, repo := newHandlerTestApp(t)

	cat, err := repo.Create("Benefits", models.TargetEmployee)
	require.NoError(t, err)

	resp := postJSON(t, app, fmt.Sprintf("/categories/%d/items", cat.ID), map[string]interface{}{
		"title":       "Dental",
		"description": "Covered twice a year",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	entries, err := repo.Entries(cat.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dental", entries[0].Title)
}
