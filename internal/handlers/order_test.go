package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderTestApp() *fiber.App {
	app := fiber.New()
	handler := NewOrderHandler(nil, nil, nil, nil)
	app.Post("/api/orders", handler.Create)
	return app
}

func validDraftBody() map[string]any {
	return map[string]any{
		"postal_code":      "20095",
		"city":             "Hamburg",
		"oil_type":         "standard",
		"quantity":         3000,
		"additive":         "none",
		"provider":         map[string]any{"id": "hoyer", "name": "Hoyer"},
		"delivery_date":    "2026-09-10",
		"time_slot":        "morning",
		"street":           "Mönckebergstraße",
		"house_number":     "7",
		"salutation":       "herr",
		"first_name":       "Max",
		"last_name":        "Mustermann",
		"email":            "max@example.com",
		"phone":            "040123456",
		"accepted_terms":   true,
		"accepted_privacy": true,
	}
}

func postOrder(t *testing.T, app *fiber.App, body map[string]any) (int, string) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestCreateRejectsOversizedQuantity(t *testing.T) {
	app := newOrderTestApp()

	body := validDraftBody()
	body["quantity"] = 60000

	status, text := postOrder(t, app, body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, text, "quantity")
}

func TestCreateRejectsUndersizedQuantity(t *testing.T) {
	app := newOrderTestApp()

	body := validDraftBody()
	body["quantity"] = 499

	status, _ := postOrder(t, app, body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCreateRejectsMissingConsent(t *testing.T) {
	app := newOrderTestApp()

	body := validDraftBody()
	body["accepted_terms"] = false

	status, _ := postOrder(t, app, body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
