package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	require.NoError(t, response.Body.Close())

	return response, body
}

func TestSuccessEnvelope(t *testing.T) {
	response, body := performRequest(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, "created", fiber.Map{"id": 1})
	})

	require.Equal(t, http.StatusCreated, response.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "created", body["message"])
	require.NotNil(t, body["data"])
}

func TestSuccessDefaults(t *testing.T) {
	response, body := performRequest(t, func(c *fiber.Ctx) error {
		return Success(c, 0, "", nil)
	})

	require.Equal(t, http.StatusOK, response.StatusCode)
	require.Equal(t, "success", body["message"])
	_, hasData := body["data"]
	require.False(t, hasData, "nil data is omitted from the envelope")
}

func TestErrorEnvelope(t *testing.T) {
	response, body := performRequest(t, func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusNotFound, "class not found")
	})

	require.Equal(t, http.StatusNotFound, response.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "class not found", body["message"])
	_, hasData := body["data"]
	require.False(t, hasData)
}
