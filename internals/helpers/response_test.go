package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func TestFromFiberError_AppErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("disk on fire")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusNotFound, out.Code)
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "Payment not found", out.Message)

	// Untyped errors fall back to 500, still enveloped
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	out = envelope{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusInternalServerError, out.Code)
	assert.Equal(t, "error", out.Status)
}
