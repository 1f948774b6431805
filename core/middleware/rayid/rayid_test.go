package rayid_test

import (
	"net/http/httptest"
	"testing"

	"schedule-reconciler/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayID(t *testing.T) {
	t.Run("GeneratesID", func(t *testing.T) {
		app := fiber.New()
		app.Use(rayid.New())

		var seen string
		app.Get("/", func(c *fiber.Ctx) error {
			seen, _ = c.Locals(rayid.LocalsKey).(string)
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		header := resp.Header.Get(rayid.HeaderName)
		assert.NotEmpty(t, header)
		assert.Equal(t, header, seen)

		_, err = uuid.Parse(header)
		assert.NoError(t, err)
	})

	t.Run("HonorsIncomingID", func(t *testing.T) {
		app := fiber.New()
		app.Use(rayid.New())
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.HeaderName, "upstream-123")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "upstream-123", resp.Header.Get(rayid.HeaderName))
	})
}
