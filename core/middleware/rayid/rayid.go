// Package rayid provides request tracing middleware.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray id.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key where the ray id is stored.
const LocalsKey = "ray_id"

// New returns a middleware that assigns a unique ray id to every request.
// The id is stored in the request locals and echoed in the response headers
// so clients can report it when something goes wrong.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Honor an incoming id (e.g. from an upstream proxy) if present.
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
