package middleware

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

// Recover converts a panicking handler into a 500 response instead of
// tearing down the connection. The panic value is logged with the request ID
// so the failing request can be traced.
func Recover() fiber.Handler {
	enc := json.NewEncoder(os.Stderr)

	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Locals(RequestIDLocalKey).(string)
				_ = enc.Encode(map[string]any{
					"level":      "error",
					"msg":        "panic recovered",
					"request_id": rid,
					"panic":      fmt.Sprintf("%v", r),
					"method":     c.Method(),
					"path":       c.Path(),
				})

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"request_id": rid,
					"error": fiber.Map{
						"code":    "INTERNAL_ERROR",
						"message": "internal server error",
					},
				})
			}
		}()

		return c.Next()
	}
}
