package utils

import (
	"github.com/gofiber/fiber/v2"
)

// FieldErrors collects validation failures keyed by field name, in the shape
// the error envelope serializes them.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Success writes the uniform success envelope.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SuccessList writes the success envelope for list endpoints, which carry a
// count instead of a message.
func SuccessList(c *fiber.Ctx, count int, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// Fail writes the uniform error envelope. errors may be nil when there are
// no per-field details.
func Fail(c *fiber.Ctx, status int, message string, errors FieldErrors) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(errors) > 0 {
		body["errors"] = errors
	}
	return c.Status(status).JSON(body)
}

// NotFound is the canonical 404 response. Ownership violations on patients
// use it too, so a foreign id is indistinguishable from a missing one.
func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message, nil)
}
