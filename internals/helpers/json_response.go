package helper

import (
	"github.com/gofiber/fiber/v2"
)

// JsonError menulis body error standar: {"error": message}.
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// JsonSuccess menulis {"success": true} ditambah field opsional (mis. id/slug).
func JsonSuccess(c *fiber.Ctx, code int, extra fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// JsonOK menulis data apa adanya dengan status 200.
func JsonOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}
