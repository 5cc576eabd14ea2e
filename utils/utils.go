package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"ok":    false,
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data fiber.Map) fiber.Map {
	out := fiber.Map{"ok": true}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// MaskedEmail hides most of the local part of an address for display,
// e.g. "operator@biz.com" -> "o******r@biz.com".
func MaskedEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return "(not set)"
	}
	name, domain, _ := strings.Cut(email, "@")
	if len(name) <= 2 {
		return strings.Repeat("*", len(name)) + "@" + domain
	}
	return name[:1] + strings.Repeat("*", len(name)-2) + name[len(name)-1:] + "@" + domain
}
