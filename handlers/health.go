package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth is the unauthenticated liveness probe.
func HandleCheckHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
