package handlers

import (
	"context"
	"time"

	"github.com/cse-dept/cms-api/database"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports process and database liveness
// GET /health
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	dbStatus := "up"
	status := fiber.StatusOK
	if err := store.HealthCheck(ctx); err != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC(),
	})
}
