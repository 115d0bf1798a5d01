package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// LivenessProbe reports that the process is serving requests.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe reports ready once the quote store answers. A nil db means
// the service runs without persistence.
func ReadinessProbe(db Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if db != nil {
			if err := db.PingContext(c.Context()); err != nil {
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}
