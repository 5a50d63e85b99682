package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/feature-flags, returning the evaluated
// flag set for the current user (percentage rollouts are per-user).
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(userID),
	})
}
