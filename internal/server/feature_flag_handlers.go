package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags returns the evaluated feature flag state for the current
// user. Percentage rollouts may evaluate differently per account.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(currentUserID(c)),
	})
}
