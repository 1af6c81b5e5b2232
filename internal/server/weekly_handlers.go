package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetWeekly handles GET /api/weekly. Weeks without a published round
// return a well-formed payload with a null question and both capability
// flags false.
func (s *Server) GetWeekly(c *fiber.Ctx) error {
	payload, err := s.weeklyService.Current(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(payload)
}
