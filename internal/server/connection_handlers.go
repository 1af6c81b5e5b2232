package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetConnections handles GET /api/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	conns, err := s.connService.List(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"connections": conns})
}

// AddConnection handles POST /api/connections/:userId. The new edge lets
// the peer answer the caller's daily questions.
func (s *Server) AddConnection(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conn, err := s.connService.Add(c.Context(), currentUserID(c), peerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conn)
}

// RemoveConnection handles DELETE /api/connections/:userId
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.connService.Remove(c.Context(), currentUserID(c), peerID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
