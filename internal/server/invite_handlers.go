package server

import (
	"goodquestions/internal/models"
	"goodquestions/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IssueInvite handles POST /api/invites
func (s *Server) IssueInvite(c *fiber.Ctx) error {
	invite, err := s.inviteService.Issue(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": invite.Token})
}

// GetMyInvites handles GET /api/invites
func (s *Server) GetMyInvites(c *fiber.Ctx) error {
	invites, err := s.inviteService.List(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"invites": invites})
}

// AcceptInvite handles POST /api/invite/accept. The accepting user may
// resubmit to revise their onboarding answer.
func (s *Server) AcceptInvite(c *fiber.Ctx) error {
	var req struct {
		Token  string `json:"token"`
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}

	err := s.inviteService.Accept(c.Context(), service.AcceptInviteInput{
		UserID: currentUserID(c),
		Token:  req.Token,
		Answer: req.Answer,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
