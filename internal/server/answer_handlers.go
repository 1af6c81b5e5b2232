package server

import (
	"goodquestions/internal/models"
	"goodquestions/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer handles POST /api/answers. The response reports whether
// weekly-round or legacy daily semantics applied.
func (s *Server) SubmitAnswer(c *fiber.Ctx) error {
	var req struct {
		QuestionID uint   `json:"question_id"`
		Text       string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}
	if req.QuestionID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "question_id is required"))
	}

	answer, weekly, err := s.answerService.Submit(c.Context(), service.SubmitAnswerInput{
		RespondentID: currentUserID(c),
		QuestionID:   req.QuestionID,
		Text:         req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     answer.ID,
		"weekly": weekly,
	})
}

// VoteAnswer handles POST /api/answers/:id/vote
func (s *Server) VoteAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.answerService.Vote(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
