package server

import (
	"goodquestions/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid request body"))
	}

	question, err := s.questionService.Create(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// GetMyQuestions handles GET /api/questions
func (s *Server) GetMyQuestions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	questions, err := s.questionService.ListOwn(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// GetQuestionFeed handles GET /api/questions/feed. The feed is today's
// questions from the users the caller is connected to.
func (s *Server) GetQuestionFeed(c *fiber.Ctx) error {
	questions, err := s.questionService.Feed(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// GetQuestion handles GET /api/questions/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	question, err := s.questionService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(question)
}

// GetQuestionAnswers handles GET /api/questions/:id/answers. Restricted
// to the question owner after the reveal instant.
func (s *Server) GetQuestionAnswers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	answers, err := s.answerService.ListForQuestion(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"answers": answers})
}
