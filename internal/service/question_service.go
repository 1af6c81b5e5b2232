package service

import (
	"context"
	"time"

	"goodquestions/internal/models"
	"goodquestions/internal/repository"
	"goodquestions/internal/validation"
	"goodquestions/internal/weekly"
)

// QuestionService handles daily question creation and retrieval.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	loc          *time.Location
	now          func() time.Time
}

// NewQuestionService returns a new QuestionService. now defaults to
// time.Now when nil.
func NewQuestionService(questionRepo repository.QuestionRepository, loc *time.Location, now func() time.Time) *QuestionService {
	if now == nil {
		now = time.Now
	}
	return &QuestionService{questionRepo: questionRepo, loc: loc, now: now}
}

// Create records today's question for the user. Each user may ask one
// question per calendar day.
func (s *QuestionService) Create(ctx context.Context, userID uint, text string) (*models.Question, error) {
	if err := validation.ValidateQuestionText(text); err != nil {
		return nil, models.NewValidationError(models.CodeTextMin3, err.Error())
	}

	now := s.now().In(s.loc)
	question := &models.Question{
		UserID:  userID,
		QDate:   now.Format(weekly.DateLayout),
		Text:    text,
		AskedAt: &now,
	}
	outcome, err := s.questionRepo.CreateIfAbsent(ctx, question)
	if err != nil {
		return nil, err
	}
	if outcome == repository.AlreadyExists {
		return nil, models.NewConflictError(models.CodeQuestionExists, "You already asked a question today")
	}
	return question, nil
}

// ListOwn returns the caller's questions, newest first.
func (s *QuestionService) ListOwn(ctx context.Context, userID uint, limit, offset int) ([]models.Question, error) {
	return s.questionRepo.GetByUserID(ctx, userID, limit, offset)
}

// Feed returns today's questions from the users the caller is connected
// to.
func (s *QuestionService) Feed(ctx context.Context, userID uint) ([]models.Question, error) {
	today := s.now().In(s.loc).Format(weekly.DateLayout)
	return s.questionRepo.GetFeed(ctx, userID, today)
}

// Get returns a single question by ID.
func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}
