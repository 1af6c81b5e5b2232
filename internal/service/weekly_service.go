package service

import (
	"context"
	"time"

	"goodquestions/internal/models"
	"goodquestions/internal/repository"
	"goodquestions/internal/validation"
	"goodquestions/internal/weekly"
)

// WeeklyService resolves the current weekly round into the caller-facing
// payload and publishes new rounds.
type WeeklyService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	weeklyRepo   repository.WeeklyRoundRepository
	loc          *time.Location
	now          func() time.Time
}

// WeeklyPayload is the response body for the current weekly round.
// Question is null on weeks without a published round, and both
// capability flags are false in that case.
type WeeklyPayload struct {
	WeekStart      string           `json:"week_start"`
	Phase          string           `json:"phase"`
	RevealAt       time.Time        `json:"reveal_at"`
	ReadWindowEnd  time.Time        `json:"read_window_end"`
	Question       *models.Question `json:"question"`
	CanSubmit      bool             `json:"can_submit"`
	CanReadAnswers bool             `json:"can_read_answers"`
	MyAnswer       *models.Answer   `json:"my_answer"`
	Answers        []models.Answer  `json:"answers,omitempty"`
}

// NewWeeklyService returns a new WeeklyService. now defaults to time.Now
// when nil.
func NewWeeklyService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	weeklyRepo repository.WeeklyRoundRepository,
	loc *time.Location,
	now func() time.Time,
) *WeeklyService {
	if now == nil {
		now = time.Now
	}
	return &WeeklyService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		weeklyRepo:   weeklyRepo,
		loc:          loc,
		now:          now,
	}
}

// Current builds the weekly payload for the calling user.
func (s *WeeklyService) Current(ctx context.Context, callerID uint) (*WeeklyPayload, error) {
	now := s.now().In(s.loc)
	weekStart := weekly.WeekStartMonday(now)

	phase, err := weekly.CurrentPhase(weekStart, now)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	_, revealAt, sunEnd, err := weekly.PhaseTimes(weekStart, s.loc)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	payload := &WeeklyPayload{
		WeekStart:     weekStart,
		Phase:         string(phase),
		RevealAt:      revealAt,
		ReadWindowEnd: sunEnd,
	}

	round, err := s.weeklyRepo.GetByWeekStart(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return payload, nil
	}

	payload.Question = &round.Question
	payload.CanSubmit = phase == weekly.PhaseAnswering
	payload.CanReadAnswers = phase == weekly.PhaseReveal

	myAnswer, err := s.answerRepo.GetByQuestionAndRespondent(ctx, round.QuestionID, callerID)
	if err != nil {
		return nil, err
	}
	payload.MyAnswer = myAnswer
	if payload.MyAnswer != nil && phase == weekly.PhaseAnswering {
		// An existing answer means resubmission would conflict anyway.
		payload.CanSubmit = false
	}

	if phase == weekly.PhaseReveal {
		answers, err := s.answerRepo.ListByQuestion(ctx, round.QuestionID)
		if err != nil {
			return nil, err
		}
		payload.Answers = answers
	}

	return payload, nil
}

// PublishRound creates the round question under authorID and publishes it
// for the week containing now. Publishing twice for the same week is a
// no-op returning the existing outcome.
func (s *WeeklyService) PublishRound(ctx context.Context, authorID uint, text string) (*models.WeeklyRound, repository.InsertOutcome, error) {
	if err := validation.ValidateQuestionText(text); err != nil {
		return nil, repository.AlreadyExists, models.NewValidationError(models.CodeTextMin3, err.Error())
	}

	now := s.now().In(s.loc)
	weekStart := weekly.WeekStartMonday(now)

	question := &models.Question{
		UserID:  authorID,
		QDate:   weekStart,
		Text:    text,
		AskedAt: &now,
	}
	outcome, err := s.questionRepo.CreateIfAbsent(ctx, question)
	if err != nil {
		return nil, repository.AlreadyExists, err
	}
	if outcome == repository.AlreadyExists {
		existing, err := s.weeklyRepo.GetByWeekStart(ctx, weekStart)
		if err != nil {
			return nil, repository.AlreadyExists, err
		}
		if existing != nil {
			return existing, repository.AlreadyExists, nil
		}
		return nil, repository.AlreadyExists, models.NewConflictError(models.CodeQuestionExists, "A question already exists for this week")
	}

	round := &models.WeeklyRound{
		WeekStart:   weekStart,
		QuestionID:  question.ID,
		PublishedAt: now,
	}
	roundOutcome, err := s.weeklyRepo.CreateIfAbsent(ctx, round)
	if err != nil {
		return nil, repository.AlreadyExists, err
	}
	if roundOutcome == repository.AlreadyExists {
		existing, err := s.weeklyRepo.GetByWeekStart(ctx, weekStart)
		if err != nil {
			return nil, repository.AlreadyExists, err
		}
		return existing, repository.AlreadyExists, nil
	}
	round.Question = *question
	return round, repository.Inserted, nil
}
