// Package service provides application business logic (questions, answers, invites).
package service

import (
	"context"
	"time"

	"goodquestions/internal/middleware"
	"goodquestions/internal/models"
	"goodquestions/internal/repository"
	"goodquestions/internal/validation"
	"goodquestions/internal/weekly"
)

// AnswerService enforces the submit/read/vote gating rules for answers.
type AnswerService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	voteRepo     repository.VoteRepository
	connRepo     repository.ConnectionRepository
	weeklyRepo   repository.WeeklyRoundRepository
	loc          *time.Location
	now          func() time.Time
}

// SubmitAnswerInput is the input for submitting an answer.
type SubmitAnswerInput struct {
	RespondentID uint
	QuestionID   uint
	Text         string
}

// NewAnswerService returns a new AnswerService. now defaults to time.Now
// when nil.
func NewAnswerService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	voteRepo repository.VoteRepository,
	connRepo repository.ConnectionRepository,
	weeklyRepo repository.WeeklyRoundRepository,
	loc *time.Location,
	now func() time.Time,
) *AnswerService {
	if now == nil {
		now = time.Now
	}
	return &AnswerService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		voteRepo:     voteRepo,
		connRepo:     connRepo,
		weeklyRepo:   weeklyRepo,
		loc:          loc,
		now:          now,
	}
}

// isWeeklyQuestion reports whether q is the published round question for
// its own week.
func (s *AnswerService) isWeeklyQuestion(ctx context.Context, q *models.Question) (bool, error) {
	round, err := s.weeklyRepo.GetByWeekStart(ctx, q.QDate)
	if err != nil {
		return false, err
	}
	return round != nil && round.QuestionID == q.ID, nil
}

// Submit validates and records an answer. The returned bool reports
// whether weekly-round semantics applied.
func (s *AnswerService) Submit(ctx context.Context, in SubmitAnswerInput) (*models.Answer, bool, error) {
	if err := validation.ValidateAnswerText(in.Text); err != nil {
		return nil, false, models.NewValidationError(models.CodeTextMin3, err.Error())
	}

	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, false, err
	}

	isWeekly, err := s.isWeeklyQuestion(ctx, question)
	if err != nil {
		return nil, false, err
	}

	now := s.now().In(s.loc)
	if isWeekly {
		// Weekly rounds are open to everyone while the week is in its
		// answering phase.
		phase, err := weekly.CurrentPhase(question.QDate, now)
		if err != nil {
			return nil, false, models.NewInternalError(err)
		}
		if phase != weekly.PhaseAnswering {
			return nil, false, models.NewForbiddenError(models.CodeWeeklyClosed, "The weekly round is closed")
		}
	} else {
		revealAt, err := weekly.DailyRevealAt(question.QDate, s.loc)
		if err != nil {
			return nil, false, models.NewInternalError(err)
		}
		if !now.Before(revealAt) {
			return nil, false, models.NewForbiddenError(models.CodePastDeadline20, "The answer deadline has passed")
		}
		if in.RespondentID != question.UserID {
			connected, err := s.connRepo.Exists(ctx, question.UserID, in.RespondentID)
			if err != nil {
				return nil, false, err
			}
			if !connected {
				return nil, false, models.NewForbiddenError(models.CodeNotFirstDegree, "Only first-degree connections may answer")
			}
		}
	}

	answer := &models.Answer{
		QuestionID:   question.ID,
		RespondentID: in.RespondentID,
		Text:         in.Text,
	}
	outcome, err := s.answerRepo.CreateIfAbsent(ctx, answer)
	if err != nil {
		return nil, false, err
	}
	if outcome == repository.AlreadyExists {
		return nil, false, models.NewConflictError(models.CodeAlreadyAnswered, "You already answered this question")
	}

	kind := "legacy"
	if isWeekly {
		kind = "weekly"
	}
	middleware.AnswerSubmissions.WithLabelValues(kind, "inserted").Inc()
	return answer, isWeekly, nil
}

// revealInstant returns when answers to q become readable and votable.
func (s *AnswerService) revealInstant(q *models.Question, isWeekly bool) (time.Time, error) {
	if isWeekly {
		_, reveal, _, err := weekly.PhaseTimes(q.QDate, s.loc)
		return reveal, err
	}
	return weekly.DailyRevealAt(q.QDate, s.loc)
}

// ListForQuestion returns the answers to a question, restricted to the
// question owner and to the post-reveal window.
func (s *AnswerService) ListForQuestion(ctx context.Context, questionID, callerID uint) ([]models.Answer, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.UserID != callerID {
		return nil, models.NewForbiddenError(models.CodeNotOwner, "Only the question owner may read answers")
	}

	isWeekly, err := s.isWeeklyQuestion(ctx, question)
	if err != nil {
		return nil, err
	}
	revealAt, err := s.revealInstant(question, isWeekly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if s.now().In(s.loc).Before(revealAt) {
		return nil, models.NewForbiddenError(models.CodeBeforeReveal20, "Answers are not revealed yet")
	}

	return s.answerRepo.ListByQuestion(ctx, questionID)
}

// Vote records a vote by the parent-question owner for an answer, only
// after the question's reveal instant.
func (s *AnswerService) Vote(ctx context.Context, answerID, voterID uint) error {
	answer, err := s.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return err
	}
	question := &answer.Question
	if question.ID == 0 {
		q, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
		if err != nil {
			return err
		}
		question = q
	}

	if question.UserID != voterID {
		return models.NewForbiddenError(models.CodeOnlyOwnerCanVote, "Only the question owner may vote")
	}

	isWeekly, err := s.isWeeklyQuestion(ctx, question)
	if err != nil {
		return err
	}
	revealAt, err := s.revealInstant(question, isWeekly)
	if err != nil {
		return models.NewInternalError(err)
	}
	if s.now().In(s.loc).Before(revealAt) {
		return models.NewForbiddenError(models.CodeBeforeReveal20, "Voting opens at reveal")
	}

	outcome, err := s.voteRepo.CreateIfAbsent(ctx, &models.Vote{AnswerID: answerID, VoterID: voterID})
	if err != nil {
		return err
	}
	if outcome == repository.AlreadyExists {
		return models.NewConflictError(models.CodeAlreadyVoted, "You already voted for this answer")
	}
	return nil
}
