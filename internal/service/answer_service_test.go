package service

import (
	"context"
	"testing"
	"time"

	"goodquestions/internal/models"
	"goodquestions/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionRepoStub struct {
	createIfAbsentFn func(context.Context, *models.Question) (repository.InsertOutcome, error)
	getByIDFn        func(context.Context, uint) (*models.Question, error)
	getByUserIDFn    func(context.Context, uint, int, int) ([]models.Question, error)
	getFeedFn        func(context.Context, uint, string) ([]models.Question, error)
}

func (s *questionRepoStub) CreateIfAbsent(ctx context.Context, q *models.Question) (repository.InsertOutcome, error) {
	return s.createIfAbsentFn(ctx, q)
}
func (s *questionRepoStub) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	return s.getByIDFn(ctx, id)
}
func (s *questionRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Question, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *questionRepoStub) GetFeed(ctx context.Context, userID uint, qdate string) ([]models.Question, error) {
	return s.getFeedFn(ctx, userID, qdate)
}

type answerRepoStub struct {
	createIfAbsentFn func(context.Context, *models.Answer) (repository.InsertOutcome, error)
	getByIDFn        func(context.Context, uint) (*models.Answer, error)
	getByQandRFn     func(context.Context, uint, uint) (*models.Answer, error)
	listByQuestionFn func(context.Context, uint) ([]models.Answer, error)
}

func (s *answerRepoStub) CreateIfAbsent(ctx context.Context, a *models.Answer) (repository.InsertOutcome, error) {
	return s.createIfAbsentFn(ctx, a)
}
func (s *answerRepoStub) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	return s.getByIDFn(ctx, id)
}
func (s *answerRepoStub) GetByQuestionAndRespondent(ctx context.Context, questionID, respondentID uint) (*models.Answer, error) {
	return s.getByQandRFn(ctx, questionID, respondentID)
}
func (s *answerRepoStub) ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	return s.listByQuestionFn(ctx, questionID)
}

type voteRepoStub struct {
	createIfAbsentFn func(context.Context, *models.Vote) (repository.InsertOutcome, error)
	countByAnswerFn  func(context.Context, uint) (int64, error)
}

func (s *voteRepoStub) CreateIfAbsent(ctx context.Context, v *models.Vote) (repository.InsertOutcome, error) {
	return s.createIfAbsentFn(ctx, v)
}
func (s *voteRepoStub) CountByAnswer(ctx context.Context, answerID uint) (int64, error) {
	return s.countByAnswerFn(ctx, answerID)
}

type connRepoStub struct {
	createIfAbsentFn func(context.Context, *models.Connection) (repository.InsertOutcome, error)
	deleteFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	listByUserFn     func(context.Context, uint) ([]models.Connection, error)
}

func (s *connRepoStub) CreateIfAbsent(ctx context.Context, c *models.Connection) (repository.InsertOutcome, error) {
	return s.createIfAbsentFn(ctx, c)
}
func (s *connRepoStub) Delete(ctx context.Context, userID, peerID uint) error {
	return s.deleteFn(ctx, userID, peerID)
}
func (s *connRepoStub) Exists(ctx context.Context, userID, peerID uint) (bool, error) {
	return s.existsFn(ctx, userID, peerID)
}
func (s *connRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.listByUserFn(ctx, userID)
}

type weeklyRepoStub struct {
	getByWeekStartFn func(context.Context, string) (*models.WeeklyRound, error)
	getLatestFn      func(context.Context) (*models.WeeklyRound, error)
	createIfAbsentFn func(context.Context, *models.WeeklyRound) (repository.InsertOutcome, error)
}

func (s *weeklyRepoStub) GetByWeekStart(ctx context.Context, weekStart string) (*models.WeeklyRound, error) {
	return s.getByWeekStartFn(ctx, weekStart)
}
func (s *weeklyRepoStub) GetLatest(ctx context.Context) (*models.WeeklyRound, error) {
	return s.getLatestFn(ctx)
}
func (s *weeklyRepoStub) CreateIfAbsent(ctx context.Context, round *models.WeeklyRound) (repository.InsertOutcome, error) {
	return s.createIfAbsentFn(ctx, round)
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	return appErr.Code
}

func fixedNow(s string) func() time.Time {
	ts, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts.UTC() }
}

// Week of Monday 2025-01-06: reveal is Thursday 2025-01-09 18:00.
const (
	testWeekStart = "2025-01-06"
	weeklyQID     = uint(10)
	legacyQID     = uint(20)
	ownerID       = uint(1)
	respondentID  = uint(2)
)

func newGatingFixture(now func() time.Time) (*AnswerService, *answerRepoStub, *voteRepoStub, *connRepoStub) {
	weeklyQ := &models.Question{ID: weeklyQID, UserID: 99, QDate: testWeekStart, Text: "What made you laugh this week?"}
	legacyQ := &models.Question{ID: legacyQID, UserID: ownerID, QDate: testWeekStart, Text: "Coffee or tea?"}

	questions := &questionRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Question, error) {
			switch id {
			case weeklyQID:
				return weeklyQ, nil
			case legacyQID:
				return legacyQ, nil
			}
			return nil, models.NewNotFoundError(models.CodeQuestionNotFound, "Question not found")
		},
	}
	answers := &answerRepoStub{
		createIfAbsentFn: func(_ context.Context, a *models.Answer) (repository.InsertOutcome, error) {
			a.ID = 100
			return repository.Inserted, nil
		},
		listByQuestionFn: func(context.Context, uint) ([]models.Answer, error) {
			return []models.Answer{{ID: 100}}, nil
		},
	}
	votes := &voteRepoStub{
		createIfAbsentFn: func(context.Context, *models.Vote) (repository.InsertOutcome, error) {
			return repository.Inserted, nil
		},
	}
	conns := &connRepoStub{
		existsFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
	rounds := &weeklyRepoStub{
		getByWeekStartFn: func(_ context.Context, weekStart string) (*models.WeeklyRound, error) {
			if weekStart == testWeekStart {
				return &models.WeeklyRound{WeekStart: testWeekStart, QuestionID: weeklyQID, Question: *weeklyQ}, nil
			}
			return nil, nil
		},
	}

	svc := NewAnswerService(questions, answers, votes, conns, rounds, time.UTC, now)
	return svc, answers, votes, conns
}

func TestSubmitWeeklyDuringAnswering(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-09T17:59:59"))

	answer, isWeekly, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   weeklyQID,
		Text:         "A perfectly timed pun",
	})

	require.NoError(t, err)
	assert.True(t, isWeekly)
	assert.Equal(t, uint(100), answer.ID)
}

func TestSubmitWeeklyAtRevealInstantClosed(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-09T18:00:00"))

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   weeklyQID,
		Text:         "Too late",
	})

	assert.Equal(t, models.CodeWeeklyClosed, appCode(t, err))
}

func TestSubmitWeeklyNoConnectionRequired(t *testing.T) {
	svc, _, _, conns := newGatingFixture(fixedNow("2025-01-06T09:00:00"))
	conns.existsFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("weekly submit must not consult the connection graph")
		return false, nil
	}

	_, isWeekly, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   weeklyQID,
		Text:         "Global participation",
	})

	require.NoError(t, err)
	assert.True(t, isWeekly)
}

func TestSubmitLegacyBeforeDeadline(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T19:59:59"))

	answer, isWeekly, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   legacyQID,
		Text:         "Tea, obviously",
	})

	require.NoError(t, err)
	assert.False(t, isWeekly)
	assert.Equal(t, legacyQID, answer.QuestionID)
}

func TestSubmitLegacyPastDeadline(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T20:00:00"))

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   legacyQID,
		Text:         "Tea, obviously",
	})

	assert.Equal(t, models.CodePastDeadline20, appCode(t, err))
}

func TestSubmitLegacyNotFirstDegree(t *testing.T) {
	svc, _, _, conns := newGatingFixture(fixedNow("2025-01-06T12:00:00"))
	conns.existsFn = func(context.Context, uint, uint) (bool, error) { return false, nil }

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   legacyQID,
		Text:         "Tea, obviously",
	})

	assert.Equal(t, models.CodeNotFirstDegree, appCode(t, err))
}

func TestSubmitLegacyOwnerNeedsNoConnection(t *testing.T) {
	svc, _, _, conns := newGatingFixture(fixedNow("2025-01-06T12:00:00"))
	conns.existsFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("owner answering their own question must not consult the connection graph")
		return false, nil
	}

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: ownerID,
		QuestionID:   legacyQID,
		Text:         "Asking myself",
	})

	require.NoError(t, err)
}

func TestSubmitDuplicateAlreadyAnswered(t *testing.T) {
	svc, answers, _, _ := newGatingFixture(fixedNow("2025-01-06T12:00:00"))
	answers.createIfAbsentFn = func(context.Context, *models.Answer) (repository.InsertOutcome, error) {
		return repository.AlreadyExists, nil
	}

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   weeklyQID,
		Text:         "Second attempt",
	})

	assert.Equal(t, models.CodeAlreadyAnswered, appCode(t, err))
}

func TestSubmitTextTooShort(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T12:00:00"))

	_, _, err := svc.Submit(context.Background(), SubmitAnswerInput{
		RespondentID: respondentID,
		QuestionID:   weeklyQID,
		Text:         "  a  ",
	})

	assert.Equal(t, models.CodeTextMin3, appCode(t, err))
}

func TestListAnswersNotOwner(t *testing.T) {
	// Even after reveal, only the owner may read.
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T21:00:00"))

	_, err := svc.ListForQuestion(context.Background(), legacyQID, respondentID)

	assert.Equal(t, models.CodeNotOwner, appCode(t, err))
}

func TestListAnswersBeforeReveal(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T19:00:00"))

	_, err := svc.ListForQuestion(context.Background(), legacyQID, ownerID)

	assert.Equal(t, models.CodeBeforeReveal20, appCode(t, err))
}

func TestListAnswersOwnerAfterReveal(t *testing.T) {
	svc, _, _, _ := newGatingFixture(fixedNow("2025-01-06T20:00:01"))

	answers, err := svc.ListForQuestion(context.Background(), legacyQID, ownerID)

	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func newVoteFixture(now func() time.Time) (*AnswerService, *voteRepoStub) {
	svc, answers, votes, _ := newGatingFixture(now)
	answers.getByIDFn = func(_ context.Context, id uint) (*models.Answer, error) {
		return &models.Answer{
			ID:         id,
			QuestionID: legacyQID,
			Question:   models.Question{ID: legacyQID, UserID: ownerID, QDate: testWeekStart},
		}, nil
	}
	return svc, votes
}

func TestVoteOnlyOwner(t *testing.T) {
	svc, _ := newVoteFixture(fixedNow("2025-01-06T21:00:00"))

	err := svc.Vote(context.Background(), 100, respondentID)

	assert.Equal(t, models.CodeOnlyOwnerCanVote, appCode(t, err))
}

func TestVoteBeforeRevealEvenForOwner(t *testing.T) {
	svc, _ := newVoteFixture(fixedNow("2025-01-06T19:00:00"))

	err := svc.Vote(context.Background(), 100, ownerID)

	assert.Equal(t, models.CodeBeforeReveal20, appCode(t, err))
}

func TestVoteDuplicate(t *testing.T) {
	svc, votes := newVoteFixture(fixedNow("2025-01-06T21:00:00"))
	votes.createIfAbsentFn = func(context.Context, *models.Vote) (repository.InsertOutcome, error) {
		return repository.AlreadyExists, nil
	}

	err := svc.Vote(context.Background(), 100, ownerID)

	assert.Equal(t, models.CodeAlreadyVoted, appCode(t, err))
}

func TestVoteOwnerAfterReveal(t *testing.T) {
	svc, votes := newVoteFixture(fixedNow("2025-01-06T20:00:00"))
	var recorded *models.Vote
	votes.createIfAbsentFn = func(_ context.Context, v *models.Vote) (repository.InsertOutcome, error) {
		recorded = v
		return repository.Inserted, nil
	}

	err := svc.Vote(context.Background(), 100, ownerID)

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, uint(100), recorded.AnswerID)
	assert.Equal(t, ownerID, recorded.VoterID)
}
