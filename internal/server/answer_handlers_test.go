package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"goodquestions/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Week of Monday 2025-01-06: weekly reveal Thursday 18:00, daily reveal
// 20:00 the same day.
const handlerWeekStart = "2025-01-06"

func seedWeeklyRound(t *testing.T, s *Server) (owner, respondent models.User, round models.WeeklyRound) {
	t.Helper()

	owner = models.User{DisplayName: "asker", Email: "asker@example.com"}
	respondent = models.User{DisplayName: "friend", Email: "friend@example.com"}
	mustCreate(t, s.db, &owner)
	mustCreate(t, s.db, &respondent)

	question := models.Question{UserID: owner.ID, QDate: handlerWeekStart, Text: "What made you laugh this week?"}
	mustCreate(t, s.db, &question)
	round = models.WeeklyRound{WeekStart: handlerWeekStart, QuestionID: question.ID, PublishedAt: time.Now()}
	mustCreate(t, s.db, &round)
	round.Question = question
	return owner, respondent, round
}

func TestSubmitWeeklyAnswerHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-08T12:00:00"))
	_, respondent, round := seedWeeklyRound(t, s)
	app := newTestApp(s, respondent.ID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/answers", map[string]any{
		"question_id": round.QuestionID,
		"text":        "A perfectly timed pun",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["weekly"])
	assert.NotZero(t, body["id"])
}

func TestSubmitDuplicateAnswerConflictHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-08T12:00:00"))
	_, respondent, round := seedWeeklyRound(t, s)
	app := newTestApp(s, respondent.ID)

	payload := map[string]any{"question_id": round.QuestionID, "text": "First answer"}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/answers", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/answers", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeAlreadyAnswered, body["code"])
}

func TestSubmitWeeklyClosedHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-09T18:00:00"))
	_, respondent, round := seedWeeklyRound(t, s)
	app := newTestApp(s, respondent.ID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/answers", map[string]any{
		"question_id": round.QuestionID,
		"text":        "Too late",
	})

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeWeeklyClosed, body["code"])
}

func TestSubmitLegacyAnswerRequiresConnectionHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-07T12:00:00"))

	owner := models.User{DisplayName: "asker", Email: "asker@example.com"}
	stranger := models.User{DisplayName: "stranger", Email: "stranger@example.com"}
	mustCreate(t, s.db, &owner)
	mustCreate(t, s.db, &stranger)
	daily := models.Question{UserID: owner.ID, QDate: "2025-01-07", Text: "Coffee or tea?"}
	mustCreate(t, s.db, &daily)

	app := newTestApp(s, stranger.ID)
	resp, body := doJSON(t, app, http.MethodPost, "/api/answers", map[string]any{
		"question_id": daily.ID,
		"text":        "Tea, obviously",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeNotFirstDegree, body["code"])

	// An edge from the owner to the respondent opens the gate.
	mustCreate(t, s.db, &models.Connection{UserID: owner.ID, PeerID: stranger.ID})
	resp, body = doJSON(t, app, http.MethodPost, "/api/answers", map[string]any{
		"question_id": daily.ID,
		"text":        "Tea, obviously",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["weekly"])
}

func TestReadAnswersOwnerOnlyHTTP(t *testing.T) {
	// After the daily reveal the answers exist, but only for the owner.
	s, _ := setupTestServer(t, clockAt(t, "2025-01-07T21:00:00"))

	owner := models.User{DisplayName: "asker", Email: "asker@example.com"}
	friend := models.User{DisplayName: "friend", Email: "friend@example.com"}
	mustCreate(t, s.db, &owner)
	mustCreate(t, s.db, &friend)
	daily := models.Question{UserID: owner.ID, QDate: "2025-01-07", Text: "Coffee or tea?"}
	mustCreate(t, s.db, &daily)
	mustCreate(t, s.db, &models.Answer{QuestionID: daily.ID, RespondentID: friend.ID, Text: "Tea"})

	path := fmt.Sprintf("/api/questions/%d/answers", daily.ID)

	resp, body := doJSON(t, newTestApp(s, friend.ID), http.MethodGet, path, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeNotOwner, body["code"])

	resp, body = doJSON(t, newTestApp(s, owner.ID), http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	answers := body["answers"].([]any)
	assert.Len(t, answers, 1)
}

func TestReadAnswersBeforeRevealHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-07T19:00:00"))

	owner := models.User{DisplayName: "asker", Email: "asker@example.com"}
	mustCreate(t, s.db, &owner)
	daily := models.Question{UserID: owner.ID, QDate: "2025-01-07", Text: "Coffee or tea?"}
	mustCreate(t, s.db, &daily)

	resp, body := doJSON(t, newTestApp(s, owner.ID), http.MethodGet,
		fmt.Sprintf("/api/questions/%d/answers", daily.ID), nil)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeBeforeReveal20, body["code"])
}

func TestVoteGatingHTTP(t *testing.T) {
	s, _ := setupTestServer(t, clockAt(t, "2025-01-07T19:00:00"))

	owner := models.User{DisplayName: "asker", Email: "asker@example.com"}
	friend := models.User{DisplayName: "friend", Email: "friend@example.com"}
	mustCreate(t, s.db, &owner)
	mustCreate(t, s.db, &friend)
	daily := models.Question{UserID: owner.ID, QDate: "2025-01-07", Text: "Coffee or tea?"}
	mustCreate(t, s.db, &daily)
	answer := models.Answer{QuestionID: daily.ID, RespondentID: friend.ID, Text: "Tea"}
	mustCreate(t, s.db, &answer)

	votePath := fmt.Sprintf("/api/answers/%d/vote", answer.ID)

	// Before reveal the owner cannot vote yet.
	resp, body := doJSON(t, newTestApp(s, owner.ID), http.MethodPost, votePath, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeBeforeReveal20, body["code"])

	// After reveal a non-owner still cannot vote.
	setClock(s, clockAt(t, "2025-01-07T21:00:00"))

	resp, body = doJSON(t, newTestApp(s, friend.ID), http.MethodPost, votePath, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeOnlyOwnerCanVote, body["code"])

	// The owner can vote exactly once.
	resp, _ = doJSON(t, newTestApp(s, owner.ID), http.MethodPost, votePath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, newTestApp(s, owner.ID), http.MethodPost, votePath, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeAlreadyVoted, body["code"])
}
