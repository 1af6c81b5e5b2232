package server

import (
	"net/http"
	"testing"

	"goodquestions/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionOnePerDay(t *testing.T) {
	s, db := setupTestServer(t, clockAt(t, "2025-01-07T09:00:00"))
	user := models.User{DisplayName: "asker", Email: "asker@example.com"}
	mustCreate(t, db, &user)
	app := newTestApp(s, user.ID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/questions", map[string]any{
		"text": "Coffee or tea?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2025-01-07", body["qdate"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/questions", map[string]any{
		"text": "Second question same day",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeQuestionExists, body["code"])

	// The next calendar day opens a new slot.
	setClock(s, clockAt(t, "2025-01-08T09:00:00"))
	resp, _ = doJSON(t, app, http.MethodPost, "/api/questions", map[string]any{
		"text": "Tomorrow's question",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateQuestionTooShort(t *testing.T) {
	s, db := setupTestServer(t, clockAt(t, "2025-01-07T09:00:00"))
	user := models.User{DisplayName: "asker", Email: "asker@example.com"}
	mustCreate(t, db, &user)

	resp, body := doJSON(t, newTestApp(s, user.ID), http.MethodPost, "/api/questions", map[string]any{
		"text": " hi ",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeTextMin3, body["code"])
}

func TestQuestionFeedShowsConnectionsQuestionsOnly(t *testing.T) {
	s, db := setupTestServer(t, clockAt(t, "2025-01-07T09:00:00"))

	owner := models.User{DisplayName: "asker", Email: "asker@example.com"}
	reader := models.User{DisplayName: "reader", Email: "reader@example.com"}
	stranger := models.User{DisplayName: "stranger", Email: "stranger@example.com"}
	mustCreate(t, db, &owner)
	mustCreate(t, db, &reader)
	mustCreate(t, db, &stranger)

	mustCreate(t, db, &models.Connection{UserID: owner.ID, PeerID: reader.ID})

	mustCreate(t, db, &models.Question{UserID: owner.ID, QDate: "2025-01-07", Text: "For my circle"})
	mustCreate(t, db, &models.Question{UserID: owner.ID, QDate: "2025-01-06", Text: "Yesterday's question"})
	mustCreate(t, db, &models.Question{UserID: stranger.ID, QDate: "2025-01-07", Text: "From a stranger"})

	resp, body := doJSON(t, newTestApp(s, reader.ID), http.MethodGet, "/api/questions/feed", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions := body["questions"].([]any)
	require.Len(t, questions, 1)
	q := questions[0].(map[string]any)
	assert.Equal(t, "For my circle", q["text"])
}

func TestAddConnectionGuards(t *testing.T) {
	s, db := setupTestServer(t, clockAt(t, "2025-01-07T09:00:00"))
	a := models.User{DisplayName: "alpha", Email: "alpha@example.com"}
	b := models.User{DisplayName: "beta", Email: "beta@example.com"}
	mustCreate(t, db, &a)
	mustCreate(t, db, &b)
	app := newTestApp(s, a.ID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/connections/1", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfConnection, body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/connections/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeUserNotFound, body["code"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/connections/2", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/connections/2", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeAlreadyConnected, body["code"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/connections/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/connections/2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
