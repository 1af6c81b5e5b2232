package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goodquestions/internal/config"
	"goodquestions/internal/featureflags"
	"goodquestions/internal/models"
	"goodquestions/internal/repository"
	"goodquestions/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.WeeklyRound{},
		&models.Answer{},
		&models.Vote{},
		&models.Connection{},
		&models.Invite{},
		&models.OnboardingAnswer{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// setupTestServer builds a Server over in-memory sqlite with a fixed
// clock so phase gates are deterministic.
func setupTestServer(t *testing.T, now func() time.Time) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	cfg := &config.Config{
		JWTSecret:    "test_secret",
		Env:          "test",
		FeatureFlags: "transcription=on",
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	weeklyRepo := repository.NewWeeklyRoundRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		voteRepo:     voteRepo,
		connRepo:     connRepo,
		inviteRepo:   inviteRepo,
		weeklyRepo:   weeklyRepo,
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
	}
	s.questionService = service.NewQuestionService(questionRepo, time.UTC, now)
	s.answerService = service.NewAnswerService(questionRepo, answerRepo, voteRepo, connRepo, weeklyRepo, time.UTC, now)
	s.weeklyService = service.NewWeeklyService(questionRepo, answerRepo, weeklyRepo, time.UTC, now)
	s.inviteService = service.NewInviteService(inviteRepo, connRepo)
	s.connService = service.NewConnectionService(connRepo, userRepo)

	return s, db
}

// setClock rebuilds the time-sensitive services with a new fixed clock.
func setClock(s *Server, now func() time.Time) {
	s.questionService = service.NewQuestionService(s.questionRepo, time.UTC, now)
	s.answerService = service.NewAnswerService(s.questionRepo, s.answerRepo, s.voteRepo, s.connRepo, s.weeklyRepo, time.UTC, now)
	s.weeklyService = service.NewWeeklyService(s.questionRepo, s.answerRepo, s.weeklyRepo, time.UTC, now)
}

func clockAt(t *testing.T, s string) func() time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	return func() time.Time { return ts.UTC() }
}

// newTestApp wires routes behind a stubbed identity so handlers see
// callerID in locals exactly as AuthRequired would store it.
func newTestApp(s *Server, callerID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", callerID)
		return c.Next()
	})

	app.Get("/api/weekly", s.GetWeekly)
	app.Post("/api/questions", s.CreateQuestion)
	app.Get("/api/questions", s.GetMyQuestions)
	app.Get("/api/questions/feed", s.GetQuestionFeed)
	app.Get("/api/questions/:id/answers", s.GetQuestionAnswers)
	app.Get("/api/questions/:id", s.GetQuestion)
	app.Post("/api/answers", s.SubmitAnswer)
	app.Post("/api/answers/:id/vote", s.VoteAnswer)
	app.Get("/api/connections", s.GetConnections)
	app.Post("/api/connections/:userId", s.AddConnection)
	app.Delete("/api/connections/:userId", s.RemoveConnection)
	app.Post("/api/invites", s.IssueInvite)
	app.Get("/api/invites", s.GetMyInvites)
	app.Post("/api/invite/accept", s.AcceptInvite)
	app.Get("/api/users/me", s.GetMyProfile)
	app.Get("/api/users", s.GetAllUsers)
	app.Post("/api/transcribe", s.Transcribe)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create fixture: %v", err)
	}
}
