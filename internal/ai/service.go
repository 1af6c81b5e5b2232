// Package ai wraps the Gemini client for weekly question generation and
// audio transcription.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goodquestions/internal/middleware"
	"goodquestions/internal/models"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.0-flash"
	// callTimeout bounds a single outbound call. Each operation retries
	// once on failure, so the worst case is twice this.
	callTimeout = 15 * time.Second
)

const weeklyPrompt = `Write one short, open-ended question that a group of
friends would enjoy answering once a week. It should invite a personal,
specific answer rather than an opinion. Reply with the question only, no
quotes or preamble.`

const transcribePrompt = `Transcribe this audio recording verbatim. Reply
with the transcript text only.`

// Service calls the Gemini API with a bounded timeout and a single retry.
type Service struct {
	model    string
	generate func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewService creates a Gemini-backed Service. Returns an error when the
// API key is empty or the client cannot be constructed.
func NewService(ctx context.Context, apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Service{
		model:    defaultModel,
		generate: client.Models.GenerateContent,
	}, nil
}

func unavailable(err error) *models.AppError {
	return &models.AppError{Code: models.CodeAIUnavailable, Message: "AI service unavailable", Err: err}
}

// call runs one generation attempt with the bounded timeout, retrying
// once on failure.
func (s *Service) call(ctx context.Context, op string, contents []*genai.Content) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		result, err := s.generate(callCtx, s.model, contents, nil)
		cancel()
		if err != nil {
			lastErr = err
			middleware.AIRequests.WithLabelValues(op, "error").Inc()
			middleware.Logger.WarnContext(ctx, "AI call failed",
				"op", op, "attempt", attempt+1, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		text := strings.TrimSpace(result.Text())
		if text == "" {
			lastErr = fmt.Errorf("empty response from model")
			middleware.AIRequests.WithLabelValues(op, "empty").Inc()
			continue
		}
		middleware.AIRequests.WithLabelValues(op, "ok").Inc()
		return text, nil
	}
	return "", unavailable(lastErr)
}

// GenerateWeeklyQuestion produces a fresh question for the next weekly
// round.
func (s *Service) GenerateWeeklyQuestion(ctx context.Context) (string, error) {
	return s.call(ctx, "generate_weekly", genai.Text(weeklyPrompt))
}

// Transcribe converts an audio recording into text.
func (s *Service) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(transcribePrompt),
		genai.NewPartFromBytes(audio, mimeType),
	}, genai.RoleUser)
	return s.call(ctx, "transcribe", []*genai.Content{content})
}
