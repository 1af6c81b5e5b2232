package server

import (
	"io"

	"goodquestions/internal/featureflags"
	"goodquestions/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxAudioBytes caps transcription uploads at 10 MiB.
const maxAudioBytes = 10 << 20

// Transcribe handles POST /api/transcribe. Accepts a multipart form with
// an "audio" file part and returns the transcript.
func (s *Server) Transcribe(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if !s.featureFlags.Enabled(featureflags.FlagTranscription, userID) {
		// Disabled features are indistinguishable from missing routes.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if s.transcriber == nil {
		return models.RespondWithError(c, fiber.StatusBadGateway,
			&models.AppError{Code: models.CodeAIUnavailable, Message: "AI service unavailable"})
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "An audio file part is required"))
	}
	if fileHeader.Size > maxAudioBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Audio file is too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	text, err := s.transcriber.Transcribe(c.UserContext(), audio, mimeType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"text": text})
}
