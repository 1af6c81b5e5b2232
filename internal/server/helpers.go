package server

import (
	"errors"
	"strings"
	"unicode"

	"goodquestions/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.CodeInvalidBody, "Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		return strings.ToLower(strings.Join(splitCamel(prefix), " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// statusForError maps a typed application error to its HTTP status. The
// error code vocabulary is part of the API contract, so the mapping lives
// in one place instead of each call site.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeInvalidBody, models.CodeTextMin3, models.CodeAnswerMin10,
		models.CodeMissingToken, models.CodeDisplayNameInvalid, models.CodeSelfConnection:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized, models.CodeInvalidToken:
		return fiber.StatusUnauthorized
	case models.CodeWeeklyClosed, models.CodePastDeadline20, models.CodeNotFirstDegree,
		models.CodeNotOwner, models.CodeBeforeReveal20, models.CodeOnlyOwnerCanVote:
		return fiber.StatusForbidden
	case models.CodeQuestionNotFound, models.CodeAnswerNotFound,
		models.CodeUserNotFound, models.CodeInviteNotFound:
		return fiber.StatusNotFound
	case models.CodeAlreadyAnswered, models.CodeAlreadyVoted, models.CodeInviteAlreadyUsed,
		models.CodeQuestionExists, models.CodeAlreadyConnected, models.CodeDisplayNameTaken:
		return fiber.StatusConflict
	case models.CodeAIUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes the JSON error body for an error returned by
// a service or repository.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// currentUserID returns the authenticated caller's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}
