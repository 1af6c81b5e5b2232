// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes surfaced to clients. The frontend branches on these,
// so they are part of the API contract.
const (
	CodeInvalidBody        = "invalid_body"
	CodeTextMin3           = "text_min_3"
	CodeAnswerMin10        = "answer_min_10"
	CodeMissingToken       = "missing_token"
	CodeDisplayNameInvalid = "display_name_invalid"
	CodeSelfConnection     = "self_connection"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidToken       = "invalid_token"
	CodeWeeklyClosed       = "weekly_closed"
	CodePastDeadline20     = "past_deadline_20"
	CodeNotFirstDegree     = "not_first_degree"
	CodeNotOwner           = "not_owner"
	CodeBeforeReveal20     = "before_reveal_20"
	CodeOnlyOwnerCanVote   = "only_owner_can_vote"
	CodeQuestionNotFound   = "question_not_found"
	CodeAnswerNotFound     = "answer_not_found"
	CodeUserNotFound       = "user_not_found"
	CodeInviteNotFound     = "invite_not_found"
	CodeAlreadyAnswered    = "already_answered"
	CodeAlreadyVoted       = "already_voted"
	CodeInviteAlreadyUsed  = "invite_already_used"
	CodeQuestionExists     = "question_exists_today"
	CodeAlreadyConnected   = "already_connected"
	CodeDisplayNameTaken   = "display_name_taken"
	CodeInternalError      = "internal_error"
	CodeAIUnavailable      = "ai_unavailable"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is a typed application error carrying a stable code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a 400-class error with the given code.
func NewValidationError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewForbiddenError creates a 403-class error with the given code.
func NewForbiddenError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewNotFoundError creates a 404-class error with the given code.
func NewNotFoundError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewConflictError creates a 409-class error with the given code.
func NewConflictError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewUnauthorizedError creates a 401-class error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewInternalError wraps an unexpected error. The wrapped cause is logged
// server-side and never echoed to clients.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternalError, Message: "Internal server error", Err: err}
}

// RespondWithError writes a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
			Code:  CodeInternalError,
		}
	}

	return c.Status(status).JSON(response)
}
