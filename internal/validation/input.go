// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinQuestionLen is the minimum length for question and answer text.
	MinQuestionLen = 3
	// MinOnboardingAnswerLen is the minimum length for the onboarding answer.
	MinOnboardingAnswerLen = 10
)

var displayNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 _\-]+$`)

// ValidateDisplayName checks if a display name meets requirements.
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 3 {
		return fmt.Errorf("display name must be at least 3 characters long")
	}
	if utf8.RuneCountInString(trimmed) > 30 {
		return fmt.Errorf("display name must not exceed 30 characters")
	}
	if !displayNameRegex.MatchString(trimmed) {
		return fmt.Errorf("display name can only contain letters, numbers, spaces, underscores, and hyphens")
	}
	return nil
}

// ValidateQuestionText checks minimum question length after trimming.
func ValidateQuestionText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinQuestionLen {
		return fmt.Errorf("text must be at least %d characters long", MinQuestionLen)
	}
	return nil
}

// ValidateAnswerText checks minimum answer length after trimming.
func ValidateAnswerText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinQuestionLen {
		return fmt.Errorf("text must be at least %d characters long", MinQuestionLen)
	}
	return nil
}

// ValidateOnboardingAnswer checks the mandatory onboarding answer length.
func ValidateOnboardingAnswer(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinOnboardingAnswerLen {
		return fmt.Errorf("answer must be at least %d characters long", MinOnboardingAnswerLen)
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	return nil
}
