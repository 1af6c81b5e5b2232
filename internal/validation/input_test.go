package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "alice", false},
		{"valid with space and hyphen", "Alice B-C", false},
		{"too short", "ab", true},
		{"too short after trim", "  a  ", true},
		{"too long", strings.Repeat("a", 31), true},
		{"invalid characters", "alice!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuestionText(t *testing.T) {
	assert.Error(t, ValidateQuestionText("hi"))
	assert.Error(t, ValidateQuestionText("  ab  "))
	assert.NoError(t, ValidateQuestionText("Why?"))
}

func TestValidateOnboardingAnswer(t *testing.T) {
	assert.Error(t, ValidateOnboardingAnswer("too short"))
	assert.NoError(t, ValidateOnboardingAnswer("this is long enough"))
}

func TestValidateEmailBasic(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"+strings.Repeat("a", 250)+".com"))
}

func TestValidatePasswordBasic(t *testing.T) {
	assert.NoError(t, ValidatePassword("CorrectHorse42"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase123"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE123"))
	assert.Error(t, ValidatePassword("NoDigitsHereAtAll"))
}
