// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Invite is a single-use credential gating new-account creation. The token
// transitions once from issued (AcceptedByUserID nil) to accepted and is
// never reusable by another user afterwards.
type Invite struct {
	Token            string     `gorm:"type:varchar(64);primaryKey" json:"token"`
	InviterID        uint       `gorm:"not null;index" json:"inviter_id"`
	AcceptedByUserID *uint      `json:"accepted_by_user_id,omitempty"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	Inviter User `gorm:"foreignKey:InviterID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Invite) TableName() string {
	return "invites"
}

// Accepted reports whether the invite has been used.
func (i Invite) Accepted() bool {
	return i.AcceptedByUserID != nil
}

// OnboardingAnswer stores a member's answer to an onboarding prompt.
// Repeated submission for the same (user, prompt) overwrites the text
// rather than creating a duplicate row.
type OnboardingAnswer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_onboarding_user_prompt" json:"user_id"`
	PromptKey string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_onboarding_user_prompt" json:"prompt_key"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (OnboardingAnswer) TableName() string {
	return "onboarding_answers"
}

// OnboardingPromptKey is the prompt recorded when accepting an invite.
const OnboardingPromptKey = "good_question_intro"
