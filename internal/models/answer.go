// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Answer represents one member's answer to a question. Answers are
// immutable once created; the unique index on (question_id, respondent_id)
// enforces one answer per respondent per question.
type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionID   uint      `gorm:"not null;uniqueIndex:idx_answers_question_respondent" json:"question_id"`
	RespondentID uint      `gorm:"not null;uniqueIndex:idx_answers_question_respondent" json:"respondent_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `json:"created_at"`

	Question   Question `gorm:"foreignKey:QuestionID" json:"-"`
	Respondent User     `gorm:"foreignKey:RespondentID" json:"respondent,omitempty"`

	// VotesCount is not persisted; computed at query time.
	VotesCount int `gorm:"->" json:"votes_count"`
}

// TableName specifies the table name for GORM.
func (Answer) TableName() string {
	return "answers"
}
