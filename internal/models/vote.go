// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Vote records a question owner's vote on an answer. The unique index on
// (answer_id, voter_id) enforces one vote per voter per answer.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_votes_answer_voter" json:"answer_id"`
	VoterID   uint      `gorm:"not null;uniqueIndex:idx_votes_answer_voter" json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`

	Answer Answer `gorm:"foreignKey:AnswerID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Vote) TableName() string {
	return "votes"
}
