// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Question represents a member's daily question. QDate is the calendar day
// the question belongs to, formatted YYYY-MM-DD; the unique index on
// (user_id, qdate) enforces one question per member per day.
type Question struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_questions_user_qdate" json:"user_id"`
	QDate     string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_questions_user_qdate;index" json:"qdate"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	AskedAt   *time.Time `json:"asked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (Question) TableName() string {
	return "questions"
}
