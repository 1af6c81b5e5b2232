// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// WeeklyRound is the single globally shared question for one calendar week.
// WeekStart is the Monday of that week, formatted YYYY-MM-DD, and is the
// primary key. Rows are written only by the weekly publishing job; the API
// treats them as read-only.
type WeeklyRound struct {
	WeekStart   string    `gorm:"type:varchar(10);primaryKey" json:"week_start"`
	QuestionID  uint      `gorm:"not null" json:"question_id"`
	PublishedAt time.Time `json:"published_at"`

	Question Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// TableName specifies the table name for GORM.
func (WeeklyRound) TableName() string {
	return "weekly_rounds"
}
