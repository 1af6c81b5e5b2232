// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a member of the Good Questions community.
// Password is empty for accounts created through Google sign-in.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"unique;not null" json:"display_name"`
	Email       string    `gorm:"not null" json:"email"`
	Password    string    `json:"-"`
	GoogleID    *string   `gorm:"uniqueIndex" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserSummary is the public projection of a user embedded in responses.
type UserSummary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, DisplayName: u.DisplayName}
}
