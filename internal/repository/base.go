// Package repository implements the data access layer for the application.
package repository

import (
	"strings"
)

// InsertOutcome is the tagged result of an insert-if-absent operation.
// Uniqueness is enforced by the database constraint, so two concurrent
// inserts of the same row resolve to exactly one Inserted and one
// AlreadyExists.
type InsertOutcome int

const (
	// Inserted means the row was created by this call.
	Inserted InsertOutcome = iota
	// AlreadyExists means a row with the same unique key already existed.
	AlreadyExists
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite phrasing covered
	// for the test harness.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
