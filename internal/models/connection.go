// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Connection is a directed first-degree relationship from UserID to PeerID.
// A connection permits PeerID to answer UserID's daily questions. Self
// edges are rejected at the handler layer; the unique index on
// (user_id, peer_id) prevents duplicates.
type Connection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_connections_user_peer" json:"user_id"`
	PeerID    uint      `gorm:"not null;uniqueIndex:idx_connections_user_peer" json:"peer_id"`
	CreatedAt time.Time `json:"created_at"`

	Peer User `gorm:"foreignKey:PeerID" json:"peer,omitempty"`
}

// TableName specifies the table name for GORM.
func (Connection) TableName() string {
	return "connections"
}
