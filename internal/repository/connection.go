package repository

import (
	"context"
	"errors"

	"goodquestions/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository manages the directed first-degree connection graph.
// An edge (user, peer) lets peer answer user's daily questions.
type ConnectionRepository interface {
	CreateIfAbsent(ctx context.Context, conn *models.Connection) (InsertOutcome, error)
	Delete(ctx context.Context, userID, peerID uint) error
	Exists(ctx context.Context, userID, peerID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Connection, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository returns a new ConnectionRepository implementation.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) CreateIfAbsent(ctx context.Context, conn *models.Connection) (InsertOutcome, error) {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		if isUniqueConstraintError(err) {
			return AlreadyExists, nil
		}
		return AlreadyExists, models.NewInternalError(err)
	}
	return Inserted, nil
}

func (r *connectionRepository) Delete(ctx context.Context, userID, peerID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND peer_id = ?", userID, peerID).
		Delete(&models.Connection{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(models.CodeUserNotFound, "Connection not found")
	}
	return nil
}

func (r *connectionRepository) Exists(ctx context.Context, userID, peerID uint) (bool, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND peer_id = ?", userID, peerID).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *connectionRepository) ListByUser(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Peer").
		Order("created_at ASC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}
