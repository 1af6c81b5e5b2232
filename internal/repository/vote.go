package repository

import (
	"context"

	"goodquestions/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines persistence operations for answer votes.
type VoteRepository interface {
	// CreateIfAbsent records the vote unless the voter already voted for
	// this answer. The unique constraint makes retries idempotent.
	CreateIfAbsent(ctx context.Context, vote *models.Vote) (InsertOutcome, error)
	CountByAnswer(ctx context.Context, answerID uint) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) CreateIfAbsent(ctx context.Context, vote *models.Vote) (InsertOutcome, error) {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if isUniqueConstraintError(err) {
			return AlreadyExists, nil
		}
		return AlreadyExists, models.NewInternalError(err)
	}
	return Inserted, nil
}

func (r *voteRepository) CountByAnswer(ctx context.Context, answerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("answer_id = ?", answerID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
