package repository

import (
	"context"
	"errors"

	"goodquestions/internal/cache"
	"goodquestions/internal/models"

	"gorm.io/gorm"
)

// WeeklyRoundRepository manages the one-per-week published rounds.
type WeeklyRoundRepository interface {
	// GetByWeekStart returns the round for the given Monday date, or
	// (nil, nil) when no round has been published for that week.
	GetByWeekStart(ctx context.Context, weekStart string) (*models.WeeklyRound, error)
	GetLatest(ctx context.Context) (*models.WeeklyRound, error)
	// CreateIfAbsent publishes a round for its week unless one already
	// exists. Concurrent publishers resolve to exactly one Inserted.
	CreateIfAbsent(ctx context.Context, round *models.WeeklyRound) (InsertOutcome, error)
}

type weeklyRoundRepository struct {
	db *gorm.DB
}

// NewWeeklyRoundRepository returns a new WeeklyRoundRepository implementation.
func NewWeeklyRoundRepository(db *gorm.DB) WeeklyRoundRepository {
	return &weeklyRoundRepository{db: db}
}

func (r *weeklyRoundRepository) GetByWeekStart(ctx context.Context, weekStart string) (*models.WeeklyRound, error) {
	var round models.WeeklyRound
	err := cache.Aside(ctx, cache.WeeklyRoundKey(weekStart), &round, cache.WeeklyRoundTTL, func() error {
		return r.db.WithContext(ctx).Preload("Question").First(&round, "week_start = ?", weekStart).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &round, nil
}

func (r *weeklyRoundRepository) GetLatest(ctx context.Context) (*models.WeeklyRound, error) {
	var round models.WeeklyRound
	err := r.db.WithContext(ctx).Preload("Question").
		Order("week_start DESC").First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &round, nil
}

func (r *weeklyRoundRepository) CreateIfAbsent(ctx context.Context, round *models.WeeklyRound) (InsertOutcome, error) {
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		if isUniqueConstraintError(err) {
			return AlreadyExists, nil
		}
		return AlreadyExists, models.NewInternalError(err)
	}
	cache.InvalidateWeeklyRound(ctx, round.WeekStart)
	return Inserted, nil
}
