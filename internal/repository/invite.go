package repository

import (
	"context"
	"errors"
	"time"

	"goodquestions/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InviteRepository manages single-use invite tokens and the onboarding
// answers captured while accepting them.
type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	// MarkAccepted claims the invite for userID. It only succeeds when the
	// invite is still unused, so two racing accepts resolve to one winner.
	MarkAccepted(ctx context.Context, token string, userID uint) (InsertOutcome, error)
	ListByInviter(ctx context.Context, inviterID uint) ([]models.Invite, error)
	UpsertOnboardingAnswer(ctx context.Context, answer *models.OnboardingAnswer) error
	GetOnboardingAnswer(ctx context.Context, userID uint, promptKey string) (*models.OnboardingAnswer, error)
}

type inviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository returns a new InviteRepository implementation.
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	if err := r.db.WithContext(ctx).Create(invite).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).First(&invite, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.CodeInviteNotFound, "Invite not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &invite, nil
}

func (r *inviteRepository) MarkAccepted(ctx context.Context, token string, userID uint) (InsertOutcome, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Invite{}).
		Where("token = ? AND accepted_by_user_id IS NULL", token).
		Updates(map[string]interface{}{
			"accepted_by_user_id": userID,
			"accepted_at":         now,
		})
	if result.Error != nil {
		return AlreadyExists, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}

func (r *inviteRepository) ListByInviter(ctx context.Context, inviterID uint) ([]models.Invite, error) {
	var invites []models.Invite
	if err := r.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return invites, nil
}

func (r *inviteRepository) UpsertOnboardingAnswer(ctx context.Context, answer *models.OnboardingAnswer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(answer).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *inviteRepository) GetOnboardingAnswer(ctx context.Context, userID uint, promptKey string) (*models.OnboardingAnswer, error) {
	var answer models.OnboardingAnswer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND prompt_key = ?", userID, promptKey).
		First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &answer, nil
}
