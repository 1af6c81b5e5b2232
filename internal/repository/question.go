package repository

import (
	"context"
	"errors"

	"goodquestions/internal/models"

	"gorm.io/gorm"
)

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	// CreateIfAbsent inserts the question unless the owner already has one
	// for the same calendar day.
	CreateIfAbsent(ctx context.Context, question *models.Question) (InsertOutcome, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Question, error)
	// GetFeed returns questions asked on qdate by the users that userID is
	// connected to.
	GetFeed(ctx context.Context, userID uint, qdate string) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository returns a new QuestionRepository implementation.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateIfAbsent(ctx context.Context, question *models.Question) (InsertOutcome, error) {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		if isUniqueConstraintError(err) {
			return AlreadyExists, nil
		}
		return AlreadyExists, models.NewInternalError(err)
	}
	return Inserted, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).Preload("User").First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.CodeQuestionNotFound, "Question not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &question, nil
}

func (r *questionRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("q_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) GetFeed(ctx context.Context, userID uint, qdate string) ([]models.Question, error) {
	var questions []models.Question

	// A member's feed is today's questions from the owners they are
	// connected to (owner -> peer edges pointing at the member).
	if err := r.db.WithContext(ctx).
		Joins("JOIN connections ON connections.user_id = questions.user_id").
		Where("connections.peer_id = ? AND questions.q_date = ?", userID, qdate).
		Preload("User").
		Order("questions.created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}
