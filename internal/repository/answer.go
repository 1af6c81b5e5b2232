package repository

import (
	"context"
	"errors"

	"goodquestions/internal/models"

	"gorm.io/gorm"
)

// AnswerRepository defines persistence operations for answers.
type AnswerRepository interface {
	// CreateIfAbsent inserts the answer unless the respondent already
	// answered the question. Duplicate concurrent submissions resolve to
	// exactly one Inserted via the unique constraint.
	CreateIfAbsent(ctx context.Context, answer *models.Answer) (InsertOutcome, error)
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	GetByQuestionAndRespondent(ctx context.Context, questionID, respondentID uint) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository returns a new AnswerRepository implementation.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) CreateIfAbsent(ctx context.Context, answer *models.Answer) (InsertOutcome, error) {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		if isUniqueConstraintError(err) {
			return AlreadyExists, nil
		}
		return AlreadyExists, models.NewInternalError(err)
	}
	return Inserted, nil
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.WithContext(ctx).Preload("Question").First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.CodeAnswerNotFound, "Answer not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &answer, nil
}

func (r *answerRepository) GetByQuestionAndRespondent(ctx context.Context, questionID, respondentID uint) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.WithContext(ctx).
		Where("question_id = ? AND respondent_id = ?", questionID, respondentID).
		First(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).
		Select("answers.*, (SELECT COUNT(*) FROM votes WHERE votes.answer_id = answers.id) AS votes_count").
		Where("answers.question_id = ?", questionID).
		Preload("Respondent").
		Order("answers.created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}
