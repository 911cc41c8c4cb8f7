package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateAttempt(ctx context.Context, a *QuizAttempt) error
	GetAttempt(ctx context.Context, id uuid.UUID) (*QuizAttempt, error)
	// CreateAnswer inserts an answer, failing with ErrAlreadyAnswered when the
	// (attempt, question) pair already has one. The unique constraint decides
	// the winner under concurrent submissions.
	CreateAnswer(ctx context.Context, a *UserAnswer) error
	ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]UserAnswer, error)
	// MarkCompleted transitions the attempt to its terminal state exactly once;
	// a second call fails with ErrAttemptCompleted.
	MarkCompleted(ctx context.Context, id uuid.UUID, score int, perfect bool, at time.Time) error
	HasPerfectAttempt(ctx context.Context, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]QuizAttempt, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateAttempt(ctx context.Context, a *QuizAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *gormRepository) GetAttempt(ctx context.Context, id uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *gormRepository) CreateAnswer(ctx context.Context, a *UserAnswer) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoNothing: true,
	}).Create(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyAnswered
	}
	return nil
}

func (r *gormRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]UserAnswer, error) {
	var answers []UserAnswer
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *gormRepository) MarkCompleted(ctx context.Context, id uuid.UUID, score int, perfect bool, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", id).
		UpdateColumns(map[string]interface{}{
			"score":        score,
			"is_perfect":   perfect,
			"completed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttemptCompleted
	}
	return nil
}

func (r *gormRepository) HasPerfectAttempt(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&QuizAttempt{}).
		Where("user_id = ? AND is_perfect = ?", userID, true).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
