package quiz

import (
	"errors"

	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	GetByID(id string) (*Quiz, error)
	GetByLessonID(lessonID string) (*Quiz, error)
	Delete(id string) error

	ListQuestionsByQuiz(quizID string) ([]*Question, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetByID(id string) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) GetByLessonID(lessonID string) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&quiz, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Delete(id string) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *quizRepository) ListQuestionsByQuiz(quizID string) ([]*Question, error) {
	var questions []*Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
