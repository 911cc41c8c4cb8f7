package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrLessonHasQuiz = errors.New("lesson already has a quiz")
	ErrQuestionCount = errors.New("quiz must have between 5 and 10 questions")
)

type QuizService interface {
	CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error
	GetQuizWithQuestions(ctx context.Context, quizID string) (*Quiz, error)
	GetQuizByLesson(ctx context.Context, lessonID string) (*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error
}

type quizService struct {
	repo QuizRepository
	db   *gorm.DB
}

func NewService(db *gorm.DB, repo QuizRepository) QuizService {
	return &quizService{
		repo: repo,
		db:   db,
	}
}

// CreateQuizWithQuestions persists a quiz and its questions as one unit.
// Either the whole question set is written, or nothing is.
func (s *quizService) CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error {
	log := config.WithContext(ctx)

	if len(questions) < MinQuestions || len(questions) > MaxQuestions {
		return fmt.Errorf("%w: got %d", ErrQuestionCount, len(questions))
	}

	existing, err := s.repo.GetByLessonID(quiz.LessonID.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrLessonHasQuiz
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			log.WithError(err).Error("Failed to create quiz")
			return err
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
		}

		if err := tx.Create(&questions).Error; err != nil {
			log.WithError(err).Error("Failed to create quiz questions")
			return err
		}

		log.WithField("quiz_id", quiz.ID.String()).Info("Quiz created")
		return nil
	})
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*Quiz, error) {
	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *quizService) GetQuizByLesson(ctx context.Context, lessonID string) (*Quiz, error) {
	quiz, err := s.repo.GetByLessonID(lessonID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID string) error {
	log := config.WithContext(ctx)

	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	return nil
}
