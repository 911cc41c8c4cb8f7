package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/surgik-gh/AILesson-sub000/internal/achievement"
	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
)

var (
	ErrQuizNotFound      = quiz.ErrQuizNotFound
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrQuestionNotInQuiz = errors.New("question does not belong to this quiz")
	ErrAttemptCompleted  = errors.New("attempt already completed")
	ErrAlreadyAnswered   = errors.New("question already answered in this attempt")
	ErrAttemptIncomplete = errors.New("attempt is incomplete")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("attempt belongs to another user")
)

// Ledger is the slice of the reward service the state machine drives.
type Ledger interface {
	ApplyAnswerReward(ctx context.Context, userID uuid.UUID, correct bool) (reward.AnswerReward, error)
	ApplyQuizCompletion(ctx context.Context, userID uuid.UUID, perfect bool) (reward.CompletionReward, error)
}

// AchievementChecker runs the unlock check after a completion.
type AchievementChecker interface {
	CheckAchievements(ctx context.Context, userID uuid.UUID) ([]achievement.Unlocked, error)
}

type Service interface {
	StartAttempt(ctx context.Context, quizID uuid.UUID) (*QuizAttempt, error)
	SubmitAnswer(ctx context.Context, attemptID, questionID uuid.UUID, value interface{}) (SubmitResult, error)
	CompleteAttempt(ctx context.Context, attemptID uuid.UUID) (CompletionResult, error)
	ListAttempts(ctx context.Context) ([]QuizAttempt, error)
}

type service struct {
	repo         Repository
	quizzes      quiz.QuizRepository
	ledger       Ledger
	achievements AchievementChecker
}

func NewService(repo Repository, quizzes quiz.QuizRepository, ledger Ledger, achievements AchievementChecker) Service {
	return &service{
		repo:         repo,
		quizzes:      quizzes,
		ledger:       ledger,
		achievements: achievements,
	}
}

func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func (s *service) StartAttempt(ctx context.Context, quizID uuid.UUID) (*QuizAttempt, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	qz, err := s.quizzes.GetByID(quizID.String())
	if err != nil {
		return nil, err
	}
	if qz == nil {
		return nil, ErrQuizNotFound
	}

	a := &QuizAttempt{
		ID:     uuid.New(),
		QuizID: qz.ID,
		UserID: userID,
	}
	if err := s.repo.CreateAttempt(ctx, a); err != nil {
		log.WithError(err).Error("Failed to create attempt")
		return nil, err
	}

	log.WithField("attempt_id", a.ID.String()).Info("Attempt started")
	return a, nil
}

// SubmitAnswer judges and records one answer, then applies its reward. Only
// valid while the attempt is in progress, once per question.
func (s *service) SubmitAnswer(ctx context.Context, attemptID, questionID uuid.UUID, value interface{}) (SubmitResult, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	a, err := s.repo.GetAttempt(ctx, attemptID)
	if err != nil {
		return SubmitResult{}, err
	}
	if a == nil {
		return SubmitResult{}, ErrAttemptNotFound
	}
	if a.UserID != userID {
		return SubmitResult{}, ErrForbidden
	}
	if a.CompletedAt != nil {
		return SubmitResult{}, ErrAttemptCompleted
	}

	question, err := s.findQuestion(a.QuizID, questionID)
	if err != nil {
		return SubmitResult{}, err
	}

	correct, err := quiz.Judge(question, value)
	if err != nil {
		return SubmitResult{}, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %v", quiz.ErrInvalidSubmission, err)
	}

	if err := s.repo.CreateAnswer(ctx, &UserAnswer{
		AttemptID:  a.ID,
		QuestionID: question.ID,
		Value:      datatypes.JSON(raw),
		IsCorrect:  correct,
	}); err != nil {
		return SubmitResult{}, err
	}

	applied, err := s.ledger.ApplyAnswerReward(ctx, userID, correct)
	if err != nil {
		log.WithError(err).Error("Failed to apply answer reward")
		return SubmitResult{}, err
	}

	return SubmitResult{
		IsCorrect:   correct,
		PointsDelta: applied.PointsDelta,
		CoinsDelta:  applied.CoinsDelta,
	}, nil
}

// CompleteAttempt closes the attempt once every question has an answer. The
// terminal transition is guarded in storage, so a concurrent duplicate call
// loses with ErrAttemptCompleted and applies nothing.
func (s *service) CompleteAttempt(ctx context.Context, attemptID uuid.UUID) (CompletionResult, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return CompletionResult{}, err
	}

	a, err := s.repo.GetAttempt(ctx, attemptID)
	if err != nil {
		return CompletionResult{}, err
	}
	if a == nil {
		return CompletionResult{}, ErrAttemptNotFound
	}
	if a.UserID != userID {
		return CompletionResult{}, ErrForbidden
	}
	if a.CompletedAt != nil {
		return CompletionResult{}, ErrAttemptCompleted
	}

	qz, err := s.quizzes.GetByID(a.QuizID.String())
	if err != nil {
		return CompletionResult{}, err
	}
	if qz == nil {
		return CompletionResult{}, ErrQuizNotFound
	}

	answers, err := s.repo.ListAnswers(ctx, a.ID)
	if err != nil {
		return CompletionResult{}, err
	}

	total := len(qz.Questions)
	if len(answers) < total {
		return CompletionResult{}, fmt.Errorf("%w: %d/%d answered", ErrAttemptIncomplete, len(answers), total)
	}

	correctCount := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			correctCount++
		}
	}
	incorrect := total - correctCount
	score := correctCount*reward.CorrectAnswerPoints - incorrect*reward.WrongAnswerPenalty
	perfect := incorrect == 0

	if err := s.repo.MarkCompleted(ctx, a.ID, score, perfect, time.Now()); err != nil {
		return CompletionResult{}, err
	}

	if _, err := s.ledger.ApplyQuizCompletion(ctx, userID, perfect); err != nil {
		log.WithError(err).Error("Failed to apply quiz completion reward")
		return CompletionResult{}, err
	}

	unlocked, err := s.achievements.CheckAchievements(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to check achievements")
		return CompletionResult{}, err
	}

	log.WithField("attempt_id", a.ID.String()).
		WithField("score", score).
		Info("Attempt completed")

	return CompletionResult{
		Score:           score,
		CorrectCount:    correctCount,
		TotalCount:      total,
		IsPerfect:       perfect,
		NewAchievements: unlocked,
	}, nil
}

func (s *service) ListAttempts(ctx context.Context) ([]QuizAttempt, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) findQuestion(quizID, questionID uuid.UUID) (*quiz.Question, error) {
	questions, err := s.quizzes.ListQuestionsByQuiz(quizID.String())
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if q.ID == questionID {
			return q, nil
		}
	}
	return nil, ErrQuestionNotInQuiz
}
