package reward

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

// AnswerReward reports what one judged answer changed.
type AnswerReward struct {
	PointsDelta int `json:"points_delta"`
	CoinsDelta  int `json:"coins_delta"`
}

// CompletionReward reports what one quiz completion changed.
type CompletionReward struct {
	BonusPoints int `json:"bonus_points"`
}

type Service interface {
	ApplyAnswerReward(ctx context.Context, userID uuid.UUID, correct bool) (AnswerReward, error)
	ApplyQuizCompletion(ctx context.Context, userID uuid.UUID, perfect bool) (CompletionReward, error)
	GrantInitialCoins(ctx context.Context, userID uuid.UUID) error
	ChargeLessonCost(ctx context.Context, userID uuid.UUID, lessonTitle string, cost int) error
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]TokenTransaction, error)
	ResetDailyLeaderboard(ctx context.Context) (*ResetResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ApplyAnswerReward mutates the leaderboard entry, the coin balance and the
// transaction log for one judged answer, atomically. A correct answer earns
// +10 points and +2 coins with an ANSWER_REWARD row; an incorrect one costs
// 1 point and touches neither coins nor the log.
func (s *service) ApplyAnswerReward(ctx context.Context, userID uuid.UUID, correct bool) (AnswerReward, error) {
	log := config.WithContext(ctx)

	if !correct {
		err := s.repo.InTx(ctx, func(r Repository) error {
			return r.ApplyEntryDelta(ctx, userID, EntryDelta{
				Score:        -WrongAnswerPenalty,
				TotalAnswers: 1,
			})
		})
		if err != nil {
			log.WithError(err).Error("Failed to apply wrong-answer penalty")
			return AnswerReward{}, err
		}
		return AnswerReward{PointsDelta: -WrongAnswerPenalty}, nil
	}

	err := s.repo.InTx(ctx, func(r Repository) error {
		if err := r.ApplyEntryDelta(ctx, userID, EntryDelta{
			Score:          CorrectAnswerPoints,
			CorrectAnswers: 1,
			TotalAnswers:   1,
		}); err != nil {
			return err
		}
		if err := r.AddCoins(ctx, userID, CorrectAnswerCoins); err != nil {
			return err
		}
		return r.AppendTransaction(ctx, &TokenTransaction{
			UserID:      userID,
			Amount:      CorrectAnswerCoins,
			Type:        TransactionAnswerReward,
			Description: "Reward for a correct quiz answer",
		})
	})
	if err != nil {
		log.WithError(err).Error("Failed to apply answer reward")
		return AnswerReward{}, err
	}
	return AnswerReward{PointsDelta: CorrectAnswerPoints, CoinsDelta: CorrectAnswerCoins}, nil
}

// ApplyQuizCompletion increments the quiz count and, for a perfect attempt,
// grants the +50 score bonus in the same transaction.
func (s *service) ApplyQuizCompletion(ctx context.Context, userID uuid.UUID, perfect bool) (CompletionReward, error) {
	log := config.WithContext(ctx)

	delta := EntryDelta{QuizCount: 1}
	if perfect {
		delta.Score = PerfectQuizPoints
	}

	err := s.repo.InTx(ctx, func(r Repository) error {
		return r.ApplyEntryDelta(ctx, userID, delta)
	})
	if err != nil {
		log.WithError(err).Error("Failed to apply quiz completion")
		return CompletionReward{}, err
	}
	return CompletionReward{BonusPoints: delta.Score}, nil
}

func (s *service) GrantInitialCoins(ctx context.Context, userID uuid.UUID) error {
	return s.repo.InTx(ctx, func(r Repository) error {
		if err := r.AddCoins(ctx, userID, InitialCoins); err != nil {
			return err
		}
		return r.AppendTransaction(ctx, &TokenTransaction{
			UserID:      userID,
			Amount:      InitialCoins,
			Type:        TransactionInitial,
			Description: "Welcome balance",
		})
	})
}

// ChargeLessonCost debits coins for unlocking a paid lesson. The debit and its
// audit row commit together; an overdraw fails with ErrInsufficientCoins.
func (s *service) ChargeLessonCost(ctx context.Context, userID uuid.UUID, lessonTitle string, cost int) error {
	if cost <= 0 {
		return fmt.Errorf("lesson cost must be positive, got %d", cost)
	}
	return s.repo.InTx(ctx, func(r Repository) error {
		if err := r.AddCoins(ctx, userID, -cost); err != nil {
			return err
		}
		return r.AppendTransaction(ctx, &TokenTransaction{
			UserID:      userID,
			Amount:      -cost,
			Type:        TransactionLessonCost,
			Description: fmt.Sprintf("Unlocked lesson %q", lessonTitle),
		})
	})
}

func (s *service) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopEntries(ctx, limit)
}

func (s *service) Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]TokenTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListTransactions(ctx, userID, limit)
}
