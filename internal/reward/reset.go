package reward

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

// ResetLeader describes the single winner of a leaderboard period.
type ResetLeader struct {
	UserID       uuid.UUID `json:"user_id"`
	Score        int       `json:"score"`
	CoinsAwarded int       `json:"coins_awarded"`
}

type ResetResult struct {
	Leader        *ResetLeader `json:"leader"`
	StudentsReset int64        `json:"students_reset"`
}

// ResetDailyLeaderboard rewards the top-ranked student with coins and zeroes
// every student entry, all in one transaction. The winner's reward is computed
// against the pre-reset score. Teacher and admin entries are untouched.
//
// The caller is expected to serialize invocations; this is a singleton job.
func (s *service) ResetDailyLeaderboard(ctx context.Context) (*ResetResult, error) {
	log := config.WithContext(ctx)

	result := &ResetResult{}
	err := s.repo.InTx(ctx, func(r Repository) error {
		leader, err := r.TopStudent(ctx)
		if err != nil {
			return err
		}

		if leader != nil {
			if err := r.AddCoins(ctx, leader.UserID, LeaderboardCoins); err != nil {
				return err
			}
			if err := r.AppendTransaction(ctx, &TokenTransaction{
				UserID:      leader.UserID,
				Amount:      LeaderboardCoins,
				Type:        TransactionLeaderboardReward,
				Description: "Daily leaderboard winner reward",
			}); err != nil {
				return err
			}
			result.Leader = &ResetLeader{
				UserID:       leader.UserID,
				Score:        leader.Score,
				CoinsAwarded: LeaderboardCoins,
			}
		}

		count, err := r.ResetStudents(ctx, time.Now())
		if err != nil {
			return err
		}
		result.StudentsReset = count
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to reset daily leaderboard")
		return nil, err
	}

	if result.Leader != nil {
		log.WithField("winner", result.Leader.UserID.String()).
			WithField("students_reset", result.StudentsReset).
			Info("Daily leaderboard reset completed")
	} else {
		log.Info("Daily leaderboard reset completed with no students to rank")
	}
	return result, nil
}
