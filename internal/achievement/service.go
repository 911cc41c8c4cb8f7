package achievement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
)

// StatsSource supplies a user's leaderboard aggregates.
type StatsSource interface {
	Entry(ctx context.Context, userID uuid.UUID) (*reward.LeaderboardEntry, error)
}

// PerfectSource reports whether a user has at least one perfect attempt.
type PerfectSource interface {
	HasPerfectAttempt(ctx context.Context, userID uuid.UUID) (bool, error)
}

type Service interface {
	CheckAchievements(ctx context.Context, userID uuid.UUID) ([]Unlocked, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]UserAchievement, error)
}

type service struct {
	repo     Repository
	stats    StatsSource
	perfects PerfectSource
}

func NewService(repo Repository, stats StatsSource, perfects PerfectSource) Service {
	return &service{repo: repo, stats: stats, perfects: perfects}
}

// CheckAchievements evaluates every catalog condition against the user's
// current aggregates and unlocks the ones that newly hold. Repeat calls with
// unchanged aggregates return an empty list; the unique constraint guarantees
// at most one row per (user, achievement) even under concurrent invocation.
func (s *service) CheckAchievements(ctx context.Context, userID uuid.UUID) ([]Unlocked, error) {
	log := config.WithContext(ctx)

	snapshot, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[Code]Achievement, len(rows))
	for _, row := range rows {
		byCode[row.Code] = row
	}

	unlocked := []Unlocked{}
	for _, entry := range Catalog() {
		if !entry.Check(snapshot) {
			continue
		}
		row, ok := byCode[entry.Code]
		if !ok {
			// Catalog row missing from the database; seeding is a startup
			// concern, so skip rather than fail the whole check.
			log.WithField("code", string(entry.Code)).Warn("Achievement missing from catalog table")
			continue
		}
		created, err := s.repo.Unlock(ctx, userID, row.ID)
		if err != nil {
			return nil, err
		}
		if created {
			unlocked = append(unlocked, Unlocked{
				Code:       row.Code,
				Name:       row.Name,
				Icon:       row.Icon,
				UnlockedAt: time.Now(),
			})
		}
	}

	if len(unlocked) > 0 {
		log.WithField("user_id", userID.String()).
			WithField("count", len(unlocked)).
			Info("Achievements unlocked")
	}
	return unlocked, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]UserAchievement, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) snapshot(ctx context.Context, userID uuid.UUID) (StatsSnapshot, error) {
	snapshot := StatsSnapshot{}

	entry, err := s.stats.Entry(ctx, userID)
	if err != nil {
		return snapshot, err
	}
	if entry != nil {
		snapshot.Score = entry.Score
		snapshot.QuizCount = entry.QuizCount
		snapshot.CorrectAnswers = entry.CorrectAnswers
		snapshot.TotalAnswers = entry.TotalAnswers
	}

	perfect, err := s.perfects.HasPerfectAttempt(ctx, userID)
	if err != nil {
		return snapshot, err
	}
	snapshot.HasPerfectAttempt = perfect
	return snapshot, nil
}
