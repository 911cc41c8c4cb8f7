package reward

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientCoins = errors.New("insufficient wisdom coins")
)

type Repository interface {
	// InTx runs fn against a transaction-scoped repository. Everything fn does
	// commits or rolls back as one unit.
	InTx(ctx context.Context, fn func(Repository) error) error

	Entry(ctx context.Context, userID uuid.UUID) (*LeaderboardEntry, error)
	ApplyEntryDelta(ctx context.Context, userID uuid.UUID, d EntryDelta) error
	AddCoins(ctx context.Context, userID uuid.UUID, amount int) error
	AppendTransaction(ctx context.Context, tx *TokenTransaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]TokenTransaction, error)

	TopStudent(ctx context.Context) (*LeaderboardEntry, error)
	ResetStudents(ctx context.Context, now time.Time) (int64, error)
	TopEntries(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) Entry(ctx context.Context, userID uuid.UUID) (*LeaderboardEntry, error) {
	var entry LeaderboardEntry
	if err := r.db.WithContext(ctx).First(&entry, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ApplyEntryDelta increments a user's leaderboard entry in a single upsert,
// seeding a fresh entry from zero when none exists yet.
func (r *gormRepository) ApplyEntryDelta(ctx context.Context, userID uuid.UUID, d EntryDelta) error {
	entry := LeaderboardEntry{
		ID:             uuid.New(),
		UserID:         userID,
		Score:          d.Score,
		QuizCount:      d.QuizCount,
		CorrectAnswers: d.CorrectAnswers,
		TotalAnswers:   d.TotalAnswers,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":           gorm.Expr("leaderboard_entries.score + ?", d.Score),
			"quiz_count":      gorm.Expr("leaderboard_entries.quiz_count + ?", d.QuizCount),
			"correct_answers": gorm.Expr("leaderboard_entries.correct_answers + ?", d.CorrectAnswers),
			"total_answers":   gorm.Expr("leaderboard_entries.total_answers + ?", d.TotalAnswers),
			"updated_at":      time.Now(),
		}),
	}).Create(&entry).Error
}

func (r *gormRepository) AddCoins(ctx context.Context, userID uuid.UUID, amount int) error {
	q := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", userID)
	if amount < 0 {
		q = q.Where("wisdom_coins >= ?", -amount)
	}
	res := q.UpdateColumn("wisdom_coins", gorm.Expr("wisdom_coins + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if amount < 0 {
			return ErrInsufficientCoins
		}
		return ErrUserNotFound
	}
	return nil
}

func (r *gormRepository) AppendTransaction(ctx context.Context, tx *TokenTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *gormRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]TokenTransaction, error) {
	var txs []TokenTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// TopStudent returns the highest-scored student entry. Ties break on the
// lowest user id so exactly one winner is selected deterministically.
func (r *gormRepository) TopStudent(ctx context.Context) (*LeaderboardEntry, error) {
	var entry LeaderboardEntry
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = leaderboard_entries.user_id").
		Where("users.role = ?", user.RoleStudent).
		Order("leaderboard_entries.score DESC, leaderboard_entries.user_id ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormRepository) ResetStudents(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaderboardEntry{}).
		Where("user_id IN (?)",
			r.db.Model(&user.User{}).Select("id").Where("role = ?", user.RoleStudent)).
		UpdateColumns(map[string]interface{}{
			"score":           0,
			"quiz_count":      0,
			"correct_answers": 0,
			"total_answers":   0,
			"last_reset_at":   now,
			"updated_at":      now,
		})
	return res.RowsAffected, res.Error
}

func (r *gormRepository) TopEntries(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := r.db.WithContext(ctx).
		Order("score DESC, user_id ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
