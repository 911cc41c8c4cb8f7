package reward

import (
	"time"

	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Score          int        `gorm:"not null;default:0" json:"score"`
	QuizCount      int        `gorm:"not null;default:0" json:"quiz_count"`
	CorrectAnswers int        `gorm:"not null;default:0" json:"correct_answers"`
	TotalAnswers   int        `gorm:"not null;default:0" json:"total_answers"`
	LastResetAt    *time.Time `json:"last_reset_at,omitempty"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TokenTransaction is an append-only audit row. Every wisdom coin change on a
// user pairs with exactly one transaction carrying the same delta.
type TokenTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      int             `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"type:text;not null" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// EntryDelta is the set of increments applied to a leaderboard entry in one
// ledger call. Absent fields stay zero.
type EntryDelta struct {
	Score          int
	QuizCount      int
	CorrectAnswers int
	TotalAnswers   int
}
