package achievement

import (
	"time"

	"github.com/google/uuid"
)

type Code string

const (
	CodeFirstQuiz    Code = "FIRST_QUIZ"
	CodePerfectQuiz  Code = "PERFECT_QUIZ"
	CodeTenQuizzes   Code = "TEN_QUIZZES"
	CodeSharpshooter Code = "SHARPSHOOTER"
	CodeHighScorer   Code = "HIGH_SCORER"
)

// Achievement is a static catalog row; the machine-checkable condition lives
// in the catalog, keyed by Code.
type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        Code      `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:text" json:"icon"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserAchievement is the join row created the first time a user satisfies a
// condition. The composite unique index is the de-duplication mechanism under
// concurrent checks.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// StatsSnapshot is the aggregate view achievement conditions are evaluated
// against.
type StatsSnapshot struct {
	Score             int
	QuizCount         int
	CorrectAnswers    int
	TotalAnswers      int
	HasPerfectAttempt bool
}

// Unlocked reports a newly created user achievement.
type Unlocked struct {
	Code       Code      `json:"code"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
