package attempt

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt tracks one user's pass through a quiz. A nil CompletedAt means
// the attempt is still in progress; the transition to completed happens once.
type QuizAttempt struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       int        `gorm:"not null;default:0" json:"score"`
	IsPerfect   bool       `gorm:"not null;default:false" json:"is_perfect"`
}

// UserAnswer stores a submitted value and its correctness, fixed at submission
// time. The composite unique index admits at most one answer per question per
// attempt.
type UserAnswer struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	Value      datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	IsCorrect  bool           `gorm:"not null" json:"is_correct"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
