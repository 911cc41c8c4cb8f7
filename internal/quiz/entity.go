package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MinQuestions = 5
	MaxQuestions = 10
)

type Quiz struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lesson_id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Type          QuestionType   `gorm:"type:text;not null" json:"type"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `gorm:"type:jsonb;not null" json:"-"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// OptionList decodes the jsonb options column. TEXT questions have none.
func (q *Question) OptionList() ([]string, error) {
	if len(q.Options) == 0 {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// CorrectValue decodes the canonical answer for TEXT and SINGLE questions.
// A numeric answer (option index) is preserved as its decimal string.
func (q *Question) CorrectValue() (string, error) {
	var s string
	if err := json.Unmarshal(q.CorrectAnswer, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(q.CorrectAnswer, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// CorrectValues decodes the canonical answer set for MULTIPLE questions.
func (q *Question) CorrectValues() ([]string, error) {
	var values []string
	if err := json.Unmarshal(q.CorrectAnswer, &values); err != nil {
		return nil, err
	}
	return values, nil
}
