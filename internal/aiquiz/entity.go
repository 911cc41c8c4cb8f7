package aiquiz

import "encoding/json"

// GeneratedQuiz is the decoded shape of a model response. It carries no
// persistence concerns; validation promotes it into quiz entities.
type GeneratedQuiz struct {
	Title     string              `json:"title"`
	Questions []GeneratedQuestion `json:"questions"`
}

// GeneratedQuestion keeps CorrectAnswer raw because its shape depends on the
// question type: a string or index for TEXT/SINGLE, an array for MULTIPLE.
type GeneratedQuestion struct {
	Type          string          `json:"type"`
	Text          string          `json:"text"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Order         int             `json:"order,omitempty"`
}

type GenerateRequest struct {
	LessonID      string `json:"lesson_id"`
	LessonTitle   string `json:"lesson_title"`
	LessonContent string `json:"lesson_content"`
}
