package aiquiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

// Validation errors name the exact rule a generated quiz broke, so callers
// and tests can assert on cause instead of matching message strings.
var (
	ErrQuestionCount      = errors.New("quiz must have between 5 and 10 questions")
	ErrMissingType        = errors.New("question is missing type")
	ErrInvalidType        = errors.New("question type must be TEXT, SINGLE or MULTIPLE")
	ErrMissingText        = errors.New("question is missing text")
	ErrMissingAnswer      = errors.New("question is missing correctAnswer")
	ErrTooFewOptions      = errors.New("question must have at least 2 options")
	ErrAnswerNotInOptions = errors.New("correctAnswer must be one of the options")
	ErrAnswerNotArray     = errors.New("correctAnswer must be an array of options")
)

// Validate checks a decoded model response against the quiz schema and
// assigns missing order fields sequentially. Nothing reaches the database
// until this passes.
func Validate(g *GeneratedQuiz) error {
	if n := len(g.Questions); n < quiz.MinQuestions || n > quiz.MaxQuestions {
		return fmt.Errorf("%w: got %d", ErrQuestionCount, n)
	}

	for i := range g.Questions {
		q := &g.Questions[i]
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		if q.Order == 0 {
			q.Order = i + 1
		}
	}
	return nil
}

func validateQuestion(q *GeneratedQuestion) error {
	if strings.TrimSpace(q.Type) == "" {
		return ErrMissingType
	}
	qtype := quiz.QuestionType(q.Type)
	if !qtype.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidType, q.Type)
	}
	if strings.TrimSpace(q.Text) == "" {
		return ErrMissingText
	}
	if len(q.CorrectAnswer) == 0 || string(q.CorrectAnswer) == "null" {
		return ErrMissingAnswer
	}

	switch qtype {
	case quiz.QuestionTypeText:
		return nil
	case quiz.QuestionTypeSingle:
		if len(q.Options) < 2 {
			return ErrTooFewOptions
		}
		return validateSingleAnswer(q)
	case quiz.QuestionTypeMultiple:
		if len(q.Options) < 2 {
			return ErrTooFewOptions
		}
		return validateMultipleAnswer(q)
	}
	return nil
}

// validateSingleAnswer accepts the correct option verbatim or its index.
func validateSingleAnswer(q *GeneratedQuestion) error {
	var s string
	if err := json.Unmarshal(q.CorrectAnswer, &s); err == nil {
		for _, opt := range q.Options {
			if opt == s {
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrAnswerNotInOptions, s)
	}

	var idx int
	if err := json.Unmarshal(q.CorrectAnswer, &idx); err == nil {
		if idx >= 0 && idx < len(q.Options) {
			return nil
		}
		return fmt.Errorf("%w: index %d out of range", ErrAnswerNotInOptions, idx)
	}
	return ErrMissingAnswer
}

func validateMultipleAnswer(q *GeneratedQuestion) error {
	var values []string
	if err := json.Unmarshal(q.CorrectAnswer, &values); err != nil {
		return ErrAnswerNotArray
	}
	if len(values) == 0 {
		return ErrMissingAnswer
	}
	for _, v := range values {
		found := false
		for _, opt := range q.Options {
			if opt == v {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrAnswerNotInOptions, v)
		}
	}
	return nil
}
