package aiquiz

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validQuiz(questionCount int) *GeneratedQuiz {
	g := &GeneratedQuiz{Title: "Photosynthesis"}
	for i := 0; i < questionCount; i++ {
		g.Questions = append(g.Questions, GeneratedQuestion{
			Type:          "SINGLE",
			Text:          "Which pigment absorbs light?",
			Options:       []string{"chlorophyll", "keratin", "melanin"},
			CorrectAnswer: json.RawMessage(`"chlorophyll"`),
		})
	}
	return g
}

func TestValidateQuestionCount(t *testing.T) {
	for _, n := range []int{5, 7, 10} {
		if err := Validate(validQuiz(n)); err != nil {
			t.Errorf("%d questions must pass, got %v", n, err)
		}
	}

	for _, n := range []int{0, 1, 4, 11, 15} {
		err := Validate(validQuiz(n))
		if !errors.Is(err, ErrQuestionCount) {
			t.Errorf("%d questions: expected ErrQuestionCount, got %v", n, err)
			continue
		}
		if !strings.Contains(err.Error(), "between 5 and 10") {
			t.Errorf("error must name the bound, got %q", err.Error())
		}
	}
}

func TestValidateAssignsMissingOrder(t *testing.T) {
	g := validQuiz(5)
	g.Questions[2].Order = 42

	if err := Validate(g); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	for i, q := range g.Questions {
		want := i + 1
		if i == 2 {
			want = 42
		}
		if q.Order != want {
			t.Errorf("question %d: order = %d, want %d", i, q.Order, want)
		}
	}
}

func TestValidateQuestionRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *GeneratedQuestion)
		want   error
	}{
		{
			name:   "MissingType",
			mutate: func(q *GeneratedQuestion) { q.Type = " " },
			want:   ErrMissingType,
		},
		{
			name:   "UnknownType",
			mutate: func(q *GeneratedQuestion) { q.Type = "ESSAY" },
			want:   ErrInvalidType,
		},
		{
			name:   "MissingText",
			mutate: func(q *GeneratedQuestion) { q.Text = "" },
			want:   ErrMissingText,
		},
		{
			name:   "MissingAnswer",
			mutate: func(q *GeneratedQuestion) { q.CorrectAnswer = nil },
			want:   ErrMissingAnswer,
		},
		{
			name:   "NullAnswer",
			mutate: func(q *GeneratedQuestion) { q.CorrectAnswer = json.RawMessage(`null`) },
			want:   ErrMissingAnswer,
		},
		{
			name:   "SingleOption",
			mutate: func(q *GeneratedQuestion) { q.Options = []string{"chlorophyll"} },
			want:   ErrTooFewOptions,
		},
		{
			name:   "SingleAnswerOutsideOptions",
			mutate: func(q *GeneratedQuestion) { q.CorrectAnswer = json.RawMessage(`"hemoglobin"`) },
			want:   ErrAnswerNotInOptions,
		},
		{
			name:   "SingleIndexOutOfRange",
			mutate: func(q *GeneratedQuestion) { q.CorrectAnswer = json.RawMessage(`7`) },
			want:   ErrAnswerNotInOptions,
		},
		{
			name: "MultipleAnswerNotArray",
			mutate: func(q *GeneratedQuestion) {
				q.Type = "MULTIPLE"
				q.CorrectAnswer = json.RawMessage(`"chlorophyll"`)
			},
			want: ErrAnswerNotArray,
		},
		{
			name: "MultipleAnswerOutsideOptions",
			mutate: func(q *GeneratedQuestion) {
				q.Type = "MULTIPLE"
				q.CorrectAnswer = json.RawMessage(`["chlorophyll","hemoglobin"]`)
			},
			want: ErrAnswerNotInOptions,
		},
		{
			name: "MultipleEmptyAnswer",
			mutate: func(q *GeneratedQuestion) {
				q.Type = "MULTIPLE"
				q.CorrectAnswer = json.RawMessage(`[]`)
			},
			want: ErrMissingAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validQuiz(5)
			tt.mutate(&g.Questions[3])

			err := Validate(g)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), "question 4") {
				t.Errorf("error must locate the question, got %q", err.Error())
			}
		})
	}
}

func TestValidateAcceptsVariants(t *testing.T) {
	t.Run("SingleAnswerByIndex", func(t *testing.T) {
		g := validQuiz(5)
		g.Questions[0].CorrectAnswer = json.RawMessage(`1`)
		if err := Validate(g); err != nil {
			t.Errorf("index answer must pass, got %v", err)
		}
	})

	t.Run("TextWithoutOptions", func(t *testing.T) {
		g := validQuiz(5)
		g.Questions[0] = GeneratedQuestion{
			Type:          "TEXT",
			Text:          "Name the process plants use to make food.",
			CorrectAnswer: json.RawMessage(`"photosynthesis"`),
		}
		if err := Validate(g); err != nil {
			t.Errorf("TEXT question must pass, got %v", err)
		}
	})

	t.Run("MultipleWithValidSet", func(t *testing.T) {
		g := validQuiz(5)
		g.Questions[0] = GeneratedQuestion{
			Type:          "MULTIPLE",
			Text:          "Which are inputs of photosynthesis?",
			Options:       []string{"water", "light", "oxygen", "glucose"},
			CorrectAnswer: json.RawMessage(`["water","light"]`),
		}
		if err := Validate(g); err != nil {
			t.Errorf("MULTIPLE question must pass, got %v", err)
		}
	})
}
