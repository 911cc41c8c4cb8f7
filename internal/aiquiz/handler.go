package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	generated, err := h.service.GenerateQuiz(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidLesson), errors.Is(err, ErrEmptyLesson):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, quiz.ErrLessonHasQuiz):
			http.Error(w, err.Error(), http.StatusConflict)
		case isValidationError(err):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ErrAllProvidersFailed), errors.Is(err, ErrNoJSON):
			log.WithError(err).Error("Quiz generation failed")
			http.Error(w, "quiz generation failed", http.StatusBadGateway)
		default:
			log.WithError(err).Error("Failed to generate quiz")
			http.Error(w, "failed to generate quiz", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, generated)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		ErrQuestionCount,
		ErrMissingType,
		ErrInvalidType,
		ErrMissingText,
		ErrMissingAnswer,
		ErrTooFewOptions,
		ErrAnswerNotInOptions,
		ErrAnswerNotArray,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
