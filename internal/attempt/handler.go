package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req struct {
		QuizID uuid.UUID `json:"quiz_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizID == uuid.Nil {
		http.Error(w, "quiz_id is required", http.StatusBadRequest)
		return
	}

	a, err := h.service.StartAttempt(r.Context(), req.QuizID)
	if err != nil {
		respondServiceError(w, log, err, "Failed to start attempt")
		return
	}

	config.JSON(w, http.StatusCreated, a)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid attempt id", http.StatusBadRequest)
		return
	}

	var req struct {
		QuestionID uuid.UUID   `json:"question_id"`
		Value      interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == uuid.Nil {
		http.Error(w, "question_id and value are required", http.StatusBadRequest)
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), attemptID, req.QuestionID, req.Value)
	if err != nil {
		respondServiceError(w, log, err, "Failed to submit answer")
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) CompleteAttempt(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attemptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid attempt id", http.StatusBadRequest)
		return
	}

	result, err := h.service.CompleteAttempt(r.Context(), attemptID)
	if err != nil {
		respondServiceError(w, log, err, "Failed to complete attempt")
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	attempts, err := h.service.ListAttempts(r.Context())
	if err != nil {
		respondServiceError(w, log, err, "Failed to list attempts")
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}

func respondServiceError(w http.ResponseWriter, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "attempt belongs to another user", http.StatusForbidden)
	case errors.Is(err, ErrAttemptNotFound), errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrQuestionNotInQuiz):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAttemptCompleted), errors.Is(err, ErrAlreadyAnswered):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrAttemptIncomplete), errors.Is(err, quiz.ErrInvalidSubmission):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
