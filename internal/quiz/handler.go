package quiz

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuizWithQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	if quizID == "" {
		http.Error(w, "quiz id required", http.StatusBadRequest)
		return
	}

	quiz, err := h.service.GetQuizWithQuestions(r.Context(), quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			http.Error(w, "quiz not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, quiz)
}

func (h *Handler) GetQuizByLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	lessonID := chi.URLParam(r, "lessonID")
	if lessonID == "" {
		http.Error(w, "lesson id required", http.StatusBadRequest)
		return
	}

	quiz, err := h.service.GetQuizByLesson(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			http.Error(w, "quiz not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load quiz for lesson")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, quiz)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	if quizID == "" {
		http.Error(w, "quiz id required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}
