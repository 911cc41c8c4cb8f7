package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetQuizWithQuestions)
	r.Get("/lesson/{lessonID}", h.GetQuizByLesson)
	r.Delete("/{id}", h.DeleteQuiz)
	return r
}
