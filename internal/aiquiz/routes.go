package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(user.RoleTeacher)))
		r.Post("/", h.GenerateQuiz)
	})
	return r
}
