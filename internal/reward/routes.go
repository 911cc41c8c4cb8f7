package reward

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/leaderboard", h.GetLeaderboard)
	r.Get("/transactions", h.ListTransactions)
	r.Post("/lesson-cost", h.ChargeLesson)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(string(user.RoleAdmin)))
		r.Post("/leaderboard/reset", h.ResetLeaderboard)
	})
	return r
}
