package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.StartAttempt)
	r.Get("/", h.ListAttempts)
	r.Post("/{id}/answers", h.SubmitAnswer)
	r.Post("/{id}/complete", h.CompleteAttempt)
	return r
}
