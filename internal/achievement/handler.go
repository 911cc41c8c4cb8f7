package achievement

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	rows, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list achievements")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	unlocked, err := h.service.CheckAchievements(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to check achievements")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"new_achievements": unlocked,
	})
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return userID, true
}
