package reward

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.service.Top(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, entries)
}

func (h *Handler) ResetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	result, err := h.service.ResetDailyLeaderboard(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to reset leaderboard")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	txs, err := h.service.Transactions(r.Context(), userID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list transactions")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, txs)
}

func (h *Handler) ChargeLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req struct {
		LessonTitle string `json:"lesson_title"`
		Cost        int    `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Cost <= 0 {
		http.Error(w, "cost must be positive", http.StatusBadRequest)
		return
	}

	if err := h.service.ChargeLessonCost(r.Context(), userID, req.LessonTitle, req.Cost); err != nil {
		if errors.Is(err, ErrInsufficientCoins) {
			http.Error(w, "insufficient wisdom coins", http.StatusPaymentRequired)
			return
		}
		log.WithError(err).Error("Failed to charge lesson cost")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "lesson unlocked",
	})
}
