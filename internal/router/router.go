package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/surgik-gh/AILesson-sub000/internal/achievement"
	"github.com/surgik-gh/AILesson-sub000/internal/aiquiz"
	"github.com/surgik-gh/AILesson-sub000/internal/attempt"
	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

type RouterConfig struct {
	UserHandler        *user.Handler
	QuizHandler        *quiz.Handler
	AIQuizHandler      *aiquiz.Handler
	AttemptHandler     *attempt.Handler
	RewardHandler      *reward.Handler
	AchievementHandler *achievement.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/users", cfg.UserHandler.Register)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
		r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
		r.Mount("/rewards", reward.Routes(cfg.RewardHandler))
		r.Mount("/achievements", achievement.Routes(cfg.AchievementHandler))
	})
	return r
}
