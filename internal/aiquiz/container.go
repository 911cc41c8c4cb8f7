package aiquiz

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

type AIQuizContainer struct {
	Handler *Handler
	Service Service
}

// NewAIQuizContainer wires the provider chain from the environment: Gemini
// first, then an OpenAI-compatible fallback when AI_FALLBACK_BASE_URL is set.
func NewAIQuizContainer(ctx context.Context, quizzes quiz.QuizService) *AIQuizContainer {
	var providers []Provider

	gemini, err := NewGeminiProvider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Gemini provider unavailable")
	} else {
		providers = append(providers, gemini)
	}

	if base := os.Getenv("AI_FALLBACK_BASE_URL"); base != "" {
		providers = append(providers, NewOpenAIProvider(
			base,
			config.Getenv("AI_FALLBACK_MODEL", "gpt-4o-mini"),
			os.Getenv("AI_FALLBACK_API_KEY"),
		))
	}

	service := NewService(quizzes, providers...)
	return &AIQuizContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
