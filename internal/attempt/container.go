package attempt

import (
	"gorm.io/gorm"

	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

type AttemptContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewAttemptContainer(db *gorm.DB, quizzes quiz.QuizRepository, ledger Ledger, achievements AchievementChecker) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizzes, ledger, achievements)
	handler := NewHandler(service)

	return &AttemptContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
