package container

import (
	"context"
	"log"
	"os"

	"github.com/surgik-gh/AILesson-sub000/internal/achievement"
	"github.com/surgik-gh/AILesson-sub000/internal/aiquiz"
	"github.com/surgik-gh/AILesson-sub000/internal/attempt"
	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

type Container struct {
	UserContainer        *user.UserContainer
	QuizContainer        *quiz.QuizContainer
	AIQuizContainer      *aiquiz.AIQuizContainer
	AttemptContainer     *attempt.AttemptContainer
	RewardContainer      *reward.RewardContainer
	AchievementContainer *achievement.AchievementContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	ctx := context.Background()
	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&quiz.Quiz{},
		&quiz.Question{},
		&attempt.QuizAttempt{},
		&attempt.UserAnswer{},
		&reward.LeaderboardEntry{},
		&reward.TokenTransaction{},
		&achievement.Achievement{},
		&achievement.UserAchievement{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	rewardContainer := reward.NewRewardContainer(config.DB)
	userContainer := user.NewUserContainer(config.DB, rewardContainer.Service)
	quizContainer := quiz.NewQuizContainer(config.DB)
	aiQuizContainer := aiquiz.NewAIQuizContainer(ctx, quizContainer.Service)

	// The achievement engine reads leaderboard aggregates and perfect-attempt
	// history; the attempt state machine feeds both back through the ledger.
	attemptRepo := attempt.NewRepository(config.DB)
	achievementContainer, err := achievement.NewAchievementContainer(
		config.DB,
		rewardContainer.Repo,
		attemptRepo,
	)
	if err != nil {
		log.Fatalf("failed to seed achievement catalog: %v", err)
	}

	attemptContainer := attempt.NewAttemptContainer(
		config.DB,
		quizContainer.Repo,
		rewardContainer.Service,
		achievementContainer.Service,
	)

	return &Container{
		UserContainer:        userContainer,
		QuizContainer:        quizContainer,
		AIQuizContainer:      aiQuizContainer,
		AttemptContainer:     attemptContainer,
		RewardContainer:      rewardContainer,
		AchievementContainer: achievementContainer,
	}
}
