package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/sirupsen/logrus"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/container"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
	"github.com/surgik-gh/AILesson-sub000/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:        c.UserContainer.Handler,
		QuizHandler:        c.QuizContainer.Handler,
		AIQuizHandler:      c.AIQuizContainer.Handler,
		AttemptHandler:     c.AttemptContainer.Handler,
		RewardHandler:      c.RewardContainer.Handler,
		AchievementHandler: c.AchievementContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		adapter := chiadapter.New(handler)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	// Long-running mode owns the reset schedule; on Lambda an external
	// scheduler hits the reset endpoint instead.
	if os.Getenv("ENABLE_DAILY_RESET") == "true" {
		reward.StartDailyReset(context.Background(), c.RewardContainer.Service)
	}

	addr := ":" + config.Getenv("PORT", "8080")
	logrus.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
