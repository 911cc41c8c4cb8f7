package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
)

var (
	ErrNoProviders        = errors.New("no generation providers configured")
	ErrAllProvidersFailed = errors.New("all generation providers failed")
	ErrInvalidLesson      = errors.New("invalid lesson id")
	ErrEmptyLesson        = errors.New("lesson content must not be empty")
)

type Service interface {
	// GenerateQuiz drives the full pipeline: prompt the providers in order,
	// extract and validate the JSON payload, and persist the quiz. The
	// returned quiz satisfies every schema invariant.
	GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error)
}

type service struct {
	quizzes   quiz.QuizService
	providers []Provider

	// newBackOff builds the per-provider retry policy. A fresh policy per
	// provider keeps the fallback's retry budget independent of the primary's.
	newBackOff func() backoff.BackOff
}

func NewService(quizzes quiz.QuizService, providers ...Provider) Service {
	return &service{
		quizzes:    quizzes,
		providers:  providers,
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 30 * time.Second
	return backoff.WithMaxRetries(policy, 3)
}

func (s *service) GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error) {
	log := config.WithContext(ctx)

	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLesson, req.LessonID)
	}
	if strings.TrimSpace(req.LessonContent) == "" {
		return nil, ErrEmptyLesson
	}

	raw, err := s.complete(ctx, systemPrompt, BuildUserPrompt(req.LessonTitle, req.LessonContent))
	if err != nil {
		return nil, err
	}

	payload, err := ExtractJSON(raw)
	if err != nil {
		log.WithError(err).Error("Model response carried no JSON payload")
		return nil, err
	}

	var generated GeneratedQuiz
	if err := json.Unmarshal(payload, &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	if err := Validate(&generated); err != nil {
		log.WithError(err).Error("Generated quiz failed validation")
		return nil, err
	}

	qz, questions, err := toEntities(lessonID, req.LessonTitle, &generated)
	if err != nil {
		return nil, err
	}
	if err := s.quizzes.CreateQuizWithQuestions(ctx, qz, questions); err != nil {
		return nil, err
	}
	for _, q := range questions {
		qz.Questions = append(qz.Questions, *q)
	}

	log.WithField("quiz_id", qz.ID.String()).
		Infof("Generated quiz with %d questions", len(questions))
	return qz, nil
}

// complete tries each provider in order, retrying transient failures with
// bounded exponential backoff before falling over to the next one.
func (s *service) complete(ctx context.Context, system, user string) (string, error) {
	if len(s.providers) == 0 {
		return "", ErrNoProviders
	}

	log := config.WithContext(ctx)
	var failures []error
	for _, p := range s.providers {
		policy := backoff.WithContext(s.newBackOff(), ctx)
		raw, err := backoff.RetryWithData(func() (string, error) {
			return p.Generate(ctx, system, user)
		}, policy)
		if err == nil {
			return raw, nil
		}
		log.WithError(err).Warnf("Provider %s exhausted its retries", p.Name())
		failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return "", fmt.Errorf("%w: %v", ErrAllProvidersFailed, errors.Join(failures...))
}

func toEntities(lessonID uuid.UUID, title string, g *GeneratedQuiz) (*quiz.Quiz, []*quiz.Question, error) {
	if strings.TrimSpace(title) == "" {
		title = g.Title
	}
	qz := &quiz.Quiz{
		ID:       uuid.New(),
		LessonID: lessonID,
		Title:    title,
	}

	questions := make([]*quiz.Question, 0, len(g.Questions))
	for _, gq := range g.Questions {
		q := &quiz.Question{
			ID:            uuid.New(),
			Type:          quiz.QuestionType(gq.Type),
			Text:          gq.Text,
			CorrectAnswer: datatypes.JSON(gq.CorrectAnswer),
			OrderIndex:    gq.Order,
		}
		if len(gq.Options) > 0 {
			opts, err := json.Marshal(gq.Options)
			if err != nil {
				return nil, nil, err
			}
			q.Options = datatypes.JSON(opts)
		}
		questions = append(questions, q)
	}
	return qz, questions, nil
}
