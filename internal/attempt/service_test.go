package attempt_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/surgik-gh/AILesson-sub000/internal/achievement"
	"github.com/surgik-gh/AILesson-sub000/internal/attempt"
	"github.com/surgik-gh/AILesson-sub000/internal/auth"
	"github.com/surgik-gh/AILesson-sub000/internal/quiz"
	"github.com/surgik-gh/AILesson-sub000/internal/reward"
)

type fakeAttemptRepo struct {
	attempts map[uuid.UUID]*attempt.QuizAttempt
	answers  map[uuid.UUID][]attempt.UserAnswer
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts: make(map[uuid.UUID]*attempt.QuizAttempt),
		answers:  make(map[uuid.UUID][]attempt.UserAnswer),
	}
}

func (f *fakeAttemptRepo) CreateAttempt(_ context.Context, a *attempt.QuizAttempt) error {
	a.StartedAt = time.Now()
	f.attempts[a.ID] = a
	return nil
}

func (f *fakeAttemptRepo) GetAttempt(_ context.Context, id uuid.UUID) (*attempt.QuizAttempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttemptRepo) CreateAnswer(_ context.Context, a *attempt.UserAnswer) error {
	for _, existing := range f.answers[a.AttemptID] {
		if existing.QuestionID == a.QuestionID {
			return attempt.ErrAlreadyAnswered
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.answers[a.AttemptID] = append(f.answers[a.AttemptID], *a)
	return nil
}

func (f *fakeAttemptRepo) ListAnswers(_ context.Context, attemptID uuid.UUID) ([]attempt.UserAnswer, error) {
	return f.answers[attemptID], nil
}

func (f *fakeAttemptRepo) MarkCompleted(_ context.Context, id uuid.UUID, score int, perfect bool, at time.Time) error {
	a, ok := f.attempts[id]
	if !ok || a.CompletedAt != nil {
		return attempt.ErrAttemptCompleted
	}
	a.Score = score
	a.IsPerfect = perfect
	a.CompletedAt = &at
	return nil
}

func (f *fakeAttemptRepo) HasPerfectAttempt(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, a := range f.attempts {
		if a.UserID == userID && a.IsPerfect {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttemptRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]attempt.QuizAttempt, error) {
	var out []attempt.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	quiz *quiz.Quiz
}

func (f *fakeQuizRepo) Create(*quiz.Quiz) error { return nil }

func (f *fakeQuizRepo) GetByID(id string) (*quiz.Quiz, error) {
	if f.quiz != nil && f.quiz.ID.String() == id {
		return f.quiz, nil
	}
	return nil, nil
}

func (f *fakeQuizRepo) GetByLessonID(string) (*quiz.Quiz, error) { return nil, nil }

func (f *fakeQuizRepo) Delete(string) error { return nil }

func (f *fakeQuizRepo) ListQuestionsByQuiz(quizID string) ([]*quiz.Question, error) {
	if f.quiz == nil || f.quiz.ID.String() != quizID {
		return nil, nil
	}
	out := make([]*quiz.Question, len(f.quiz.Questions))
	for i := range f.quiz.Questions {
		out[i] = &f.quiz.Questions[i]
	}
	return out, nil
}

type ledgerCall struct {
	correct bool
	perfect bool
}

type fakeLedger struct {
	answerCalls     []ledgerCall
	completionCalls []ledgerCall
}

func (f *fakeLedger) ApplyAnswerReward(_ context.Context, _ uuid.UUID, correct bool) (reward.AnswerReward, error) {
	f.answerCalls = append(f.answerCalls, ledgerCall{correct: correct})
	if correct {
		return reward.AnswerReward{PointsDelta: 10, CoinsDelta: 2}, nil
	}
	return reward.AnswerReward{PointsDelta: -1}, nil
}

func (f *fakeLedger) ApplyQuizCompletion(_ context.Context, _ uuid.UUID, perfect bool) (reward.CompletionReward, error) {
	f.completionCalls = append(f.completionCalls, ledgerCall{perfect: perfect})
	if perfect {
		return reward.CompletionReward{BonusPoints: 50}, nil
	}
	return reward.CompletionReward{}, nil
}

type fakeChecker struct {
	unlocked []achievement.Unlocked
	calls    int
}

func (f *fakeChecker) CheckAchievements(context.Context, uuid.UUID) ([]achievement.Unlocked, error) {
	f.calls++
	return f.unlocked, nil
}

func mustJSON(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return datatypes.JSON(raw)
}

func testQuiz(t *testing.T) *quiz.Quiz {
	t.Helper()
	quizID := uuid.New()
	qz := &quiz.Quiz{ID: quizID, LessonID: uuid.New(), Title: "Fractions"}
	answers := []string{"a", "b", "c", "d", "e"}
	for i, answer := range answers {
		qz.Questions = append(qz.Questions, quiz.Question{
			ID:            uuid.New(),
			QuizID:        quizID,
			Type:          quiz.QuestionTypeText,
			Text:          "question " + answer,
			CorrectAnswer: mustJSON(t, answer),
			OrderIndex:    i + 1,
		})
	}
	return qz
}

type fixture struct {
	repo    *fakeAttemptRepo
	quizzes *fakeQuizRepo
	ledger  *fakeLedger
	checker *fakeChecker
	service attempt.Service
	quiz    *quiz.Quiz
	userID  uuid.UUID
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    newFakeAttemptRepo(),
		ledger:  &fakeLedger{},
		checker: &fakeChecker{},
		quiz:    testQuiz(t),
		userID:  uuid.New(),
	}
	f.quizzes = &fakeQuizRepo{quiz: f.quiz}
	f.service = attempt.NewService(f.repo, f.quizzes, f.ledger, f.checker)
	f.ctx = auth.WithClaims(context.Background(), &auth.Claims{
		UserID: f.userID.String(),
		Role:   "STUDENT",
	})
	return f
}

func (f *fixture) start(t *testing.T) *attempt.QuizAttempt {
	t.Helper()
	a, err := f.service.StartAttempt(f.ctx, f.quiz.ID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	return a
}

func (f *fixture) answerAll(t *testing.T, a *attempt.QuizAttempt, wrongCount int) {
	t.Helper()
	for i, q := range f.quiz.Questions {
		value, _ := q.CorrectValue()
		if i < wrongCount {
			value = "definitely wrong"
		}
		if _, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, value); err != nil {
			t.Fatalf("SubmitAnswer failed on question %d: %v", i, err)
		}
	}
}

func TestStartAttempt(t *testing.T) {
	f := newFixture(t)

	t.Run("CreatesInProgressAttempt", func(t *testing.T) {
		a := f.start(t)
		if a.CompletedAt != nil {
			t.Error("fresh attempt must not be completed")
		}
		if a.QuizID != f.quiz.ID || a.UserID != f.userID {
			t.Errorf("unexpected attempt: %+v", a)
		}
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		_, err := f.service.StartAttempt(f.ctx, uuid.New())
		if !errors.Is(err, attempt.ErrQuizNotFound) {
			t.Errorf("expected ErrQuizNotFound, got %v", err)
		}
	})

	t.Run("NoClaims", func(t *testing.T) {
		_, err := f.service.StartAttempt(context.Background(), f.quiz.ID)
		if !errors.Is(err, attempt.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("CorrectAnswer", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		q := f.quiz.Questions[0]

		result, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, "a")
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		if !result.IsCorrect || result.PointsDelta != 10 || result.CoinsDelta != 2 {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(f.ledger.answerCalls) != 1 || !f.ledger.answerCalls[0].correct {
			t.Errorf("ledger not driven correctly: %+v", f.ledger.answerCalls)
		}
	})

	t.Run("IncorrectAnswer", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		q := f.quiz.Questions[0]

		result, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, "nope")
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		if result.IsCorrect || result.PointsDelta != -1 || result.CoinsDelta != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("ResubmissionRejected", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		q := f.quiz.Questions[0]

		if _, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, "a"); err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		_, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, "a")
		if !errors.Is(err, attempt.ErrAlreadyAnswered) {
			t.Errorf("expected ErrAlreadyAnswered, got %v", err)
		}
		if len(f.ledger.answerCalls) != 1 {
			t.Errorf("rejected resubmission must not reach the ledger, got %d calls", len(f.ledger.answerCalls))
		}
	})

	t.Run("ForeignAttempt", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		q := f.quiz.Questions[0]

		otherCtx := auth.WithClaims(context.Background(), &auth.Claims{
			UserID: uuid.New().String(),
			Role:   "STUDENT",
		})
		_, err := f.service.SubmitAnswer(otherCtx, a.ID, q.ID, "a")
		if !errors.Is(err, attempt.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("UnknownQuestion", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)

		_, err := f.service.SubmitAnswer(f.ctx, a.ID, uuid.New(), "a")
		if !errors.Is(err, attempt.ErrQuestionNotInQuiz) {
			t.Errorf("expected ErrQuestionNotInQuiz, got %v", err)
		}
	})

	t.Run("UnknownAttempt", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.SubmitAnswer(f.ctx, uuid.New(), f.quiz.Questions[0].ID, "a")
		if !errors.Is(err, attempt.ErrAttemptNotFound) {
			t.Errorf("expected ErrAttemptNotFound, got %v", err)
		}
	})
}

func TestCompleteAttempt(t *testing.T) {
	t.Run("PerfectRun", func(t *testing.T) {
		f := newFixture(t)
		f.checker.unlocked = []achievement.Unlocked{{Code: achievement.CodePerfectQuiz, Name: "Flawless"}}
		a := f.start(t)
		f.answerAll(t, a, 0)

		result, err := f.service.CompleteAttempt(f.ctx, a.ID)
		if err != nil {
			t.Fatalf("CompleteAttempt failed: %v", err)
		}
		if result.Score != 50 || result.CorrectCount != 5 || result.TotalCount != 5 {
			t.Errorf("unexpected result: %+v", result)
		}
		if !result.IsPerfect {
			t.Error("5/5 run must be perfect")
		}
		if len(f.ledger.completionCalls) != 1 || !f.ledger.completionCalls[0].perfect {
			t.Errorf("perfect bonus path not taken: %+v", f.ledger.completionCalls)
		}
		if len(result.NewAchievements) != 1 || result.NewAchievements[0].Code != achievement.CodePerfectQuiz {
			t.Errorf("achievements not propagated: %+v", result.NewAchievements)
		}
		if f.checker.calls != 1 {
			t.Errorf("expected one achievement check, got %d", f.checker.calls)
		}
	})

	t.Run("ImperfectRun", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		f.answerAll(t, a, 1)

		result, err := f.service.CompleteAttempt(f.ctx, a.ID)
		if err != nil {
			t.Fatalf("CompleteAttempt failed: %v", err)
		}
		// 4 correct, 1 incorrect: 4*10 - 1.
		if result.Score != 39 || result.CorrectCount != 4 {
			t.Errorf("unexpected result: %+v", result)
		}
		if result.IsPerfect {
			t.Error("4/5 run must not be perfect")
		}
		if f.ledger.completionCalls[0].perfect {
			t.Error("imperfect completion must not take the bonus path")
		}
	})

	t.Run("IncompleteRejectedWithCount", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		for _, q := range f.quiz.Questions[:3] {
			value, _ := q.CorrectValue()
			if _, err := f.service.SubmitAnswer(f.ctx, a.ID, q.ID, value); err != nil {
				t.Fatalf("SubmitAnswer failed: %v", err)
			}
		}

		_, err := f.service.CompleteAttempt(f.ctx, a.ID)
		if !errors.Is(err, attempt.ErrAttemptIncomplete) {
			t.Fatalf("expected ErrAttemptIncomplete, got %v", err)
		}
		if !strings.Contains(err.Error(), "3/5 answered") {
			t.Errorf("error must carry the answered count, got %q", err.Error())
		}
		if len(f.ledger.completionCalls) != 0 || f.checker.calls != 0 {
			t.Error("failed completion must cause no state change")
		}

		stored, _ := f.repo.GetAttempt(f.ctx, a.ID)
		if stored.CompletedAt != nil {
			t.Error("attempt must remain in progress")
		}
	})

	t.Run("DoubleCompleteRejected", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		f.answerAll(t, a, 0)

		if _, err := f.service.CompleteAttempt(f.ctx, a.ID); err != nil {
			t.Fatalf("first completion failed: %v", err)
		}
		_, err := f.service.CompleteAttempt(f.ctx, a.ID)
		if !errors.Is(err, attempt.ErrAttemptCompleted) {
			t.Errorf("expected ErrAttemptCompleted, got %v", err)
		}
		if len(f.ledger.completionCalls) != 1 {
			t.Errorf("completion rewards must apply exactly once, got %d", len(f.ledger.completionCalls))
		}
	})

	t.Run("SubmitAfterCompleteRejected", func(t *testing.T) {
		f := newFixture(t)
		a := f.start(t)
		f.answerAll(t, a, 0)
		if _, err := f.service.CompleteAttempt(f.ctx, a.ID); err != nil {
			t.Fatalf("completion failed: %v", err)
		}

		_, err := f.service.SubmitAnswer(f.ctx, a.ID, f.quiz.Questions[0].ID, "a")
		if !errors.Is(err, attempt.ErrAttemptCompleted) {
			t.Errorf("expected ErrAttemptCompleted, got %v", err)
		}
	})
}
