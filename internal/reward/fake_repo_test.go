package reward_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/reward"
	"github.com/surgik-gh/AILesson-sub000/internal/user"
)

// fakeRepository is an in-memory stand-in for the gorm repository so the
// ledger semantics can be exercised without a database.
type fakeRepository struct {
	entries      map[uuid.UUID]*reward.LeaderboardEntry
	coins        map[uuid.UUID]int
	roles        map[uuid.UUID]user.Role
	transactions []reward.TokenTransaction
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		entries: make(map[uuid.UUID]*reward.LeaderboardEntry),
		coins:   make(map[uuid.UUID]int),
		roles:   make(map[uuid.UUID]user.Role),
	}
}

func (f *fakeRepository) addUser(role user.Role, coins int) uuid.UUID {
	id := uuid.New()
	f.roles[id] = role
	f.coins[id] = coins
	return id
}

func (f *fakeRepository) seedEntry(userID uuid.UUID, score, quizCount, correct, total int) {
	f.entries[userID] = &reward.LeaderboardEntry{
		ID:             uuid.New(),
		UserID:         userID,
		Score:          score,
		QuizCount:      quizCount,
		CorrectAnswers: correct,
		TotalAnswers:   total,
	}
}

func (f *fakeRepository) InTx(ctx context.Context, fn func(reward.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Entry(_ context.Context, userID uuid.UUID) (*reward.LeaderboardEntry, error) {
	entry, ok := f.entries[userID]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeRepository) ApplyEntryDelta(_ context.Context, userID uuid.UUID, d reward.EntryDelta) error {
	entry, ok := f.entries[userID]
	if !ok {
		entry = &reward.LeaderboardEntry{ID: uuid.New(), UserID: userID}
		f.entries[userID] = entry
	}
	entry.Score += d.Score
	entry.QuizCount += d.QuizCount
	entry.CorrectAnswers += d.CorrectAnswers
	entry.TotalAnswers += d.TotalAnswers
	return nil
}

func (f *fakeRepository) AddCoins(_ context.Context, userID uuid.UUID, amount int) error {
	if _, ok := f.roles[userID]; !ok {
		return reward.ErrUserNotFound
	}
	if amount < 0 && f.coins[userID] < -amount {
		return reward.ErrInsufficientCoins
	}
	f.coins[userID] += amount
	return nil
}

func (f *fakeRepository) AppendTransaction(_ context.Context, tx *reward.TokenTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeRepository) ListTransactions(_ context.Context, userID uuid.UUID, limit int) ([]reward.TokenTransaction, error) {
	var out []reward.TokenTransaction
	for i := len(f.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.transactions[i].UserID == userID {
			out = append(out, f.transactions[i])
		}
	}
	return out, nil
}

func (f *fakeRepository) TopStudent(_ context.Context) (*reward.LeaderboardEntry, error) {
	students := f.studentEntries()
	if len(students) == 0 {
		return nil, nil
	}
	copied := *students[0]
	return &copied, nil
}

func (f *fakeRepository) ResetStudents(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, entry := range f.entries {
		if f.roles[entry.UserID] != user.RoleStudent {
			continue
		}
		entry.Score = 0
		entry.QuizCount = 0
		entry.CorrectAnswers = 0
		entry.TotalAnswers = 0
		entry.LastResetAt = &now
		count++
	}
	return count, nil
}

func (f *fakeRepository) TopEntries(_ context.Context, limit int) ([]reward.LeaderboardEntry, error) {
	all := make([]*reward.LeaderboardEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		all = append(all, entry)
	}
	sortEntries(all)
	out := make([]reward.LeaderboardEntry, 0, limit)
	for _, entry := range all {
		if len(out) == limit {
			break
		}
		out = append(out, *entry)
	}
	return out, nil
}

func (f *fakeRepository) studentEntries() []*reward.LeaderboardEntry {
	var students []*reward.LeaderboardEntry
	for _, entry := range f.entries {
		if f.roles[entry.UserID] == user.RoleStudent {
			students = append(students, entry)
		}
	}
	sortEntries(students)
	return students
}

// sortEntries mirrors the SQL ordering: score descending, user id ascending.
func sortEntries(entries []*reward.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
}
