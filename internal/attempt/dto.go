package attempt

import (
	"github.com/surgik-gh/AILesson-sub000/internal/achievement"
)

type SubmitResult struct {
	IsCorrect   bool `json:"is_correct"`
	PointsDelta int  `json:"points_delta"`
	CoinsDelta  int  `json:"coins_delta"`
}

type CompletionResult struct {
	Score           int                    `json:"score"`
	CorrectCount    int                    `json:"correct_count"`
	TotalCount      int                    `json:"total_count"`
	IsPerfect       bool                   `json:"is_perfect"`
	NewAchievements []achievement.Unlocked `json:"new_achievements"`
}
