package reward

type TransactionType string

const (
	TransactionAnswerReward      TransactionType = "ANSWER_REWARD"
	TransactionLeaderboardReward TransactionType = "LEADERBOARD_REWARD"
	TransactionLessonCost        TransactionType = "LESSON_COST"
	TransactionInitial           TransactionType = "INITIAL"
)

// Reward amounts for the learning progress engine.
const (
	CorrectAnswerPoints = 10
	WrongAnswerPenalty  = 1
	CorrectAnswerCoins  = 2
	PerfectQuizPoints   = 50
	LeaderboardCoins    = 25
	InitialCoins        = 100
)
