package achievement

// CatalogEntry pairs a catalog row with its pure unlock predicate. The set is
// closed: adding an achievement means adding an entry here, not dispatching on
// strings stored in the database.
type CatalogEntry struct {
	Code        Code
	Name        string
	Description string
	Icon        string
	Check       func(StatsSnapshot) bool
}

func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Code:        CodeFirstQuiz,
			Name:        "First Steps",
			Description: "Complete your first quiz",
			Icon:        "medal-bronze",
			Check:       func(s StatsSnapshot) bool { return s.QuizCount >= 1 },
		},
		{
			Code:        CodePerfectQuiz,
			Name:        "Flawless",
			Description: "Finish a quiz with every answer correct",
			Icon:        "star-gold",
			Check:       func(s StatsSnapshot) bool { return s.HasPerfectAttempt },
		},
		{
			Code:        CodeTenQuizzes,
			Name:        "Dedicated Learner",
			Description: "Complete ten quizzes",
			Icon:        "medal-silver",
			Check:       func(s StatsSnapshot) bool { return s.QuizCount >= 10 },
		},
		{
			Code:        CodeSharpshooter,
			Name:        "Sharpshooter",
			Description: "Answer fifty questions correctly",
			Icon:        "target",
			Check:       func(s StatsSnapshot) bool { return s.CorrectAnswers >= 50 },
		},
		{
			Code:        CodeHighScorer,
			Name:        "High Scorer",
			Description: "Reach a leaderboard score of 500",
			Icon:        "trophy",
			Check:       func(s StatsSnapshot) bool { return s.Score >= 500 },
		},
	}
}
