package quiz

type QuestionType string

const (
	QuestionTypeText     QuestionType = "TEXT"
	QuestionTypeSingle   QuestionType = "SINGLE"
	QuestionTypeMultiple QuestionType = "MULTIPLE"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeSingle, QuestionTypeMultiple:
		return true
	}
	return false
}
