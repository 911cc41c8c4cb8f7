package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidSubmission   = errors.New("invalid submission value")
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrMalformedAnswerKey  = errors.New("malformed answer key")
)

// Judge decides whether a submitted value answers a question correctly.
// It is a pure function: no persistence, no re-evaluation later.
func Judge(q *Question, submitted interface{}) (bool, error) {
	switch q.Type {
	case QuestionTypeText:
		return judgeText(q, submitted)
	case QuestionTypeSingle:
		return judgeSingle(q, submitted)
	case QuestionTypeMultiple:
		return judgeMultiple(q, submitted)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownQuestionType, q.Type)
	}
}

// normalizeAnswer casefolds and trims a free-text value before comparison.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func judgeText(q *Question, submitted interface{}) (bool, error) {
	value, ok := submitted.(string)
	if !ok {
		return false, fmt.Errorf("%w: TEXT answers must be a string", ErrInvalidSubmission)
	}
	correct, err := q.CorrectValue()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}
	return normalizeAnswer(value) == normalizeAnswer(correct), nil
}

func judgeSingle(q *Question, submitted interface{}) (bool, error) {
	options, err := q.OptionList()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}
	correct, err := q.CorrectValue()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}

	value, err := resolveOption(submitted, options)
	if err != nil {
		return false, err
	}
	canonical, err := resolveOption(correct, options)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}
	return value == canonical, nil
}

func judgeMultiple(q *Question, submitted interface{}) (bool, error) {
	values, ok := toStringSlice(submitted)
	if !ok {
		return false, fmt.Errorf("%w: MULTIPLE answers must be a list of strings", ErrInvalidSubmission)
	}
	correct, err := q.CorrectValues()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}

	// Set equality after normalization; partial credit is not supported.
	submittedSet := toSet(values)
	correctSet := toSet(correct)
	if len(submittedSet) != len(correctSet) {
		return false, nil
	}
	for v := range submittedSet {
		if _, ok := correctSet[v]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// resolveOption maps a submitted value onto an option: numeric values are
// treated as an index into the option list, strings are compared as given.
func resolveOption(submitted interface{}, options []string) (string, error) {
	switch v := submitted.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if idx, err := strconv.Atoi(trimmed); err == nil {
			if opt, ok := optionAt(options, idx); ok {
				return opt, nil
			}
		}
		return trimmed, nil
	case float64:
		if opt, ok := optionAt(options, int(v)); ok {
			return opt, nil
		}
		return "", fmt.Errorf("%w: option index %d out of range", ErrInvalidSubmission, int(v))
	case int:
		if opt, ok := optionAt(options, v); ok {
			return opt, nil
		}
		return "", fmt.Errorf("%w: option index %d out of range", ErrInvalidSubmission, v)
	default:
		return "", fmt.Errorf("%w: SINGLE answers must be a string or an option index", ErrInvalidSubmission)
	}
}

func optionAt(options []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(options) {
		return "", false
	}
	return options[idx], true
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch vv := v.(type) {
	case []string:
		return vv, true
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[normalizeAnswer(v)] = struct{}{}
	}
	return set
}
