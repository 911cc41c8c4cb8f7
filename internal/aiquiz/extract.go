package aiquiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object found in model response")

// ExtractJSON locates the first well-formed JSON object inside free-form model
// output. It tolerates fenced code blocks and prose around the payload. The
// search is two-stage: find a balanced candidate substring, then try to parse
// it; an unparsable candidate moves the search past its opening brace.
func ExtractJSON(raw string) (json.RawMessage, error) {
	text := stripFences(raw)

	for start := strings.IndexByte(text, '{'); start >= 0; {
		end := matchBrace(text, start)
		if end < 0 {
			break
		}
		candidate := []byte(text[start : end+1])
		if json.Valid(candidate) {
			return json.RawMessage(candidate), nil
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return nil, fmt.Errorf("%w: %q", ErrNoJSON, truncate(raw, 120))
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// matchBrace returns the index of the brace closing the object opened at
// start, honoring strings and escapes, or -1 if the text ends first.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
