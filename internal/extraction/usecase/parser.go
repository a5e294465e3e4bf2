package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"voice-task-management/internal/extraction"
)

var codeFenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// StripWrappers removes markdown code fences and any prose around the JSON
// value in text. Text that is already bare JSON is returned unchanged. Inside
// prose the first balanced object that decodes wins, so brackets in the prose
// itself are skipped; arrays are only taken when no object qualifies.
func StripWrappers(text string) string {
	s := strings.TrimSpace(text)

	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		s = m[1]
	}
	if json.Valid([]byte(s)) {
		return s
	}

	if v, ok := firstValid(s, '{'); ok {
		return v
	}
	if v, ok := firstValid(s, '['); ok {
		return v
	}

	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return s
	}
	end := matchingClose(s, start)
	if end == -1 {
		// Unbalanced, let the decoder report it.
		return s
	}
	return s[start : end+1]
}

// firstValid returns the first balanced span opened by open that is valid JSON.
func firstValid(s string, open byte) (string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != open {
			continue
		}
		end := matchingClose(s, i)
		if end == -1 {
			continue
		}
		if span := s[i : end+1]; json.Valid([]byte(span)) {
			return span, true
		}
	}
	return "", false
}

// matchingClose returns the index closing the JSON value opened at s[start],
// skipping brackets inside string literals, or -1.
func matchingClose(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseResponse decodes raw backend text into a candidate object.
func ParseResponse(raw string) (extraction.Candidate, error) {
	cleaned := StripWrappers(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, extraction.NewError(extraction.ErrMalformedOutput, extraction.StageParse, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, extraction.NewError(extraction.ErrSchemaMismatch, extraction.StageParse,
			fmt.Errorf("top-level value is %s", jsonKind(v)))
	}
	return extraction.Candidate(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
