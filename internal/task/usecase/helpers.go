package usecase

import (
	"strings"
	"time"

	"voice-task-management/internal/extraction/contract"
	"voice-task-management/pkg/datemath"
)

// canonical matches v against the enumeration case-insensitively. Empty
// input yields the default label.
func canonical(e contract.Enumeration, v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return e.Default, true
	}
	for _, label := range e.Values {
		if strings.EqualFold(label, v) {
			return label, true
		}
	}
	return "", false
}

// parseDueDate turns a YYYY-MM-DD string into midnight UTC. Empty input
// yields nil.
func parseDueDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if !datemath.IsCanonical(s) {
		return nil, false
	}
	t, err := time.ParseInLocation(datemath.DateLayout, s, time.UTC)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// coalesce returns *newVal when set, otherwise existing.
func coalesce(newVal *string, existing string) string {
	if newVal != nil {
		return *newVal
	}
	return existing
}
