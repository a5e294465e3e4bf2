package usecase

import (
	"strings"
	"unicode"

	"voice-task-management/internal/extraction/contract"
)

// affixes are dropped from labels before a second lookup, so "urgent
// priority" and "status: done" still match.
var affixes = []string{"priority", "status", "level"}

// vocabulary maps free-form labels onto one canonical enumeration.
type vocabulary struct {
	def    string
	lookup map[string]string
}

func newVocabulary(e contract.Enumeration) *vocabulary {
	v := &vocabulary{
		def:    e.Default,
		lookup: make(map[string]string, len(e.Values)+len(e.Synonyms)),
	}
	for k, label := range e.Synonyms {
		v.lookup[normalizeKey(k)] = label
	}
	// Canonical labels always win over a synonym with the same key.
	for _, label := range e.Values {
		v.lookup[normalizeKey(label)] = label
	}
	return v
}

// Normalize returns the canonical label for raw. Empty input yields the
// default with ok=true; unknown input yields the default with ok=false.
func (v *vocabulary) Normalize(raw string) (label string, ok bool) {
	key := normalizeKey(raw)
	if key == "" {
		return v.def, true
	}
	if label, found := v.lookup[key]; found {
		return label, true
	}

	if trimmed := trimAffixes(key); trimmed != key && trimmed != "" {
		if label, found := v.lookup[trimmed]; found {
			return label, true
		}
	}
	return v.def, false
}

// Default returns the configured default label.
func (v *vocabulary) Default() string {
	return v.def
}

// normalizeKey lowercases s and turns runs of punctuation and spaces into a
// single space.
func normalizeKey(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

func trimAffixes(key string) string {
	for _, a := range affixes {
		key = strings.TrimSpace(strings.TrimPrefix(key, a+" "))
		key = strings.TrimSpace(strings.TrimSuffix(key, " "+a))
	}
	return key
}
