package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
)

var (
	multiSpaceRe    = regexp.MustCompile(`\s+`)
	spaceBeforePunc = regexp.MustCompile(`\s+([,.;:!?])`)
	repeatedPunc    = regexp.MustCompile(`([,;:])(\s*[,;:.!?])+`)
)

const edgePunctuation = ",.;:!?-–—\"'()[] "

// splitter keeps title and description disjoint from the structured fields:
// priority and status phrases never survive in the description, and date
// phrases are removed once a dueDate was extracted.
type splitter struct {
	priority   []*regexp.Regexp
	status     []*regexp.Regexp
	date       []*regexp.Regexp
	connectors map[string]struct{}
}

func newSplitter(s contract.Splitter) (*splitter, error) {
	sp := &splitter{connectors: make(map[string]struct{}, len(s.Connectors))}

	var err error
	if sp.priority, err = compilePhrases(s.PriorityPhrases); err != nil {
		return nil, err
	}
	if sp.status, err = compilePhrases(s.StatusPhrases); err != nil {
		return nil, err
	}
	if sp.date, err = compilePhrases(s.DatePhrases); err != nil {
		return nil, err
	}
	for _, c := range s.Connectors {
		sp.connectors[strings.ToLower(c)] = struct{}{}
	}
	return sp, nil
}

func compilePhrases(phrases []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		re, err := regexp.Compile(`(?i)\b(?:` + p + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("extraction: splitter phrase %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Apply returns d with a cleaned title and a description stripped of
// structured-field phrases.
func (s *splitter) Apply(d extraction.TaskDraft) extraction.TaskDraft {
	d.Title = cleanTitle(d.Title)
	d.Description = s.cleanDescription(d.Description, d.Title, d.DueDate != "")
	return d
}

func (s *splitter) cleanDescription(desc, title string, hasDueDate bool) string {
	out := desc
	for _, re := range s.priority {
		out = re.ReplaceAllString(out, " ")
	}
	for _, re := range s.status {
		out = re.ReplaceAllString(out, " ")
	}
	if hasDueDate {
		for _, re := range s.date {
			out = re.ReplaceAllString(out, " ")
		}
	}

	out = multiSpaceRe.ReplaceAllString(out, " ")
	out = spaceBeforePunc.ReplaceAllString(out, "$1")
	out = repeatedPunc.ReplaceAllString(out, "$1")
	out = s.trimEdges(out)

	if !hasWord(out) || strings.EqualFold(out, title) {
		return ""
	}
	return out
}

// trimEdges drops punctuation and connector words from both ends until
// neither end changes.
func (s *splitter) trimEdges(text string) string {
	for {
		before := text
		text = strings.Trim(text, edgePunctuation)

		words := strings.Fields(text)
		for len(words) > 0 && s.isConnector(words[0]) {
			words = words[1:]
		}
		for len(words) > 0 && s.isConnector(words[len(words)-1]) {
			words = words[:len(words)-1]
		}
		text = strings.Join(words, " ")

		if text == before {
			return text
		}
	}
}

func (s *splitter) isConnector(word string) bool {
	_, ok := s.connectors[strings.ToLower(strings.Trim(word, edgePunctuation))]
	return ok
}

func cleanTitle(title string) string {
	title = multiSpaceRe.ReplaceAllString(strings.TrimSpace(title), " ")
	return strings.TrimRight(title, ",;:!?. ")
}

func hasWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
