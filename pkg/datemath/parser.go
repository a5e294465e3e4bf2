package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	// ErrUnrecognized is returned for expressions the parser has no rule for.
	ErrUnrecognized = errors.New("unrecognized date expression")

	// ErrInvalidDate is returned for canonical-looking values that are not real calendar dates.
	ErrInvalidDate = errors.New("invalid calendar date")
)

var (
	canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	durationRe  = regexp.MustCompile(`^in (\d+|a|an|one|two|three) (day|days|week|weeks|month|months)$`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var wordAmounts = map[string]int{"a": 1, "an": 1, "one": 1, "two": 2, "three": 3}

// Parser converts date expressions to calendar dates relative to a reference instant.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string,
// e.g. "Asia/Ho_Chi_Minh". The timezone is only used by Now; expressions are
// always resolved in the location of the reference time they are given.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Now returns the current time in the parser's timezone.
func (p *Parser) Now() time.Time {
	return time.Now().In(p.location)
}

// Resolve returns expr as a canonical YYYY-MM-DD date. The boolean is false
// when expr is empty or cannot be resolved; absence is not an error.
func (p *Parser) Resolve(expr string, ref time.Time) (string, bool) {
	t, err := p.Parse(expr, ref)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// Parse converts a date expression to midnight of the target day.
//
// Supported forms: YYYY-MM-DD (returned unchanged), RFC3339 timestamps (date
// part as written), today, tonight, tomorrow, yesterday, day after tomorrow,
// next week, in N days/weeks/months, next <weekday>, this <weekday>,
// on <weekday> and a bare weekday name.
func (p *Parser) Parse(expr string, ref time.Time) (time.Time, error) {
	raw := strings.TrimSpace(expr)
	if canonicalRe.MatchString(raw) {
		t, err := time.ParseInLocation(DateLayout, raw, ref.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ref.Location()), nil
	}

	relative := normalize(raw)

	switch relative {
	case "today", "tonight", "this evening":
		return startOfDay(ref), nil
	case "tomorrow", "tomorrow morning", "tomorrow evening":
		return startOfDay(ref.AddDate(0, 0, 1)), nil
	case "yesterday":
		return startOfDay(ref.AddDate(0, 0, -1)), nil
	case "day after tomorrow", "the day after tomorrow":
		return startOfDay(ref.AddDate(0, 0, 2)), nil
	case "next week":
		return startOfDay(ref.AddDate(0, 0, 7)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return parseInDuration(relative, ref)
	}

	if strings.HasPrefix(relative, "next ") {
		return parseWeekday(strings.TrimPrefix(relative, "next "), ref, true)
	}
	for _, prefix := range []string{"this coming ", "this ", "on ", "coming "} {
		if strings.HasPrefix(relative, prefix) {
			return parseWeekday(strings.TrimPrefix(relative, prefix), ref, false)
		}
	}
	if _, ok := weekdays[relative]; ok {
		return parseWeekday(relative, ref, false)
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, expr)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in a month".
func parseInDuration(relative string, ref time.Time) (time.Time, error) {
	matches := durationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, relative)
	}

	amount, ok := wordAmounts[matches[1]]
	if !ok {
		amount, _ = strconv.Atoi(matches[1])
	}

	switch unit := matches[2]; {
	case strings.HasPrefix(unit, "day"):
		return startOfDay(ref.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return startOfDay(ref.AddDate(0, 0, amount*7)), nil
	default:
		return startOfDay(ref.AddDate(0, amount, 0)), nil
	}
}

// parseWeekday resolves a weekday name to its nearest occurrence. With strict
// set ("next friday") the reference day itself never matches, so asking for the
// reference weekday yields the date seven days later.
func parseWeekday(dayName string, ref time.Time, strict bool) (time.Time, error) {
	target, ok := weekdays[dayName]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown weekday %q", ErrUnrecognized, dayName)
	}

	daysUntil := int(target - ref.Weekday())
	if daysUntil < 0 || (strict && daysUntil == 0) {
		daysUntil += 7
	}

	return startOfDay(ref.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of t's day in t's own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func normalize(expr string) string {
	s := strings.ToLower(strings.TrimSpace(expr))
	s = strings.TrimRight(s, ".,!?;:")
	s = strings.TrimPrefix(s, "by ")
	s = strings.TrimPrefix(s, "due ")
	return spaceRe.ReplaceAllString(s, " ")
}

// IsCanonical reports whether s is a YYYY-MM-DD string naming a real calendar date.
func IsCanonical(s string) bool {
	if !canonicalRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
