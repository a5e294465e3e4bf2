package extraction

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the pipeline. Match with errors.Is.
var (
	ErrEmptyInput         = errors.New("utterance is empty")
	ErrBackendTimeout     = errors.New("text-generation backend timed out")
	ErrBackendUnavailable = errors.New("text-generation backend unavailable")
	ErrMalformedOutput    = errors.New("backend output is not valid JSON")
	ErrSchemaMismatch     = errors.New("backend output is not a JSON object")
	ErrValidation         = errors.New("backend output failed validation")
)

// Stage names reported in Error.
const (
	StageBuild    = "build"
	StageInvoke   = "invoke"
	StageParse    = "parse"
	StageValidate = "validate"
)

// Error is a pipeline failure carrying its kind, the stage it happened in
// and the underlying cause. errors.Is matches both Kind and Err.
type Error struct {
	Kind  error
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extraction %s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("extraction %s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds an *Error.
func NewError(kind error, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// FieldError describes one field that could not be repaired.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every unrecoverable field of a candidate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldNames returns the offending field names in order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return names
}
