package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voice-task-management/internal/extraction"
	"voice-task-management/pkg/datemath"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPriority    = "priority"
	fieldStatus      = "status"
	fieldDueDate     = "dueDate"
)

// validator checks a candidate against the JSON Schema and folds it into a
// TaskDraft. Only title problems are fatal; every other field is repaired
// and the repair reported as a Correction.
type validator struct {
	schema   *jsonschema.Schema
	priority *vocabulary
	status   *vocabulary
}

func newValidator(schema *jsonschema.Schema, priority, status *vocabulary) *validator {
	return &validator{schema: schema, priority: priority, status: status}
}

func (v *validator) Validate(c extraction.Candidate) (extraction.TaskDraft, []extraction.Correction, error) {
	typeErrs := v.schemaErrors(c)

	var fieldErrs []extraction.FieldError
	if reason, bad := typeErrs[fieldTitle]; bad {
		fieldErrs = append(fieldErrs, extraction.FieldError{Field: fieldTitle, Reason: reason})
	} else if title, _ := c[fieldTitle].(string); !hasWord(title) {
		fieldErrs = append(fieldErrs, extraction.FieldError{Field: fieldTitle, Reason: "must not be empty"})
	}
	if len(fieldErrs) > 0 {
		return extraction.TaskDraft{}, nil, extraction.NewError(extraction.ErrValidation, extraction.StageValidate,
			&extraction.ValidationError{Fields: fieldErrs})
	}

	var corrections []extraction.Correction
	correct := func(field string, from any, to, reason string) {
		corrections = append(corrections, extraction.Correction{Field: field, From: from, To: to, Reason: reason})
	}

	draft := extraction.TaskDraft{
		Title: c[fieldTitle].(string),
	}

	switch d := c[fieldDescription].(type) {
	case nil:
	case string:
		draft.Description = d
	default:
		correct(fieldDescription, d, "", "not a string")
	}

	draft.Priority = v.normalizeLabel(c, fieldPriority, v.priority, correct)
	draft.Status = v.normalizeLabel(c, fieldStatus, v.status, correct)

	switch d := c[fieldDueDate].(type) {
	case nil:
	case string:
		s := strings.TrimSpace(d)
		switch {
		case s == "":
		case datemath.IsCanonical(s):
			draft.DueDate = s
		default:
			correct(fieldDueDate, d, "", "not a YYYY-MM-DD calendar date")
		}
	default:
		correct(fieldDueDate, d, "", "not a string")
	}

	return draft, corrections, nil
}

func (v *validator) normalizeLabel(
	c extraction.Candidate,
	field string,
	vocab *vocabulary,
	correct func(field string, from any, to, reason string),
) string {
	switch raw := c[field].(type) {
	case nil:
		return vocab.Default()
	case string:
		label, ok := vocab.Normalize(raw)
		if !ok {
			correct(field, raw, label, "unknown label")
		}
		return label
	default:
		correct(field, raw, vocab.Default(), "not a string")
		return vocab.Default()
	}
}

// schemaErrors returns one reason per top-level field that failed the
// schema. A missing required property is reported under its own name.
func (v *validator) schemaErrors(c extraction.Candidate) map[string]string {
	err := v.schema.Validate(map[string]any(c))
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return map[string]string{fieldTitle: err.Error()}
	}

	out := make(map[string]string)
	for _, leaf := range leaves(ve) {
		field := topLevelField(leaf.InstanceLocation)
		if field == "" {
			if strings.HasSuffix(leaf.KeywordLocation, "/required") {
				field = fieldTitle
			} else {
				field = "$"
			}
		}
		if _, seen := out[field]; !seen {
			out[field] = leaf.Message
		}
	}
	// A root-level failure (e.g. wrong type) cannot be repaired.
	if reason, ok := out["$"]; ok {
		out[fieldTitle] = reason
	}
	return out
}

func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InstanceLocation < out[j].InstanceLocation
	})
	return out
}

func topLevelField(location string) string {
	location = strings.TrimPrefix(location, "/")
	if i := strings.IndexByte(location, '/'); i >= 0 {
		location = location[:i]
	}
	return location
}
