package usecase

import (
	"errors"
	"testing"

	"voice-task-management/internal/extraction"
)

func TestStripWrappers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare object unchanged", in: `{"title":"Buy milk"}`, want: `{"title":"Buy milk"}`},
		{name: "json fence", in: "```json\n{\"title\":\"Buy milk\"}\n```", want: `{"title":"Buy milk"}`},
		{name: "plain fence", in: "```\n{\"title\":\"a\"}\n```", want: `{"title":"a"}`},
		{name: "leading and trailing prose", in: `Sure! Here it is: {"title":"a"} Hope this helps.`, want: `{"title":"a"}`},
		{name: "braces inside strings", in: `Result: {"title":"fix {bug} \"now\""} done`, want: `{"title":"fix {bug} \"now\""}`},
		{name: "brackets in leading prose", in: `Note [1]: {"title":"Buy milk"}`, want: `{"title":"Buy milk"}`},
		{name: "braces in leading prose", in: `Use {name} as a placeholder: {"title":"a"}`, want: `{"title":"a"}`},
		{name: "array in prose", in: `Here: [1, 2]`, want: `[1, 2]`},
		{name: "array kept whole", in: `[{"title":"a"}]`, want: `[{"title":"a"}]`},
		{name: "no json", in: "I cannot help with that", want: "I cannot help with that"},
		{name: "truncated", in: `{"title":"Buy`, want: `{"title":"Buy`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripWrappers(tt.in); got != tt.want {
				t.Errorf("StripWrappers() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		c, err := ParseResponse("```json\n{\"title\":\"Buy milk\",\"priority\":\"High\"}\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c["title"] != "Buy milk" || c["priority"] != "High" {
			t.Errorf("unexpected candidate %v", c)
		}
	})

	t.Run("object after bracketed prose", func(t *testing.T) {
		c, err := ParseResponse(`Note [1]: {"title":"Buy milk"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c["title"] != "Buy milk" {
			t.Errorf("unexpected candidate %v", c)
		}
	})

	malformed := []string{`{"title":"Buy`, "not json at all", `{"title": }`, ""}
	for _, in := range malformed {
		t.Run("malformed "+in, func(t *testing.T) {
			_, err := ParseResponse(in)
			if !errors.Is(err, extraction.ErrMalformedOutput) {
				t.Errorf("ParseResponse(%q) error = %v, want ErrMalformedOutput", in, err)
			}
			var e *extraction.Error
			if !errors.As(err, &e) || e.Stage != extraction.StageParse {
				t.Errorf("expected parse-stage *extraction.Error, got %v", err)
			}
		})
	}

	for _, in := range []string{`[{"title":"a"}]`, `"a string"`, `42`, `null`} {
		t.Run("not an object "+in, func(t *testing.T) {
			_, err := ParseResponse(in)
			if !errors.Is(err, extraction.ErrSchemaMismatch) {
				t.Errorf("ParseResponse(%q) error = %v, want ErrSchemaMismatch", in, err)
			}
		})
	}
}
