package contract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if c.Version == "" {
		t.Error("expected a version")
	}
	if c.Priority.Default != "Low" || c.Status.Default != "To Do" {
		t.Errorf("unexpected defaults %q %q", c.Priority.Default, c.Status.Default)
	}
	if !c.Dates.ResolveRelative {
		t.Error("expected resolve_relative")
	}
	if len(c.Splitter.PriorityPhrases) == 0 || len(c.Splitter.DatePhrases) == 0 {
		t.Error("expected splitter phrases")
	}
}

func TestRender(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	data := PromptData{
		Utterance:       "Buy milk",
		Today:           "2023-10-27",
		Weekday:         "Friday",
		Tomorrow:        "2023-10-28",
		Reference:       "2023-10-27T09:00:00Z",
		Priorities:      c.Priority.Values,
		Statuses:        c.Status.Values,
		DefaultPriority: c.Priority.Default,
		DefaultStatus:   c.Status.Default,
	}

	system, err := c.RenderSystem(data)
	if err != nil {
		t.Fatalf("RenderSystem() error = %v", err)
	}
	for _, want := range []string{"Low, High, Urgent, Critical", "To Do, In Progress, Done", "2023-10-27 (Friday)", "Tomorrow is 2023-10-28"} {
		if !strings.Contains(system, want) {
			t.Errorf("system instruction missing %q", want)
		}
	}

	user, err := c.RenderUser(data)
	if err != nil {
		t.Fatalf("RenderUser() error = %v", err)
	}
	if user != `Utterance: "Buy milk"` {
		t.Errorf("unexpected user prompt %q", user)
	}
}

func TestParse_Invalid(t *testing.T) {
	valid := `
version: "1"
priority: {values: [Low, High], default: Low}
status: {values: [Open], default: Open}
instructions: {system: "s", user: "{{.Utterance}}"}
`
	if _, err := Parse([]byte(valid)); err != nil {
		t.Fatalf("expected valid contract, got %v", err)
	}

	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "version: [unterminated"},
		{name: "missing version", yaml: strings.Replace(valid, `version: "1"`, "", 1)},
		{name: "default not canonical", yaml: strings.Replace(valid, "default: Low", "default: Medium", 1)},
		{name: "synonym to unknown label", yaml: strings.Replace(valid, "default: Low}", "default: Low, synonyms: {normal: Medium}}", 1)},
		{name: "bad template", yaml: strings.Replace(valid, `user: "{{.Utterance}}"`, `user: "{{.Utterance"`, 1)},
		{name: "bad splitter regexp", yaml: valid + "splitter: {priority_phrases: [\"(urgent\"]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, ErrInvalidContract) {
				t.Errorf("expected ErrInvalidContract, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c.Version == "" {
		t.Fatalf("Load(\"\") = %v, %v", c, err)
	}

	path := filepath.Join(t.TempDir(), "contract.yaml")
	if err := os.WriteFile(path, []byte(`
version: "custom"
priority: {values: [P1, P2], default: P2, synonyms: {urgent: P1}}
status: {values: [Open, Closed], default: Open}
instructions: {system: "extract", user: "{{.Utterance}}"}
`), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Version != "custom" || c.Priority.Synonyms["urgent"] != "P1" {
		t.Errorf("unexpected contract %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
