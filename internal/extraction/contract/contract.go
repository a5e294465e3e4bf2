// Package contract holds the versioned extraction contract: canonical
// enumerations with their synonym tables, instruction templates, splitter
// phrases and the candidate JSON Schema.
package contract

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContract []byte

//go:embed candidate.schema.json
var candidateSchema []byte

// SchemaURL is the resource name the candidate schema is registered under.
const SchemaURL = "candidate.schema.json"

var ErrInvalidContract = errors.New("invalid extraction contract")

// Contract is the single configuration object driving the pipeline.
type Contract struct {
	Version      string       `yaml:"version"`
	Temperature  float64      `yaml:"temperature"`
	MaxTokens    int          `yaml:"max_tokens"`
	Priority     Enumeration  `yaml:"priority"`
	Status       Enumeration  `yaml:"status"`
	Dates        DatePolicy   `yaml:"dates"`
	Splitter     Splitter     `yaml:"splitter"`
	Instructions Instructions `yaml:"instructions"`

	system *template.Template
	user   *template.Template
}

// Enumeration is a canonical label set with its default and synonym table.
// Synonym keys are matched after lowercasing and collapsing punctuation.
type Enumeration struct {
	Values   []string          `yaml:"values"`
	Default  string            `yaml:"default"`
	Synonyms map[string]string `yaml:"synonyms"`
}

// DatePolicy controls how dueDate values are post-processed.
type DatePolicy struct {
	ResolveRelative bool `yaml:"resolve_relative"`
}

// Splitter lists the phrases removed from descriptions. Phrases are regular
// expressions.
type Splitter struct {
	PriorityPhrases []string `yaml:"priority_phrases"`
	StatusPhrases   []string `yaml:"status_phrases"`
	DatePhrases     []string `yaml:"date_phrases"`
	Connectors      []string `yaml:"connectors"`
}

// Instructions are text/template sources rendered with PromptData.
type Instructions struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// PromptData is the template input for Instructions.
type PromptData struct {
	Utterance       string
	Today           string
	Weekday         string
	Tomorrow        string
	Reference       string
	Priorities      []string
	Statuses        []string
	DefaultPriority string
	DefaultStatus   string
}

// Default returns the embedded contract.
func Default() (*Contract, error) {
	return Parse(defaultContract)
}

// Load reads a contract from a YAML file. An empty path yields Default.
func Load(path string) (*Contract, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML contract.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContract, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Schema returns the candidate JSON Schema document.
func Schema() []byte {
	return candidateSchema
}

func (c *Contract) validate() error {
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidContract)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature %v out of range", ErrInvalidContract, c.Temperature)
	}
	if err := c.Priority.validate("priority"); err != nil {
		return err
	}
	if err := c.Status.validate("status"); err != nil {
		return err
	}

	for _, group := range [][]string{c.Splitter.PriorityPhrases, c.Splitter.StatusPhrases, c.Splitter.DatePhrases} {
		for _, p := range group {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("%w: splitter phrase %q: %v", ErrInvalidContract, p, err)
			}
		}
	}

	funcs := template.FuncMap{"join": strings.Join}
	var err error
	if c.system, err = template.New("system").Funcs(funcs).Option("missingkey=error").Parse(c.Instructions.System); err != nil {
		return fmt.Errorf("%w: system instruction: %v", ErrInvalidContract, err)
	}
	if c.user, err = template.New("user").Funcs(funcs).Option("missingkey=error").Parse(c.Instructions.User); err != nil {
		return fmt.Errorf("%w: user instruction: %v", ErrInvalidContract, err)
	}
	if strings.TrimSpace(c.Instructions.User) == "" {
		return fmt.Errorf("%w: user instruction is required", ErrInvalidContract)
	}

	return nil
}

func (e Enumeration) validate(field string) error {
	if len(e.Values) == 0 {
		return fmt.Errorf("%w: %s has no values", ErrInvalidContract, field)
	}
	if !e.Has(e.Default) {
		return fmt.Errorf("%w: %s default %q is not one of %v", ErrInvalidContract, field, e.Default, e.Values)
	}
	for k, v := range e.Synonyms {
		if !e.Has(v) {
			return fmt.Errorf("%w: %s synonym %q maps to unknown label %q", ErrInvalidContract, field, k, v)
		}
	}
	return nil
}

// Has reports whether label is one of the canonical values.
func (e Enumeration) Has(label string) bool {
	for _, v := range e.Values {
		if v == label {
			return true
		}
	}
	return false
}

// RenderSystem renders the system instruction.
func (c *Contract) RenderSystem(data PromptData) (string, error) {
	return render(c.system, data)
}

// RenderUser renders the user prompt.
func (c *Contract) RenderUser(data PromptData) (string, error) {
	return render(c.user, data)
}

func render(t *template.Template, data PromptData) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: templates not compiled", ErrInvalidContract)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s instruction: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
