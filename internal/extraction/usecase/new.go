package usecase

import (
	"bytes"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/extraction/contract"
	"voice-task-management/pkg/datemath"
	pkgLog "voice-task-management/pkg/log"
)

var _ extraction.UseCase = (*implUseCase)(nil)

// DefaultTimeout bounds a backend call when neither the caller nor the
// configuration gives one.
const DefaultTimeout = 30 * time.Second

type implUseCase struct {
	l         pkgLog.Logger
	backend   extraction.Backend
	contract  *contract.Contract
	validator *validator
	splitter  *splitter
	dates     *datemath.Parser
	timeout   time.Duration
}

// New creates the extraction UseCase. All state built here is read-only
// afterwards, so the returned value may be shared across goroutines.
func New(
	l pkgLog.Logger,
	backend extraction.Backend,
	c *contract.Contract,
	dates *datemath.Parser,
	timeout time.Duration,
) (*implUseCase, error) {
	if backend == nil {
		return nil, fmt.Errorf("extraction: backend is required")
	}
	if c == nil {
		return nil, fmt.Errorf("extraction: contract is required")
	}
	if dates == nil {
		return nil, fmt.Errorf("extraction: date parser is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	sp, err := newSplitter(c.Splitter)
	if err != nil {
		return nil, err
	}

	return &implUseCase{
		l:         l,
		backend:   backend,
		contract:  c,
		validator: newValidator(schema, newVocabulary(c.Priority), newVocabulary(c.Status)),
		splitter:  sp,
		dates:     dates,
		timeout:   timeout,
	}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(contract.SchemaURL, bytes.NewReader(contract.Schema())); err != nil {
		return nil, fmt.Errorf("extraction: add candidate schema: %w", err)
	}
	schema, err := compiler.Compile(contract.SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("extraction: compile candidate schema: %w", err)
	}
	return schema, nil
}
