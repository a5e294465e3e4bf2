package gemini

import (
	"context"
	"errors"
)

// ErrBlocked is returned when Gemini refuses to answer: the prompt was
// blocked or the only candidate stopped for a safety reason with no text.
var ErrBlocked = errors.New("gemini: response blocked")

// IGemini generates single-shot completions. Implementations are safe for
// concurrent use.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New validates cfg and returns a client for the generateContent endpoint.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
