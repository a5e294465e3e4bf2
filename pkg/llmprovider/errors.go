package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"voice-task-management/pkg/gemini"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout indicates a provider request timed out
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited indicates rate limit exceeded
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrProviderBlocked indicates the provider refused to answer the prompt
	ErrProviderBlocked = errors.New("provider blocked the request")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// statusCoder is implemented by client API errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// classify wraps err with ErrProviderTimeout or ErrProviderRateLimited when
// it recognises the failure; the original error stays in the chain.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}
	if errors.Is(err, gemini.ErrBlocked) {
		return fmt.Errorf("%w: %w", ErrProviderBlocked, err)
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		switch sc.HTTPStatus() {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrProviderRateLimited, err)
		case http.StatusGatewayTimeout, http.StatusRequestTimeout:
			return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
		}
	}
	return err
}

// retryable reports whether calling the same provider again could succeed.
// Refusals and client errors other than 408/429 are final.
func retryable(err error) bool {
	if errors.Is(err, gemini.ErrBlocked) || errors.Is(err, ErrInvalidRequest) {
		return false
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatus()
		if status >= 400 && status < 500 {
			return status == http.StatusRequestTimeout || status == http.StatusTooManyRequests
		}
	}
	return true
}
