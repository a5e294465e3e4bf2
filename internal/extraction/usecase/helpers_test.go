package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"voice-task-management/internal/extraction/contract"
	"voice-task-management/pkg/datemath"
	"voice-task-management/pkg/llmprovider"
	pkgLog "voice-task-management/pkg/log"
)

// stubBackend answers every request with a fixed text after an optional delay.
type stubBackend struct {
	mu    sync.Mutex
	text  string
	err   error
	delay time.Duration
	calls []*llmprovider.Request
}

func (s *stubBackend) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.delay > 0 {
		// Ignores ctx on purpose to model a backend that answers late.
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llmprovider.Response{Text: s.text, ProviderName: "stub", Usage: &llmprovider.Usage{}}, nil
}

func (s *stubBackend) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// refTime is Friday 2023-10-27 09:00 UTC.
var refTime = time.Date(2023, 10, 27, 9, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, backend *stubBackend) *implUseCase {
	t.Helper()

	c, err := contract.Default()
	if err != nil {
		t.Fatalf("contract.Default() error = %v", err)
	}
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatal(err)
	}
	uc, err := New(pkgLog.NewNop(), backend, c, dates, time.Second)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return uc
}
