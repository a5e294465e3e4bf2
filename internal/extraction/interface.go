package extraction

import (
	"context"

	"voice-task-management/pkg/llmprovider"
)

// UseCase turns a free-form utterance into a TaskDraft.
// Implementations are safe for concurrent use.
type UseCase interface {
	Extract(ctx context.Context, input ExtractInput) (TaskDraft, error)
}

// Backend is the untrusted text-generation service. llmprovider.Manager
// satisfies it.
type Backend interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
