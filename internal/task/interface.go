package task

import "context"

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Task CRUD
	Create(ctx context.Context, input CreateInput) (CreateOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (DetailOutput, error)
	Update(ctx context.Context, input UpdateInput) (UpdateOutput, error)
	Delete(ctx context.Context, id string) error

	// Analyze transcribes when needed and extracts a draft without storing it.
	Analyze(ctx context.Context, input VoiceInput) (AnalyzeOutput, error)

	// CreateFromVoice extracts a draft and stores it as a new task.
	CreateFromVoice(ctx context.Context, input VoiceInput) (VoiceOutput, error)
}
