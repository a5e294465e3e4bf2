package task

import (
	"time"

	"voice-task-management/internal/extraction"
	"voice-task-management/internal/model"
)

// --- UseCase Inputs ---

// CreateInput creates a task from explicit fields. Empty priority and
// status take the contract defaults; DueDate is YYYY-MM-DD or empty.
type CreateInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
}

// ListInput filters tasks. Non-empty fields are ANDed; Search matches
// title or description case-insensitively; DueDate selects one day.
type ListInput struct {
	Status   string
	Priority string
	Search   string
	DueDate  string
	Limit    int
	Offset   int
}

// UpdateInput is a partial update. Nil fields are left unchanged and an
// empty DueDate clears it.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *string
}

// VoiceInput carries either a transcript or raw audio. Utterance wins when
// both are set.
type VoiceInput struct {
	Utterance string
	Audio     []byte

	AudioEncoding   string
	SampleRateHertz int
	LanguageCode    string

	ReferenceTime time.Time
	Timeout       time.Duration
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Task model.Task
}

type ListOutput struct {
	Tasks  []model.Task
	Total  int
	Limit  int
	Offset int
}

type DetailOutput struct {
	Task model.Task
}

type UpdateOutput struct {
	Task model.Task
}

// AnalyzeOutput is an extracted draft that has not been stored.
type AnalyzeOutput struct {
	Transcript string
	Draft      extraction.TaskDraft
}

// VoiceOutput is a task created from an utterance or recording.
type VoiceOutput struct {
	Transcript string
	Draft      extraction.TaskDraft
	Task       model.Task
}
