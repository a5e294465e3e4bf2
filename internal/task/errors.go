package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDueDate  = errors.New("dueDate must be YYYY-MM-DD")
	ErrNoInput         = errors.New("utterance or audio is required")
	ErrSpeechDisabled  = errors.New("audio input is not configured")
)
