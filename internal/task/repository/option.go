package repository

import "time"

// CreateTaskOptions holds parameters for inserting a new Task.
type CreateTaskOptions struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
	Utterance   string
}

// ListTasksOptions holds filter and pagination parameters for listing Tasks.
type ListTasksOptions struct {
	Status   string
	Priority string
	Search   string
	// DueOn selects tasks due on that calendar day.
	DueOn  *time.Time
	Limit  int
	Offset int
}

// UpdateTaskOptions holds the full new state of an existing Task.
type UpdateTaskOptions struct {
	ID          string
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
}
