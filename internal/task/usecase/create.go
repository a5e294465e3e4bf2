package usecase

import (
	"context"
	"strings"

	"voice-task-management/internal/task"
	repo "voice-task-management/internal/task/repository"
)

// Create validates explicit fields against the contract and stores a task.
func (uc *implUseCase) Create(ctx context.Context, input task.CreateInput) (task.CreateOutput, error) {
	opt, err := uc.createOptions(input)
	if err != nil {
		return task.CreateOutput{}, err
	}

	t, err := uc.repo.CreateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return task.CreateOutput{}, err
	}
	return task.CreateOutput{Task: t}, nil
}

func (uc *implUseCase) createOptions(input task.CreateInput) (repo.CreateTaskOptions, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return repo.CreateTaskOptions{}, task.ErrEmptyTitle
	}
	priority, ok := canonical(uc.contract.Priority, input.Priority)
	if !ok {
		return repo.CreateTaskOptions{}, task.ErrInvalidPriority
	}
	status, ok := canonical(uc.contract.Status, input.Status)
	if !ok {
		return repo.CreateTaskOptions{}, task.ErrInvalidStatus
	}
	due, ok := parseDueDate(input.DueDate)
	if !ok {
		return repo.CreateTaskOptions{}, task.ErrInvalidDueDate
	}

	return repo.CreateTaskOptions{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      status,
		DueDate:     due,
	}, nil
}
