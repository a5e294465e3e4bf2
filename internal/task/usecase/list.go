package usecase

import (
	"context"

	"voice-task-management/internal/task"
	repo "voice-task-management/internal/task/repository"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// List returns a filtered, paginated list of tasks.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	opt := repo.ListTasksOptions{
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	if input.Status != "" {
		status, ok := canonical(uc.contract.Status, input.Status)
		if !ok {
			return task.ListOutput{}, task.ErrInvalidStatus
		}
		opt.Status = status
	}
	if input.Priority != "" {
		priority, ok := canonical(uc.contract.Priority, input.Priority)
		if !ok {
			return task.ListOutput{}, task.ErrInvalidPriority
		}
		opt.Priority = priority
	}
	due, ok := parseDueDate(input.DueDate)
	if !ok {
		return task.ListOutput{}, task.ErrInvalidDueDate
	}
	opt.DueOn = due

	if opt.Limit <= 0 {
		opt.Limit = defaultLimit
	}
	if opt.Limit > maxLimit {
		opt.Limit = maxLimit
	}
	if opt.Offset < 0 {
		opt.Offset = 0
	}

	tasks, total, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, err
	}

	return task.ListOutput{
		Tasks:  tasks,
		Total:  total,
		Limit:  opt.Limit,
		Offset: opt.Offset,
	}, nil
}
