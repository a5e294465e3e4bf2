package usecase

import (
	"context"
	"strings"

	"voice-task-management/internal/task"
	repo "voice-task-management/internal/task/repository"
)

// Detail retrieves a single task by ID.
func (uc *implUseCase) Detail(ctx context.Context, id string) (task.DetailOutput, error) {
	t, err := uc.repo.GetOneTask(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetOneTask: %v", err)
		return task.DetailOutput{}, err
	}
	if t.ID == "" {
		return task.DetailOutput{}, task.ErrTaskNotFound
	}
	return task.DetailOutput{Task: t}, nil
}

// Update applies a partial update. Provided fields are validated the same
// way Create validates them.
func (uc *implUseCase) Update(ctx context.Context, input task.UpdateInput) (task.UpdateOutput, error) {
	existing, err := uc.repo.GetOneTask(ctx, input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update GetOneTask: %v", err)
		return task.UpdateOutput{}, err
	}
	if existing.ID == "" {
		return task.UpdateOutput{}, task.ErrTaskNotFound
	}

	opt := repo.UpdateTaskOptions{
		ID:          existing.ID,
		Title:       strings.TrimSpace(coalesce(input.Title, existing.Title)),
		Description: strings.TrimSpace(coalesce(input.Description, existing.Description)),
		Priority:    existing.Priority,
		Status:      existing.Status,
		DueDate:     existing.DueDate,
	}
	if opt.Title == "" {
		return task.UpdateOutput{}, task.ErrEmptyTitle
	}
	if input.Priority != nil {
		p, ok := canonical(uc.contract.Priority, *input.Priority)
		if !ok {
			return task.UpdateOutput{}, task.ErrInvalidPriority
		}
		opt.Priority = p
	}
	if input.Status != nil {
		s, ok := canonical(uc.contract.Status, *input.Status)
		if !ok {
			return task.UpdateOutput{}, task.ErrInvalidStatus
		}
		opt.Status = s
	}
	if input.DueDate != nil {
		due, ok := parseDueDate(*input.DueDate)
		if !ok {
			return task.UpdateOutput{}, task.ErrInvalidDueDate
		}
		opt.DueDate = due
	}

	updated, err := uc.repo.UpdateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		return task.UpdateOutput{}, err
	}
	if updated.ID == "" {
		return task.UpdateOutput{}, task.ErrTaskNotFound
	}
	return task.UpdateOutput{Task: updated}, nil
}

// Delete removes a task by ID after confirming it exists.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetOneTask(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete GetOneTask: %v", err)
		return err
	}
	if existing.ID == "" {
		return task.ErrTaskNotFound
	}

	if err := uc.repo.DeleteTask(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteTask: %v", err)
		return err
	}
	return nil
}
