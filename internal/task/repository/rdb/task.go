package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voice-task-management/internal/model"
	repo "voice-task-management/internal/task/repository"
)

// CreateTask inserts a new Task with a generated ID.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	t := model.Task{
		ID:          uuid.NewString(),
		Title:       opt.Title,
		Description: opt.Description,
		Priority:    opt.Priority,
		Status:      opt.Status,
		DueDate:     opt.DueDate,
		Utterance:   opt.Utterance,
	}
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}
	return t, nil
}

// GetOneTask returns a zero-value Task when the ID does not exist.
func (r *implRepository) GetOneTask(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTask"), err)
		return model.Task{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns one page of matching tasks, newest first, and the
// total number of matches.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, int, error) {
	q := r.filter(r.db.WithContext(ctx).Model(&model.Task{}), opt)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListTasks"), err)
		return nil, 0, repo.ErrFailedToList
	}

	q = q.Order("created_at DESC").Order("id ASC")
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}
	if opt.Offset > 0 {
		q = q.Offset(opt.Offset)
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return tasks, int(total), nil
}

// UpdateTask overwrites the mutable fields of an existing Task. A missing
// ID yields a zero-value Task and no error.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", opt.ID).Updates(map[string]any{
		"title":       opt.Title,
		"description": opt.Description,
		"priority":    opt.Priority,
		"status":      opt.Status,
		"due_date":    opt.DueDate,
	})
	if res.Error != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), res.Error)
		return model.Task{}, repo.ErrFailedToUpdate
	}
	if res.RowsAffected == 0 {
		return model.Task{}, nil
	}
	return r.GetOneTask(ctx, opt.ID)
}

// DeleteTask removes a Task by ID. Deleting a missing ID is not an error.
func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
