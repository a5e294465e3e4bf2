package rdb

import (
	"fmt"

	"gorm.io/gorm"

	"voice-task-management/internal/task/repository"
	"voice-task-management/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New creates a gorm-backed Repository for the task domain.
func New(db *gorm.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("task/repository/rdb: db is required")
	}
	if l == nil {
		l = log.NewNop()
	}
	return &implRepository{db: db, l: l}
}

// dsn returns a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/rdb.%s", method)
}
