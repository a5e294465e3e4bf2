package rdb

import (
	"strings"
	"time"

	"gorm.io/gorm"

	repo "voice-task-management/internal/task/repository"
)

// filter applies every non-empty option as an AND condition.
func (r *implRepository) filter(q *gorm.DB, opt repo.ListTasksOptions) *gorm.DB {
	if opt.Status != "" {
		q = q.Where("status = ?", opt.Status)
	}
	if opt.Priority != "" {
		q = q.Where("priority = ?", opt.Priority)
	}
	if s := strings.TrimSpace(opt.Search); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", like, like)
	}
	if opt.DueOn != nil {
		start := time.Date(opt.DueOn.Year(), opt.DueOn.Month(), opt.DueOn.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 1))
	}
	return q
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
