package model

import "time"

// Task is a persisted task. DueDate holds midnight UTC of the due day.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text"`
	Priority    string     `gorm:"size:32;index"`
	Status      string     `gorm:"size:32;index"`
	DueDate     *time.Time `gorm:"index"`
	// Utterance is the transcript the task was extracted from, if any.
	Utterance string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Task) TableName() string {
	return "tasks"
}
