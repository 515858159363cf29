package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     *time.Time
	Priority    string `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high')"`
	Status      string `gorm:"not null;default:'todo';check:status IN ('todo', 'in-progress', 'done')"`
	Position    int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	List List `gorm:"foreignKey:ListID"`
}

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task statuses
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}
