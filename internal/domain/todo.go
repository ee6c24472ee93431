package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority classifies how urgent a todo is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const (
	// MaxTitleLength bounds todo titles.
	MaxTitleLength = 100
	// MaxDescriptionLength bounds todo descriptions.
	MaxDescriptionLength = 500
)

// Todo is a single task owned by exactly one user. Every query against
// todos is scoped by UserID so owners can never see each other's records.
type Todo struct {
	ID          string   `gorm:"type:uuid;primaryKey"`
	Title       string   `gorm:"size:100;not null"`
	Description string   `gorm:"size:500"`
	Priority    Priority `gorm:"size:10;not null;default:low"`
	DueDate     *time.Time
	Completed   bool      `gorm:"not null;default:false"`
	UserID      string    `gorm:"type:uuid;not null;index:idx_todos_user_created,priority:1"`
	CreatedAt   time.Time `gorm:"index:idx_todos_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

// BeforeCreate assigns a UUID primary key when none was set.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
