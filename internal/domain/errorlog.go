package domain

import "time"

// ErrorLog is a persisted record of a server-side failure, written by the
// panic-recovery middleware. Request logging never lands here, only errors.
type ErrorLog struct {
	ID        uint   `gorm:"primaryKey"`
	Level     string `gorm:"size:10;not null"`
	Message   string `gorm:"not null"`
	Stack     *string
	UserID    *string `gorm:"type:uuid"`
	CreatedAt time.Time
}
