package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Email is stored lowercase and unique.
// Password always holds a bcrypt hash, never plaintext. The reset fields
// are only set while a password reset is pending and are cleared again on
// a successful reset.
type User struct {
	ID               string  `gorm:"type:uuid;primaryKey"`
	Name             string  `gorm:"size:100;not null"`
	Email            string  `gorm:"size:255;uniqueIndex;not null"`
	Password         string  `gorm:"not null"`
	ResetToken       *string `gorm:"index"`
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BeforeCreate assigns a UUID primary key when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
