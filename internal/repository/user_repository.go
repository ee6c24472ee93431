package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"todo-backend/internal/domain"
)

// UserRepository defines the data operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByValidResetToken matches token existence and a strictly-future
	// expiry in a single query, so an expired-but-present token can never
	// be treated as valid.
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// Save writes all fields, including nil reset-token fields, which is how a
// consumed reset token gets cleared.
func (r *gormUserRepository) Save(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
