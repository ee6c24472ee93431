package repository

import (
	"context"

	"gorm.io/gorm"

	"todo-backend/internal/domain"
)

// ErrorLogRepository persists server-side failure records.
type ErrorLogRepository interface {
	Create(ctx context.Context, entry *domain.ErrorLog) error
}

type gormErrorLogRepository struct {
	db *gorm.DB
}

// NewGormErrorLogRepository creates a GORM-backed error log repository.
func NewGormErrorLogRepository(db *gorm.DB) ErrorLogRepository {
	return &gormErrorLogRepository{db: db}
}

func (r *gormErrorLogRepository) Create(ctx context.Context, entry *domain.ErrorLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
