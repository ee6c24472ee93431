package repository

import (
	"context"

	"gorm.io/gorm"

	"todo-backend/internal/domain"
)

// TodoRepository defines the data operations for todos. Every lookup and
// mutation is scoped to an owning user id; a wrong id and a wrong owner
// produce the same result.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByOwner(ctx context.Context, userID string, offset, limit int) ([]domain.Todo, error)
	CountByOwner(ctx context.Context, userID string) (int64, error)
	CountCompletedByOwner(ctx context.Context, userID string) (int64, error)
	FindScoped(ctx context.Context, id, userID string) (*domain.Todo, error)
	Save(ctx context.Context, todo *domain.Todo) error
	DeleteScoped(ctx context.Context, id, userID string) (int64, error)
}

type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a GORM-backed todo repository.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// FindByOwner returns a page of the owner's todos, newest first.
func (r *gormTodoRepository) FindByOwner(ctx context.Context, userID string, offset, limit int) ([]domain.Todo, error) {
	var todos []domain.Todo
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

func (r *gormTodoRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *gormTodoRepository) CountCompletedByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// FindScoped fetches one todo by id, restricted to the owner. Returns
// gorm.ErrRecordNotFound both for missing ids and for other users' records.
func (r *gormTodoRepository) FindScoped(ctx context.Context, id, userID string) (*domain.Todo, error) {
	var todo domain.Todo
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo)
	if result.Error != nil {
		return nil, result.Error
	}
	return &todo, nil
}

func (r *gormTodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// DeleteScoped removes one todo by id and owner, reporting how many rows
// matched so callers can translate zero into a not-found.
func (r *gormTodoRepository) DeleteScoped(ctx context.Context, id, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Todo{})
	return result.RowsAffected, result.Error
}
