package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-backend/internal/domain"
	"todo-backend/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// CreateTodoRequest holds the data needed to create a new todo.
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTodoRequest holds a partial update. Pointers distinguish a field
// being omitted from one being set to its zero value.
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// TodoResponse is the representation of a todo returned by the service.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	UserID      string     `json:"userId"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// TodoStats aggregates the caller's todos.
type TodoStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// TodoListResponse is the full payload of a list call.
type TodoListResponse struct {
	Todos      []TodoResponse `json:"todos"`
	Pagination Pagination     `json:"pagination"`
	Stats      TodoStats      `json:"stats"`
}

// TodoService contains the business logic for managing todos. Every
// operation is scoped to the calling user's identity; ids belonging to
// other users behave exactly like ids that do not exist.
type TodoService interface {
	CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error)
	ListTodos(ctx context.Context, userID string, page, limit int) (*TodoListResponse, error)
	UpdateTodo(ctx context.Context, userID, id string, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, userID, id string) error
	ToggleTodo(ctx context.Context, userID, id string) (*TodoResponse, error)
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a todo service backed by the given repository.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("Title is required")
	}
	if len(title) > domain.MaxTitleLength {
		return nil, validationError("Title cannot be more than 100 characters")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) > domain.MaxDescriptionLength {
		return nil, validationError("Description cannot be more than 500 characters")
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityLow
	} else if !priority.Valid() {
		return nil, validationError("Priority must be one of low, medium, or high")
	}

	todo := &domain.Todo{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Completed:   false,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	return toTodoResponse(todo), nil
}

func (s *todoService) ListTodos(ctx context.Context, userID string, page, limit int) (*TodoListResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	todos, err := s.repo.FindByOwner(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	total, err := s.repo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting todos: %w", err)
	}
	completed, err := s.repo.CountCompletedByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting completed todos: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, *toTodoResponse(&todos[i]))
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return &TodoListResponse{
		Todos: responses,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
		Stats: TodoStats{
			Total:     total,
			Completed: completed,
			Pending:   total - completed,
		},
	}, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, userID, id string, req UpdateTodoRequest) (*TodoResponse, error) {
	todo, err := s.repo.FindScoped(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching todo for update: %w", err)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, validationError("Title is required")
		}
		if len(title) > domain.MaxTitleLength {
			return nil, validationError("Title cannot be more than 100 characters")
		}
		todo.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if len(description) > domain.MaxDescriptionLength {
			return nil, validationError("Description cannot be more than 500 characters")
		}
		todo.Description = description
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, validationError("Priority must be one of low, medium, or high")
		}
		todo.Priority = priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("saving todo: %w", err)
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, id string) error {
	rows, err := s.repo.DeleteScoped(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *todoService) ToggleTodo(ctx context.Context, userID, id string) (*TodoResponse, error) {
	todo, err := s.repo.FindScoped(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching todo for toggle: %w", err)
	}

	todo.Completed = !todo.Completed
	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("saving toggled todo: %w", err)
	}
	return toTodoResponse(todo), nil
}

func toTodoResponse(todo *domain.Todo) *TodoResponse {
	return &TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    string(todo.Priority),
		DueDate:     todo.DueDate,
		Completed:   todo.Completed,
		UserID:      todo.UserID,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}
