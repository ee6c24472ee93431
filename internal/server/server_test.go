package server

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"todo-backend/internal/auth"
	"todo-backend/internal/config"
	"todo-backend/internal/domain"
	"todo-backend/internal/service"
)

// Stub collaborators so handler tests exercise only the HTTP mapping.

type stubAuthService struct {
	signupFn         func(context.Context, service.SignupRequest) (*service.UserResponse, string, error)
	loginFn          func(context.Context, service.LoginRequest) (*service.UserResponse, string, error)
	forgotPasswordFn func(context.Context, service.ForgotPasswordRequest) error
	resetPasswordFn  func(context.Context, service.ResetPasswordRequest) error
	currentUserFn    func(context.Context, string) (*service.UserResponse, error)
}

func (s *stubAuthService) Signup(ctx context.Context, req service.SignupRequest) (*service.UserResponse, string, error) {
	return s.signupFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.UserResponse, string, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, req service.ForgotPasswordRequest) error {
	return s.forgotPasswordFn(ctx, req)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, req service.ResetPasswordRequest) error {
	return s.resetPasswordFn(ctx, req)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*service.UserResponse, error) {
	return s.currentUserFn(ctx, userID)
}

type stubTodoService struct {
	createFn func(context.Context, string, service.CreateTodoRequest) (*service.TodoResponse, error)
	listFn   func(context.Context, string, int, int) (*service.TodoListResponse, error)
	updateFn func(context.Context, string, string, service.UpdateTodoRequest) (*service.TodoResponse, error)
	deleteFn func(context.Context, string, string) error
	toggleFn func(context.Context, string, string) (*service.TodoResponse, error)
}

func (s *stubTodoService) CreateTodo(ctx context.Context, userID string, req service.CreateTodoRequest) (*service.TodoResponse, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubTodoService) ListTodos(ctx context.Context, userID string, page, limit int) (*service.TodoListResponse, error) {
	return s.listFn(ctx, userID, page, limit)
}

func (s *stubTodoService) UpdateTodo(ctx context.Context, userID, id string, req service.UpdateTodoRequest) (*service.TodoResponse, error) {
	return s.updateFn(ctx, userID, id, req)
}

func (s *stubTodoService) DeleteTodo(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func (s *stubTodoService) ToggleTodo(ctx context.Context, userID, id string) (*service.TodoResponse, error) {
	return s.toggleFn(ctx, userID, id)
}

type stubDBService struct {
	health map[string]string
}

func (s *stubDBService) Health() map[string]string { return s.health }
func (s *stubDBService) Close() error              { return nil }
func (s *stubDBService) DB() *gorm.DB              { return nil }

type stubErrorLogRepo struct {
	mu      sync.Mutex
	entries []domain.ErrorLog
}

func (r *stubErrorLogRepo) Create(_ context.Context, entry *domain.ErrorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

const testUserID = "11111111-1111-1111-1111-111111111111"

func newTestServer(authSvc service.AuthService, todoSvc service.TodoService) (*Server, *stubErrorLogRepo) {
	cfg := &config.Config{
		Port:    8080,
		Env:     "development",
		Origins: []string{"http://localhost:5173"},
	}
	errorLogs := &stubErrorLogRepo{}
	return &Server{
		cfg:         cfg,
		authService: authSvc,
		todoService: todoSvc,
		tokens:      auth.NewTokenService("test-secret", time.Hour),
		errorLogs:   errorLogs,
		db:          &stubDBService{health: map[string]string{"status": "up", "message": "It's healthy"}},
	}, errorLogs
}
