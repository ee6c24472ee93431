package server

import (
	"fmt"
	"net/http"
	"time"

	"todo-backend/internal/auth"
	"todo-backend/internal/config"
	"todo-backend/internal/database"
	"todo-backend/internal/repository"
	"todo-backend/internal/service"
)

type Server struct {
	cfg         *config.Config
	authService service.AuthService
	todoService service.TodoService
	tokens      *auth.TokenService
	errorLogs   repository.ErrorLogRepository
	db          database.Service
}

// NewServer wires the HTTP server with its dependencies.
func NewServer(
	cfg *config.Config,
	authService service.AuthService,
	todoService service.TodoService,
	tokens *auth.TokenService,
	errorLogs repository.ErrorLogRepository,
	dbService database.Service,
) *http.Server {
	appServer := &Server{
		cfg:         cfg,
		authService: authService,
		todoService: todoService,
		tokens:      tokens,
		errorLogs:   errorLogs,
		db:          dbService,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
