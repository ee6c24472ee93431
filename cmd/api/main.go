package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todo-backend/internal/auth"
	"todo-backend/internal/config"
	"todo-backend/internal/database"
	"todo-backend/internal/domain"
	"todo-backend/internal/mailer"
	"todo-backend/internal/repository"
	"todo-backend/internal/server"
	"todo-backend/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// Give in-flight requests 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		log.Println("Closing database connection pool...")
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		} else {
			log.Println("Database connection pool closed.")
		}
	}

	log.Println("Server exiting")
	done <- true
}

func main() {
	// Configuration: missing required values are startup-fatal.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dbService, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	gormDB := dbService.DB()

	log.Println("Running database auto-migration...")
	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Todo{}, &domain.ErrorLog{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}
	log.Println("Database auto-migration complete.")

	// Repositories
	userRepo := repository.NewGormUserRepository(gormDB)
	todoRepo := repository.NewGormTodoRepository(gormDB)
	errorLogRepo := repository.NewGormErrorLogRepository(gormDB)

	// Collaborators
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	smtpMailer := mailer.NewSMTPMailer(cfg)

	// Services
	authService := service.NewAuthService(userRepo, tokens, smtpMailer)
	todoService := service.NewTodoService(todoRepo)

	chiServer := server.NewServer(cfg, authService, todoService, tokens, errorLogRepo, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(chiServer, dbService, done)

	log.Printf("Starting server on %s", chiServer.Addr)
	err = chiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
