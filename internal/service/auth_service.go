package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todo-backend/internal/auth"
	"todo-backend/internal/domain"
	"todo-backend/internal/mailer"
	"todo-backend/internal/repository"
)

const (
	minPasswordLength = 6
	resetTokenBytes   = 32
	resetTokenTTL     = time.Hour
)

// SignupRequest holds the data needed to register an account.
// ConfirmPassword is optional; when present it must match Password.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes a password reset using the emailed token.
type ResetPasswordRequest struct {
	ResetToken      string `json:"resetToken"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserResponse is the credential-free representation of a user returned
// by the API. Timestamps are only populated where the endpoint exposes them.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AuthService implements the signup/login/reset flows. Every method
// validates its input before touching the store.
type AuthService interface {
	// Signup registers a user and returns the created summary plus a
	// freshly issued session token.
	Signup(ctx context.Context, req SignupRequest) (*UserResponse, string, error)

	// Login verifies credentials and returns the user summary plus a
	// session token. Unknown email and wrong password fail identically.
	Login(ctx context.Context, req LoginRequest) (*UserResponse, string, error)

	// ForgotPassword starts a reset. It succeeds silently for unknown
	// emails so the endpoint cannot be used to enumerate accounts.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// CurrentUser re-fetches live account data by id.
	CurrentUser(ctx context.Context, userID string) (*UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	mail   mailer.Mailer
}

// NewAuthService wires the auth flows to their collaborators.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, mail mailer.Mailer) AuthService {
	return &authService{users: users, tokens: tokens, mail: mail}
}

// NormalizeEmail trims whitespace and lowercases an address, matching how
// emails are stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, string, error) {
	// Validation order matters: first failure wins.
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, "", validationError("Name, email, and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", validationError("Password must be at least 6 characters long")
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return nil, "", validationError("Passwords do not match")
	}

	email := NormalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the real guard; the lookup above only
		// narrows the window.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	// Best effort: a failed welcome email never fails the signup.
	if err := s.mail.SendWelcome(user.Email, user.Name); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	return &UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}, token, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*UserResponse, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", validationError("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return &UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}, token, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return validationError("Valid email is required")
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Indistinguishable from the success path.
			return nil
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)

	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("saving reset token: %w", err)
	}

	// The reset mail is the whole point of this operation, so a send
	// failure is surfaced, unlike the courtesy mails elsewhere.
	if err := s.mail.SendPasswordReset(user.Email, token); err != nil {
		log.Printf("Failed to send reset email to %s: %v", user.Email, err)
		return ErrMailSend
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.ResetToken == "" || req.Password == "" {
		return validationError("Reset token and new password are required")
	}
	if len(req.Password) < minPasswordLength {
		return validationError("Password must be at least 6 characters long")
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return validationError("Passwords do not match")
	}

	// Token match and expiry are checked in one query so an expired token
	// behaves exactly like a nonexistent one.
	user, err := s.users.FindByValidResetToken(ctx, req.ResetToken, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("looking up reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.Password = string(hash)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("saving new password: %w", err)
	}

	// The password change already succeeded; the confirmation mail must
	// not turn it into a failure.
	if err := s.mail.SendPasswordChanged(user.Email, user.Name); err != nil {
		log.Printf("Failed to send password changed email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}, nil
}
