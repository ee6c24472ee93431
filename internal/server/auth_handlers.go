package server

import (
	"net/http"

	"todo-backend/internal/service"
)

// setSessionCookie installs the http-only session cookie. Production gets
// Secure + Strict; development stays on Lax so the SPA dev server works.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

// clearSessionCookie expires the session cookie with the same flags it was
// set with.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "User not found", "Signup failed")
		return
	}

	s.setSessionCookie(w, token)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "User not found", "Login failed")
		return
	}

	s.setSessionCookie(w, token)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

func (s *Server) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.authService.ForgotPassword(r.Context(), req); err != nil {
		writeServiceError(w, err, "User not found", "Failed to process forgot password request")
		return
	}

	// Identical response whether or not the account exists.
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "If an account with that email exists, a password reset link has been sent",
	})
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.authService.ResetPassword(r.Context(), req); err != nil {
		writeServiceError(w, err, "User not found", "Reset password failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully",
	})
}

func (s *Server) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := s.authService.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to retrieve user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
