package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"todo-backend/internal/domain"
)

// Identity is the authenticated caller attached to the request context by
// the session middleware.
type Identity struct {
	UserID string
	Email  string
}

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// sessionCookieName is the cookie carrying the session token.
const sessionCookieName = "token"

// requireSession locates a session token (cookie first, then bearer
// header), validates it, and attaches the caller's identity to the request
// context. Malformed and expired tokens get the same response so clients
// learn nothing beyond "log in again".
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(sessionCookieName); err == nil {
			token = c.Value
		}
		if token == "" {
			if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := s.tokens.Validate(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		identity := Identity{UserID: claims.UserID, Email: claims.Email}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFrom returns the authenticated identity set by requireSession.
func identityFrom(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	return identity, ok
}

// recoverAndLog replaces the stock recoverer: a panic is persisted as an
// error record before the client gets a generic 500.
func (s *Server) recoverAndLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				stack := string(debug.Stack())
				entry := &domain.ErrorLog{
					Level:   "error",
					Message: fmt.Sprint(rec),
					Stack:   &stack,
				}
				if identity, ok := identityFrom(r); ok {
					userID := identity.UserID
					entry.UserID = &userID
				}
				// Best effort; the response must go out regardless.
				_ = s.errorLogs.Create(r.Context(), entry)

				respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
