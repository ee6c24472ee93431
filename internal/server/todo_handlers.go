package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"todo-backend/internal/service"
)

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), identity.UserID, req)
	if err != nil {
		writeServiceError(w, err, "Todo not found", "Failed to create todo")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"todo":    todo,
	})
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	list, err := s.todoService.ListTodos(r.Context(), identity.UserID, page, limit)
	if err != nil {
		writeServiceError(w, err, "Todo not found", "Failed to retrieve todos")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"todos":      list.Todos,
		"pagination": list.Pagination,
		"stats":      list.Stats,
	})
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), identity.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err, "Todo not found", "Failed to update todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"todo":    todo,
	})
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Todo not found", "Failed to delete todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Todo deleted successfully",
	})
}

func (s *Server) toggleTodoHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	todo, err := s.todoService.ToggleTodo(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Todo not found", "Failed to toggle todo completion status")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"todo":    todo,
	})
}

// queryInt parses an integer query parameter, falling back on absent or
// unparsable values.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
