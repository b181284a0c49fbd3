package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"harian/internal/models"
	"harian/internal/repository"
)

type CreateTodoRequest struct {
	Title string `json:"title" validate:"required"`
}

func (h *Handlers) GetTodos(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	todos, err := h.TodoService.ListTodos(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string][]*models.Todo{"todos": todos}, http.StatusOK)
}

func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	todo, err := h.TodoService.CreateTodo(r.Context(), caller.UserID, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]*models.Todo{"todo": todo}, http.StatusCreated)
}

func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	todoID := mux.Vars(r)["id"]

	var req repository.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	todo, err := h.TodoService.UpdateTodo(r.Context(), caller.UserID, todoID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]*models.Todo{"todo": todo}, http.StatusOK)
}

func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	todoID := mux.Vars(r)["id"]

	if err := h.TodoService.DeleteTodo(r.Context(), caller.UserID, todoID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
