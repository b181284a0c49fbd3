package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"harian/internal/errs"
	"harian/internal/models"
)

type todoRepository struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
}

type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func NewTodoRepository() TodoRepository {
	return &todoRepository{
		todos: make(map[string]*models.Todo),
	}
}

func (r *todoRepository) List(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*models.Todo, 0)
	for _, todo := range r.todos {
		if todo.OwnerID == ownerID {
			todoCopy := *todo
			todos = append(todos, &todoCopy)
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})

	return todos, nil
}

func (r *todoRepository) Create(ctx context.Context, ownerID, title string) (*models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("название задачи не может быть пустым: %w", errs.ErrValidation)
	}

	todo := &models.Todo{
		TodoID:    uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.todos[todo.TodoID] = todo
	r.mu.Unlock()

	todoCopy := *todo
	return &todoCopy, nil
}

func (r *todoRepository) Update(ctx context.Context, ownerID, todoID string, req UpdateTodoRequest) (*models.Todo, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("название задачи не может быть пустым: %w", errs.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[todoID]
	if !ok || todo.OwnerID != ownerID {
		return nil, fmt.Errorf("задача с ID %s: %w", todoID, errs.ErrNotFound)
	}

	if req.Title != nil {
		todo.Title = strings.TrimSpace(*req.Title)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	todoCopy := *todo
	return &todoCopy, nil
}

func (r *todoRepository) Delete(ctx context.Context, ownerID, todoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[todoID]
	if !ok || todo.OwnerID != ownerID {
		return fmt.Errorf("задача с ID %s: %w", todoID, errs.ErrNotFound)
	}

	delete(r.todos, todoID)
	return nil
}
