package service

import (
	"context"

	"harian/internal/models"
	"harian/internal/repository"
)

type TodoService interface {
	ListTodos(ctx context.Context, ownerID string) ([]*models.Todo, error)
	CreateTodo(ctx context.Context, ownerID, title string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, ownerID, todoID string, req repository.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, ownerID, todoID string) error
}

type todoService struct {
	todoRepo repository.TodoRepository
}

func NewTodoService(todoRepo repository.TodoRepository) TodoService {
	return &todoService{todoRepo: todoRepo}
}

func (s *todoService) ListTodos(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return s.todoRepo.List(ctx, ownerID)
}

func (s *todoService) CreateTodo(ctx context.Context, ownerID, title string) (*models.Todo, error) {
	return s.todoRepo.Create(ctx, ownerID, title)
}

func (s *todoService) UpdateTodo(ctx context.Context, ownerID, todoID string, req repository.UpdateTodoRequest) (*models.Todo, error) {
	return s.todoRepo.Update(ctx, ownerID, todoID, req)
}

func (s *todoService) DeleteTodo(ctx context.Context, ownerID, todoID string) error {
	return s.todoRepo.Delete(ctx, ownerID, todoID)
}
