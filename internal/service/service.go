package service

import (
	"harian/internal/config"
	"harian/internal/repository"
	"harian/internal/storage"
)

type Service struct {
	Auth AuthService
	Feed FeedService
	Todo TodoService
	User UserService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, rep.Session, cfg),
		Feed: NewFeedService(rep.Post, storage, cfg),
		Todo: NewTodoService(rep.Todo),
		User: NewUserService(rep.User, cfg),
	}
}
