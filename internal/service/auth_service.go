package service

import (
	"context"
	"errors"
	"fmt"

	"harian/internal/config"
	"harian/internal/errs"
	"harian/internal/models"
	"harian/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, string, error)
	Login(ctx context.Context, identifier, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	ResolveToken(ctx context.Context, token string) (*models.User, error)
	ListUsers(ctx context.Context, callerRole string) ([]*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, string, error) {
	user, err := s.userRepo.CreateUser(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	// new user is logged in right away
	token, err := s.sessionRepo.CreateSession(ctx, user.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, identifier, password)
	if err != nil {
		// the caller must not learn whether the identifier exists
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrUnauthenticated) {
			return nil, "", fmt.Errorf("неверный email/никнейм или пароль: %w", errs.ErrUnauthenticated)
		}
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	token, err := s.sessionRepo.CreateSession(ctx, user.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// revoking an unknown token is not an error
	return s.sessionRepo.RevokeSession(ctx, token)
}

// ResolveToken превращает bearer-токен в пользователя: сессия, затем реестр
func (s *authService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessionRepo.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("пользователь сессии не найден: %w", errs.ErrUnauthenticated)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, callerRole string) ([]*models.User, error) {
	return s.userRepo.ListUsers(ctx, callerRole)
}
