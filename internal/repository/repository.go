package repository

import (
	"context"
	"time"

	"harian/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	VerifyPassword(ctx context.Context, identifier, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, callerRole string) ([]*models.User, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, userID string) (string, error)
	ResolveSession(ctx context.Context, token string) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

type PostRepository interface {
	Create(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, authorID string, page, limit int) ([]*models.Post, int, error)
	Delete(ctx context.Context, postID, callerID, callerRole string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
	ToggleBookmark(ctx context.Context, postID, userID string) (bool, int, error)
	AddComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	ListBookmarked(ctx context.Context, userID string) ([]*models.Post, error)
	SetImage(ctx context.Context, postID, callerID, callerRole, imageURL string) error
}

type TodoRepository interface {
	List(ctx context.Context, ownerID string) ([]*models.Todo, error)
	Create(ctx context.Context, ownerID, title string) (*models.Todo, error)
	Update(ctx context.Context, ownerID, todoID string, req UpdateTodoRequest) (*models.Todo, error)
	Delete(ctx context.Context, ownerID, todoID string) error
}

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Post    PostRepository
	Todo    TodoRepository
}

func NewRepository(sessionTTL time.Duration) *Repository {
	return &Repository{
		User:    NewUserRepository(),
		Session: NewSessionRepository(sessionTTL),
		Post:    NewPostRepository(),
		Todo:    NewTodoRepository(),
	}
}
