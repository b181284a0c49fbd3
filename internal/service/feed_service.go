package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"harian/internal/config"
	"harian/internal/models"
	"harian/internal/repository"
	"harian/internal/storage"
)

type FeedService interface {
	CreatePost(ctx context.Context, author *models.User, content, imageURL string) (*models.Post, error)
	GetPosts(ctx context.Context, authorID string, page, limit int) ([]*models.Post, int, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID, callerID, callerRole string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
	ToggleBookmark(ctx context.Context, postID, userID string) (bool, int, error)
	AddComment(ctx context.Context, postID string, author *models.User, content string) (*models.Comment, error)
	Bookmarked(ctx context.Context, userID string) ([]*models.Post, error)
	AttachImage(ctx context.Context, postID string, caller *models.User, fileName string, file io.Reader, size int64) (string, error)
}

type feedService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewFeedService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) FeedService {
	return &feedService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *feedService) CreatePost(ctx context.Context, author *models.User, content, imageURL string) (*models.Post, error) {
	req := repository.CreatePostRequest{
		AuthorID:       author.UserID,
		AuthorName:     author.Name,
		AuthorNickname: author.Nickname,
		AuthorRole:     author.Role,
		Content:        content,
		ImageURL:       imageURL,
	}

	post, err := s.postRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (s *feedService) GetPosts(ctx context.Context, authorID string, page, limit int) ([]*models.Post, int, error) {
	return s.postRepo.List(ctx, authorID, page, limit)
}

func (s *feedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *feedService) DeletePost(ctx context.Context, postID, callerID, callerRole string) error {
	return s.postRepo.Delete(ctx, postID, callerID, callerRole)
}

func (s *feedService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	return s.postRepo.ToggleLike(ctx, postID, userID)
}

func (s *feedService) ToggleBookmark(ctx context.Context, postID, userID string) (bool, int, error) {
	return s.postRepo.ToggleBookmark(ctx, postID, userID)
}

func (s *feedService) AddComment(ctx context.Context, postID string, author *models.User, content string) (*models.Comment, error) {
	req := repository.CreateCommentRequest{
		PostID:         postID,
		AuthorID:       author.UserID,
		AuthorName:     author.Name,
		AuthorNickname: author.Nickname,
		Content:        content,
	}

	return s.postRepo.AddComment(ctx, req)
}

func (s *feedService) Bookmarked(ctx context.Context, userID string) ([]*models.Post, error) {
	return s.postRepo.ListBookmarked(ctx, userID)
}

func (s *feedService) AttachImage(ctx context.Context, postID string, caller *models.User, fileName string, file io.Reader, size int64) (string, error) {
	objectName, imageURL, err := s.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
	}

	err = s.postRepo.SetImage(ctx, postID, caller.UserID, caller.Role, imageURL)
	if err != nil {
		// the post rejected the image, do not leave the object behind
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить из MinIO: %v", delErr)
		}
		return "", err
	}

	return imageURL, nil
}
