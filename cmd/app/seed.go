package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"harian/internal/config"
	"harian/internal/errs"
	"harian/internal/models"
	"harian/internal/repository"
)

// Seed наполняет хранилище стартовыми данными: учётка администратора и,
// по флагу, демо-пользователь с примерами постов
func Seed(ctx context.Context, repo *repository.Repository, cfg *config.Config) error {
	admin, err := seedAccount(ctx, repo, repository.CreateUserRequest{
		Email:           cfg.AdminEmail,
		Name:            "Administrator",
		Nickname:        "Admin",
		Password:        cfg.AdminPassword,
		ConfirmPassword: cfg.AdminPassword,
		Role:            models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	if admin != nil {
		log.Printf("Создан администратор: %s", admin.Email)
	}

	if !cfg.SeedDemoData {
		return nil
	}

	demo, err := seedAccount(ctx, repo, repository.CreateUserRequest{
		Email:           "user@harian.dev",
		Name:            "Demo User",
		Nickname:        "DemoUser",
		Password:        "user123",
		ConfirmPassword: "user123",
	})
	if err != nil {
		return err
	}
	if admin == nil || demo == nil {
		// the accounts already existed, the sample posts did too
		return nil
	}

	return seedSamplePosts(ctx, repo, admin, demo)
}

// seedAccount создаёт пользователя, пропуская уже существующих
func seedAccount(ctx context.Context, repo *repository.Repository, req repository.CreateUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, nil
	}

	user, err := repo.User.CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при наполнении хранилища: %w", err)
	}

	return user, nil
}

func seedSamplePosts(ctx context.Context, repo *repository.Repository, admin, demo *models.User) error {
	samples := []struct {
		author  *models.User
		content string
	}{
		{admin, "Selamat datang di Harian! Platform sosial media interaktif dengan fitur todo list terintegrasi. Jangan lupa explore semua fitur yang tersedia!"},
		{demo, "Hari ini produktif banget! Sudah selesaikan 5 task dari todo list. #productivity #coding"},
		{admin, "Tips: Gunakan fitur bookmark untuk menyimpan post yang menarik dan todo list untuk tracking progress harian kalian!"},
	}

	var first *models.Post
	for _, sample := range samples {
		post, err := repo.Post.Create(ctx, repository.CreatePostRequest{
			AuthorID:       sample.author.UserID,
			AuthorName:     sample.author.Name,
			AuthorNickname: sample.author.Nickname,
			AuthorRole:     sample.author.Role,
			Content:        sample.content,
		})
		if err != nil {
			return fmt.Errorf("ошибка при создании демо-поста: %w", err)
		}
		if first == nil {
			first = post
		}
	}

	// Minimal activity on the welcome post
	if _, _, err := repo.Post.ToggleLike(ctx, first.PostID, demo.UserID); err != nil {
		return err
	}
	_, err := repo.Post.AddComment(ctx, repository.CreateCommentRequest{
		PostID:         first.PostID,
		AuthorID:       demo.UserID,
		AuthorName:     demo.Name,
		AuthorNickname: demo.Nickname,
		Content:        "Keren banget!",
	})
	if err != nil {
		return err
	}

	log.Printf("Демо-данные загружены: %d постов", len(samples))
	return nil
}
