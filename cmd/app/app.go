package app

import (
	"context"
	"log"

	"harian/internal/config"
	"harian/internal/repository"
	"harian/internal/service"
	"harian/internal/storage"
)

func App(cfg *config.Config) (*repository.Repository, *service.Service) {
	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(cfg.SessionDuration)

	// initial accounts (admin, demo data)
	if err := Seed(context.Background(), repo, cfg); err != nil {
		log.Fatalf("Не удалось наполнить хранилище: %v", err)
	}

	services := service.NewService(repo, cfg, minioClient)

	return repo, services
}
