package main

import (
	api "blog-backend/cmd/api"
	authdomain "blog-backend/internal/auth/domain"
	authRepo "blog-backend/internal/auth/repository"
	authUsecase "blog-backend/internal/auth/usecase"
	postdomain "blog-backend/internal/post/domain"
	postRepo "blog-backend/internal/post/repository"
	postUsecase "blog-backend/internal/post/usecase"
	"blog-backend/pkg/config"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &postdomain.Post{}); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	postRepository := postRepo.NewGormPostRepository(db)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	postUsecaseInstance := postUsecase.NewPostUsecase(postRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, postUsecaseInstance, cfg, log)

	log.Infof("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
