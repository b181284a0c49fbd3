package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"harian/cmd/app"
	"harian/internal/config"
	handlers "harian/internal/handler"
	"harian/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	_, services := app.App(cfg)

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	// login/register are throttled per IP
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)

	// setting up routes
	router.HandleFunc("/", handler.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.Handle("/api/auth/register", loginLimiter.Limit(http.HandlerFunc(handler.Register))).Methods(http.MethodPost)
	router.Handle("/api/auth/login", loginLimiter.Limit(http.HandlerFunc(handler.Login))).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/me", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/users", handler.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/profile", handler.UpdateProfile).Methods(http.MethodPut)

	// /bookmarked must come before the {id} routes
	router.HandleFunc("/api/posts/bookmarked", handler.GetBookmarked).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{id}/like", handler.ToggleLike).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/bookmark", handler.ToggleBookmark).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/comments", handler.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/image", handler.UploadImage).Methods(http.MethodPost)

	router.HandleFunc("/api/todos", handler.GetTodos).Methods(http.MethodGet)
	router.HandleFunc("/api/todos", handler.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/api/todos/{id}", handler.UpdateTodo).Methods(http.MethodPatch)
	router.HandleFunc("/api/todos/{id}", handler.DeleteTodo).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("Адрес: http://localhost%s/\n", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
