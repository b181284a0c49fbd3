package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"harian/internal/config"
	"harian/internal/models"
	"harian/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	FeedService service.FeedService
	TodoService service.TodoService
	UserService service.UserService
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		FeedService: service.Feed,
		TodoService: service.Todo,
		UserService: service.User,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

// userFromContext собирает пользователя из данных, положенных в контекст auth-middleware
func userFromContext(r *http.Request) (*models.User, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		return nil, false
	}

	name, _ := r.Context().Value("name").(string)
	nickname, _ := r.Context().Value("nickname").(string)
	role, _ := r.Context().Value("role").(string)
	email, _ := r.Context().Value("email").(string)

	return &models.User{
		UserID:   userID,
		Email:    email,
		Name:     name,
		Nickname: nickname,
		Role:     role,
	}, true
}

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "harian api"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
