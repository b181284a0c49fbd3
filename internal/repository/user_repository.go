package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"harian/internal/errs"
	"harian/internal/models"
)

type userRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	byEmail    map[string]string // normalized email -> userID
	byNickname map[string]string // normalized nickname -> userID
}

type CreateUserRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Nickname        string `json:"nickname"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	// Role заполняется только при начальном наполнении, клиенты её не задают
	Role string `json:"-"`
}

type UpdateProfileRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

func NewUserRepository() UserRepository {
	return &userRepository{
		byID:       make(map[string]*models.User),
		byEmail:    make(map[string]string),
		byNickname: make(map[string]string),
	}
}

// normalizeKey приводит email/nickname к единому виду для поиска
func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (r *userRepository) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	// field verification
	if req.Email == "" || req.Name == "" || req.Nickname == "" || req.Password == "" {
		return nil, fmt.Errorf("все поля обязательны: %w", errs.ErrValidation)
	}
	if utf8.RuneCountInString(req.Nickname) < 3 {
		return nil, fmt.Errorf("никнейм должен быть не менее 3 символов: %w", errs.ErrValidation)
	}
	if utf8.RuneCountInString(req.Password) < 6 {
		return nil, fmt.Errorf("пароль должен быть не менее 6 символов: %w", errs.ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("пароли не совпадают: %w", errs.ErrValidation)
	}

	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        normalizeKey(req.Email),
		Name:         req.Name,
		Nickname:     req.Nickname,
		Role:         role,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	emailKey := normalizeKey(req.Email)
	nicknameKey := normalizeKey(req.Nickname)

	// the uniqueness check and the insert are one critical section,
	// otherwise two concurrent registrations could both pass the check
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[emailKey]; exists {
		return nil, fmt.Errorf("пользователь с email %s уже существует: %w", req.Email, errs.ErrConflict)
	}
	if _, exists := r.byNickname[nicknameKey]; exists {
		return nil, fmt.Errorf("никнейм %s уже занят: %w", req.Nickname, errs.ErrConflict)
	}

	r.byID[user.UserID] = user
	r.byEmail[emailKey] = user.UserID
	r.byNickname[nicknameKey] = user.UserID

	userCopy := *user
	return &userCopy, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("пользователь с ID %s: %w", userID, errs.ErrNotFound)
	}

	userCopy := *user
	return &userCopy, nil
}

// GetUserByIdentifier ищет пользователя сначала по email, затем по никнейму
func (r *userRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	key := normalizeKey(identifier)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if userID, ok := r.byEmail[key]; ok {
		userCopy := *r.byID[userID]
		return &userCopy, nil
	}
	if userID, ok := r.byNickname[key]; ok {
		userCopy := *r.byID[userID]
		return &userCopy, nil
	}

	return nil, fmt.Errorf("пользователь %s: %w", identifier, errs.ErrNotFound)
}

func (r *userRepository) VerifyPassword(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := r.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль: %w", errs.ErrUnauthenticated)
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	if req.Name == "" || req.Nickname == "" {
		return nil, fmt.Errorf("имя и никнейм обязательны: %w", errs.ErrValidation)
	}
	if utf8.RuneCountInString(req.Nickname) < 3 {
		return nil, fmt.Errorf("никнейм должен быть не менее 3 символов: %w", errs.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[req.UserID]
	if !ok {
		return nil, fmt.Errorf("пользователь с ID %s: %w", req.UserID, errs.ErrNotFound)
	}

	newKey := normalizeKey(req.Nickname)
	oldKey := normalizeKey(user.Nickname)

	if newKey != oldKey {
		if _, exists := r.byNickname[newKey]; exists {
			return nil, fmt.Errorf("никнейм %s уже занят: %w", req.Nickname, errs.ErrConflict)
		}
		delete(r.byNickname, oldKey)
		r.byNickname[newKey] = user.UserID
	}

	user.Name = req.Name
	user.Nickname = req.Nickname

	userCopy := *user
	return &userCopy, nil
}

// ListUsers возвращает всех пользователей, доступно только администратору
func (r *userRepository) ListUsers(ctx context.Context, callerRole string) ([]*models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, fmt.Errorf("требуется роль администратора: %w", errs.ErrForbidden)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.byID))
	for _, user := range r.byID {
		userCopy := *user
		userCopy.PasswordHash = ""
		users = append(users, &userCopy)
	}

	return users, nil
}
