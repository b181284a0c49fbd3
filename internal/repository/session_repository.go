package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"harian/internal/errs"
	"harian/internal/models"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
}

func NewSessionRepository(ttl time.Duration) SessionRepository {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionRepository{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
	}
}

// generateToken создает криптостойкий токен сессии (256 бит)
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (r *sessionRepository) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("не указан пользователь сессии: %w", errs.ErrValidation)
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("ошибка генерации токена: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(r.ttl),
	}

	r.mu.Lock()
	r.sessions[token] = session
	r.mu.Unlock()

	return token, nil
}

// ResolveSession проверяет токен; просроченная сессия удаляется при обращении
func (r *sessionRepository) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("токен не передан: %w", errs.ErrUnauthenticated)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return "", fmt.Errorf("недействительный токен: %w", errs.ErrUnauthenticated)
	}

	if time.Now().After(session.ExpiresAt) {
		// lazy purge
		delete(r.sessions, token)
		return "", fmt.Errorf("токен истек: %w", errs.ErrSessionExpired)
	}

	return session.UserID, nil
}

func (r *sessionRepository) RevokeSession(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}
