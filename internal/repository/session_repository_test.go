package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"harian/internal/errs"
)

func TestCreateSession_Resolve(t *testing.T) {
	// Arrange
	repo := NewSessionRepository(0)

	// Act
	token, err := repo.CreateSession(context.Background(), "user-123")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, token, 64) // 32 случайных байта в hex

	userID, err := repo.ResolveSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestCreateSession_UniqueTokens(t *testing.T) {
	repo := NewSessionRepository(0)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := repo.CreateSession(context.Background(), "user-123")
		assert.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestCreateSession_EmptyUser(t *testing.T) {
	repo := NewSessionRepository(0)

	token, err := repo.CreateSession(context.Background(), "")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestResolveSession_Unknown(t *testing.T) {
	repo := NewSessionRepository(0)

	userID, err := repo.ResolveSession(context.Background(), "no-such-token")

	assert.Empty(t, userID)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestResolveSession_EmptyToken(t *testing.T) {
	repo := NewSessionRepository(0)

	_, err := repo.ResolveSession(context.Background(), "")

	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestResolveSession_Expired(t *testing.T) {
	// Arrange: негативный TTL делает сессию просроченной сразу после создания
	repo := NewSessionRepository(-time.Second)
	token, err := repo.CreateSession(context.Background(), "user-123")
	assert.NoError(t, err)

	// Act: first resolve reports expiry and purges the session
	_, err = repo.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, errs.ErrSessionExpired)

	// Assert: after the purge the token is simply unknown
	_, err = repo.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestRevokeSession(t *testing.T) {
	// Arrange
	repo := NewSessionRepository(0)
	token, err := repo.CreateSession(context.Background(), "user-123")
	assert.NoError(t, err)

	// Act
	err = repo.RevokeSession(context.Background(), token)
	assert.NoError(t, err)

	// Assert
	_, err = repo.ResolveSession(context.Background(), token)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	// revoking again is not an error
	assert.NoError(t, repo.RevokeSession(context.Background(), token))
	assert.NoError(t, repo.RevokeSession(context.Background(), "no-such-token"))
}

func TestCreateSession_MultiplePerUser(t *testing.T) {
	repo := NewSessionRepository(0)

	first, err := repo.CreateSession(context.Background(), "user-123")
	assert.NoError(t, err)
	second, err := repo.CreateSession(context.Background(), "user-123")
	assert.NoError(t, err)

	// both sessions stay valid independently
	userID, err := repo.ResolveSession(context.Background(), first)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	assert.NoError(t, repo.RevokeSession(context.Background(), first))

	userID, err = repo.ResolveSession(context.Background(), second)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}
