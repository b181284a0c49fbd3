package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"harian/internal/config"
	handlers "harian/internal/handler"
	"harian/internal/models"
)

type testServices struct {
	auth *MockAuthService
	feed *MockFeedService
	todo *MockTodoService
	user *MockUserService
}

func createTestHandler() (*handlers.Handlers, *testServices) {
	services := &testServices{
		auth: new(MockAuthService),
		feed: new(MockFeedService),
		todo: new(MockTodoService),
		user: new(MockUserService),
	}

	cfg := &config.Config{
		ServerPort:    4000,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	handler := &handlers.Handlers{
		AuthService: services.auth,
		FeedService: services.feed,
		TodoService: services.todo,
		UserService: services.user,
		Cfg:         cfg,
		Validate:    validator.New(),
	}

	return handler, services
}

// withUser добавляет в контекст запроса данные, которые кладет auth-middleware
func withUser(req *http.Request, user *models.User) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, "userID", user.UserID)
	ctx = context.WithValue(ctx, "email", user.Email)
	ctx = context.WithValue(ctx, "name", user.Name)
	ctx = context.WithValue(ctx, "nickname", user.Nickname)
	ctx = context.WithValue(ctx, "role", user.Role)
	return req.WithContext(ctx)
}

func memberUser() *models.User {
	return &models.User{
		UserID:   "user-123",
		Email:    "test@example.com",
		Name:     "Test User",
		Nickname: "tester",
		Role:     models.RoleMember,
	}
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}
