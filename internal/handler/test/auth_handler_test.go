package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"harian/internal/errs"
	"harian/internal/models"
	"harian/internal/repository"
)

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"email":           "test@example.com",
		"name":            "Test User",
		"nickname":        "tester",
		"password":        "password123",
		"confirmPassword": "password123",
	}
}

func TestRegisterHandler_Success(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("Register", mock.Anything, repository.CreateUserRequest{
		Email:           "test@example.com",
		Name:            "Test User",
		Nickname:        "tester",
		Password:        "password123",
		ConfirmPassword: "password123",
	}).Return(&models.User{
		UserID:   "user-123",
		Email:    "test@example.com",
		Name:     "Test User",
		Nickname: "tester",
		Role:     models.RoleMember,
	}, "token-123", nil)

	body, _ := json.Marshal(registerBody())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	// Act
	handler.Register(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)

	assert.Equal(t, "token-123", response["token"])

	userData, ok := response["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "user-123", userData["userId"])
	assert.Equal(t, "test@example.com", userData["email"])
	assert.Equal(t, models.RoleMember, userData["role"])

	services.auth.AssertExpectations(t)
}

func TestRegisterHandler_InvalidEmail(t *testing.T) {
	// Arrange
	handler, _ := createTestHandler()

	requestBody := registerBody()
	requestBody["email"] = "not-an-email"

	body, _ := json.Marshal(requestBody)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	// Act
	handler.Register(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusBadRequest, "Неверный формат email")
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	handler, _ := createTestHandler()

	requestBody := registerBody()
	requestBody["password"] = "12345"
	requestBody["confirmPassword"] = "12345"

	body, _ := json.Marshal(requestBody)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Пароль должен быть не менее 6 символов")
}

func TestRegisterHandler_PasswordMismatch(t *testing.T) {
	handler, _ := createTestHandler()

	requestBody := registerBody()
	requestBody["confirmPassword"] = "different"

	body, _ := json.Marshal(requestBody)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Пароли не совпадают")
}

func TestRegisterHandler_ShortNickname(t *testing.T) {
	handler, _ := createTestHandler()

	requestBody := registerBody()
	requestBody["nickname"] = "ab"

	body, _ := json.Marshal(requestBody)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Неверные данные")
}

func TestRegisterHandler_EmailConflict(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("Register", mock.Anything, mock.Anything).
		Return(nil, "", fmt.Errorf("пользователь с email test@example.com уже существует: %w", errs.ErrConflict))

	body, _ := json.Marshal(registerBody())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	// Act
	handler.Register(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusConflict, "уже существует")
}

func TestRegisterHandler_BadJSON(t *testing.T) {
	handler, _ := createTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Неверный формат запроса")
}

func TestLoginHandler_Success(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("Login", mock.Anything, "tester", "password123").
		Return(&models.User{
			UserID:   "user-123",
			Email:    "test@example.com",
			Nickname: "tester",
			Role:     models.RoleMember,
		}, "token-123", nil)

	body, _ := json.Marshal(map[string]string{
		"email":    "tester",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	// Act
	handler.Login(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "token-123", response["token"])

	services.auth.AssertExpectations(t)
}

func TestLoginHandler_WrongCredentials(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("Login", mock.Anything, "tester", "wrong").
		Return(nil, "", fmt.Errorf("неверный email/никнейм или пароль: %w", errs.ErrUnauthenticated))

	body, _ := json.Marshal(map[string]string{
		"email":    "tester",
		"password": "wrong",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	// Act
	handler.Login(rr, req)

	// Assert: the same message as for an unknown identifier
	assertJSONError(t, rr, http.StatusUnauthorized, "Неверный email/никнейм или пароль")
}

func TestLoginHandler_MissingFields(t *testing.T) {
	handler, _ := createTestHandler()

	body, _ := json.Marshal(map[string]string{"email": "tester"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Неверные данные")
}

func TestLogoutHandler(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("Logout", mock.Anything, "token-123").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rr := httptest.NewRecorder()

	// Act
	handler.Logout(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	services.auth.AssertExpectations(t)
}

func TestGetUsersHandler_Forbidden(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	services.auth.On("ListUsers", mock.Anything, models.RoleMember).
		Return(nil, fmt.Errorf("требуется роль администратора: %w", errs.ErrForbidden))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req = withUser(req, memberUser())
	rr := httptest.NewRecorder()

	// Act
	handler.GetUsers(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusForbidden, "требуется роль администратора")
}

func TestGetUsersHandler_Admin(t *testing.T) {
	// Arrange
	handler, services := createTestHandler()

	admin := &models.User{UserID: "admin-001", Role: models.RoleAdmin, Nickname: "admin"}
	services.auth.On("ListUsers", mock.Anything, models.RoleAdmin).
		Return([]*models.User{admin, memberUser()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req = withUser(req, admin)
	rr := httptest.NewRecorder()

	// Act
	handler.GetUsers(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
}
