package handlers

import (
	"encoding/json"
	"net/http"

	"harian/internal/repository"
)

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Nickname string `json:"nickname" validate:"required,min=3"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]UserResponse{"user": toUserResponse(user)}, http.StatusOK)
}

// GetUsers возвращает список пользователей, только для администратора
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	userRole, _ := r.Context().Value("role").(string)

	users, err := h.AuthService.ListUsers(r.Context(), userRole)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, toUserResponse(user))
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), repository.UpdateProfileRequest{
		UserID:   userID,
		Name:     req.Name,
		Nickname: req.Nickname,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]UserResponse{"user": toUserResponse(user)}, http.StatusOK)
}
