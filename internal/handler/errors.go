package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"harian/internal/errs"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError переводит вид ошибки сервиса в HTTP статус,
// одинаково для всех обработчиков
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errs.ErrSessionExpired):
		WriteError(w, "Токен истек", http.StatusUnauthorized)
	case errors.Is(err, errs.ErrUnauthenticated):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, errs.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, errs.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.ErrConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
