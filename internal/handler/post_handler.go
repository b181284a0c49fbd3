package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"harian/internal/models"
)

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostsGetResponse struct {
	Posts      []*models.Post     `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type ToggleResponse struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	// Pagination parameters
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	// optional filter by author
	authorID := r.URL.Query().Get("userId")

	posts, total, err := h.FeedService.GetPosts(r.Context(), authorID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// forming the response
	response := PostsGetResponse{
		Posts: posts,
		Pagination: PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.FeedService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]*models.Post{"post": post}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	author, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	post, err := h.FeedService.CreatePost(r.Context(), author, req.Content, req.Image)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]*models.Post{"post": post}, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	err := h.FeedService.DeletePost(r.Context(), postID, caller.UserID, caller.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пост удален"}, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	liked, count, err := h.FeedService.ToggleLike(r.Context(), postID, caller.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, ToggleResponse{Active: liked, Count: count}, http.StatusOK)
}

func (h *Handlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	bookmarked, count, err := h.FeedService.ToggleBookmark(r.Context(), postID, caller.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, ToggleResponse{Active: bookmarked, Count: count}, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	author, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	comment, err := h.FeedService.AddComment(r.Context(), postID, author, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]*models.Comment{"comment": comment}, http.StatusCreated)
}

func (h *Handlers) GetBookmarked(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	posts, err := h.FeedService.Bookmarked(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string][]*models.Post{"posts": posts}, http.StatusOK)
}

// UploadImage принимает multipart-файл и прикрепляет его к посту автора
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Файл изображения не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := h.FeedService.AttachImage(r.Context(), postID, caller, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"imageUrl": imageURL}, http.StatusCreated)
}
