package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"harian/internal/errs"
	"harian/internal/models"
)

const MaxPostContentLength = 500

// postEntry держит собственный мьютекс, чтобы мутации разных постов не мешали друг другу
type postEntry struct {
	mu   sync.Mutex
	post *models.Post
	seq  uint64
}

type PostRepositoryImpl struct {
	mu      sync.RWMutex
	posts   map[string]*postEntry
	nextSeq uint64
}

type CreatePostRequest struct {
	AuthorID       string `json:"authorId"`
	AuthorName     string `json:"authorName"`
	AuthorNickname string `json:"authorNickname"`
	AuthorRole     string `json:"authorRole"`
	Content        string `json:"content"`
	ImageURL       string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	PostID         string `json:"postId"`
	AuthorID       string `json:"authorId"`
	AuthorName     string `json:"authorName"`
	AuthorNickname string `json:"authorNickname"`
	Content        string `json:"content"`
}

func NewPostRepository() *PostRepositoryImpl {
	return &PostRepositoryImpl{
		posts: make(map[string]*postEntry),
	}
}

// clonePost копирует пост вместе со списками, чтобы не отдавать наружу внутреннее состояние
func clonePost(post *models.Post) *models.Post {
	postCopy := *post
	postCopy.Likes = append([]string(nil), post.Likes...)
	postCopy.Bookmarks = append([]string(nil), post.Bookmarks...)
	postCopy.Comments = append([]models.Comment(nil), post.Comments...)
	return &postCopy
}

func (r *PostRepositoryImpl) Create(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("содержимое поста не может быть пустым: %w", errs.ErrValidation)
	}
	if utf8.RuneCountInString(content) > MaxPostContentLength {
		return nil, fmt.Errorf("содержимое поста не может быть длиннее %d символов: %w", MaxPostContentLength, errs.ErrValidation)
	}
	if req.AuthorID == "" {
		return nil, fmt.Errorf("не указан автор поста: %w", errs.ErrValidation)
	}

	now := time.Now()
	post := &models.Post{
		PostID:   uuid.New().String(),
		AuthorID: req.AuthorID,
		// author data is snapshotted at creation time, later profile
		// edits do not rewrite history
		AuthorName:     req.AuthorName,
		AuthorNickname: req.AuthorNickname,
		AuthorRole:     req.AuthorRole,
		Content:        content,
		ImageURL:       req.ImageURL,
		Likes:          []string{},
		Bookmarks:      []string{},
		Comments:       []models.Comment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.mu.Lock()
	r.nextSeq++
	r.posts[post.PostID] = &postEntry{post: post, seq: r.nextSeq}
	r.mu.Unlock()

	return clonePost(post), nil
}

func (r *PostRepositoryImpl) getEntry(postID string) (*postEntry, error) {
	r.mu.RLock()
	entry, ok := r.posts[postID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("пост с ID %s: %w", postID, errs.ErrNotFound)
	}
	return entry, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	entry, err := r.getEntry(postID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return clonePost(entry.post), nil
}

// snapshot собирает копии постов; фильтр по автору необязателен
func (r *PostRepositoryImpl) snapshot(authorID string) []*models.Post {
	r.mu.RLock()
	entries := make([]*postEntry, 0, len(r.posts))
	for _, entry := range r.posts {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	// newest first, ties broken by reverse insertion order
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.seq > b.seq
	})

	posts := make([]*models.Post, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		if authorID == "" || entry.post.AuthorID == authorID {
			posts = append(posts, clonePost(entry.post))
		}
		entry.mu.Unlock()
	}

	return posts
}

func (r *PostRepositoryImpl) List(ctx context.Context, authorID string, page, limit int) ([]*models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	posts := r.snapshot(authorID)
	total := len(posts)

	start := (page - 1) * limit
	if start >= total {
		return []*models.Post{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return posts[start:end], total, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, callerID, callerRole string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("пост с ID %s: %w", postID, errs.ErrNotFound)
	}

	// wait for an in-flight mutation of this post before removing it
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := checkOwnership(entry.post.AuthorID, callerID, callerRole); err != nil {
		return err
	}

	delete(r.posts, postID)
	return nil
}

// checkOwnership — единая проверка прав для всех мутаций поста
func checkOwnership(authorID, callerID, callerRole string) error {
	if callerID == authorID || callerRole == models.RoleAdmin {
		return nil
	}
	return fmt.Errorf("нет прав на изменение этого поста: %w", errs.ErrForbidden)
}

// toggleMembership добавляет или убирает userID из набора
func toggleMembership(set []string, userID string) ([]string, bool) {
	for i, id := range set {
		if id == userID {
			return append(set[:i], set[i+1:]...), false
		}
	}
	return append(set, userID), true
}

func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	if userID == "" {
		return false, 0, fmt.Errorf("не указан пользователь: %w", errs.ErrValidation)
	}

	entry, err := r.getEntry(postID)
	if err != nil {
		return false, 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	likes, liked := toggleMembership(entry.post.Likes, userID)
	entry.post.Likes = likes
	entry.post.UpdatedAt = time.Now()

	return liked, len(likes), nil
}

func (r *PostRepositoryImpl) ToggleBookmark(ctx context.Context, postID, userID string) (bool, int, error) {
	if userID == "" {
		return false, 0, fmt.Errorf("не указан пользователь: %w", errs.ErrValidation)
	}

	entry, err := r.getEntry(postID)
	if err != nil {
		return false, 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	bookmarks, bookmarked := toggleMembership(entry.post.Bookmarks, userID)
	entry.post.Bookmarks = bookmarks
	entry.post.UpdatedAt = time.Now()

	return bookmarked, len(bookmarks), nil
}

func (r *PostRepositoryImpl) AddComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("текст комментария не может быть пустым: %w", errs.ErrValidation)
	}
	if req.AuthorID == "" {
		return nil, fmt.Errorf("не указан автор комментария: %w", errs.ErrValidation)
	}

	entry, err := r.getEntry(req.PostID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		CommentID:      uuid.New().String(),
		AuthorID:       req.AuthorID,
		AuthorName:     req.AuthorName,
		AuthorNickname: req.AuthorNickname,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	entry.mu.Lock()
	entry.post.Comments = append(entry.post.Comments, comment)
	entry.post.UpdatedAt = time.Now()
	entry.mu.Unlock()

	return &comment, nil
}

func (r *PostRepositoryImpl) ListBookmarked(ctx context.Context, userID string) ([]*models.Post, error) {
	if userID == "" {
		return nil, fmt.Errorf("не указан пользователь: %w", errs.ErrValidation)
	}

	posts := r.snapshot("")

	bookmarked := make([]*models.Post, 0)
	for _, post := range posts {
		for _, id := range post.Bookmarks {
			if id == userID {
				bookmarked = append(bookmarked, post)
				break
			}
		}
	}

	return bookmarked, nil
}

func (r *PostRepositoryImpl) SetImage(ctx context.Context, postID, callerID, callerRole, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("не указан URL изображения: %w", errs.ErrValidation)
	}

	entry, err := r.getEntry(postID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := checkOwnership(entry.post.AuthorID, callerID, callerRole); err != nil {
		return err
	}

	entry.post.ImageURL = imageURL
	entry.post.UpdatedAt = time.Now()
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostRepositoryImpl)(nil)
