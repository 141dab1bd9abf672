package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/post"
	"github.com/hitoshi/blogman/internal/repository"
)

// PostServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// ListPosts は全記事を著者名付きで返す。
	ListPosts(ctx context.Context) ([]repository.PostWithAuthor, error)
	// GetPost は記事詳細をコメント一覧付きで返す。
	GetPost(ctx context.Context, postID string) (*post.PostDetail, error)
	// CreatePost は新規記事を作成する（管理者のみ）。
	CreatePost(ctx context.Context, userID string, input post.CreatePostInput) (*model.Post, error)
	// UpdatePost は既存記事を更新する（管理者のみ）。
	UpdatePost(ctx context.Context, userID, postID string, input post.UpdatePostInput) (*model.Post, error)
	// DeletePost は記事を削除する（管理者のみ）。
	DeletePost(ctx context.Context, userID, postID string) error
}

// PostHandler は記事管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// postRequest は記事作成・更新リクエストのボディ。
type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// postResponse は記事情報のAPIレスポンス。
// Dateは「January 2, 2006」形式の表示用ラベル。
type postResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Body       string    `json:"body"`
	ImageURL   string    `json:"image_url"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// commentResponse はコメント情報のAPIレスポンス。
type commentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// postDetailResponse は記事詳細のAPIレスポンス（コメント一覧付き）。
type postDetailResponse struct {
	postResponse
	Comments []commentResponse `json:"comments"`
}

func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		AuthorID:  p.AuthorID,
		Date:      p.DateLabel(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostWithAuthorResponse(p repository.PostWithAuthor) postResponse {
	resp := toPostResponse(&p.Post)
	resp.AuthorName = p.AuthorName
	return resp
}

func toCommentResponse(c repository.CommentWithAuthor) commentResponse {
	return commentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

// ListPosts は記事一覧を返す。認証不要。
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]postResponse, len(posts))
	for i, p := range posts {
		results[i] = toPostWithAuthorResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// GetPost は記事詳細をコメント一覧付きで返す。認証不要。
// GET /api/posts/:id
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	detail, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := postDetailResponse{
		postResponse: toPostWithAuthorResponse(detail.PostWithAuthor),
		Comments:     make([]commentResponse, len(detail.Comments)),
	}
	for i, c := range detail.Comments {
		resp.Comments[i] = toCommentResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// CreatePost は新規記事を作成する。管理者のみ。
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}
	if req.Title == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("title"))
		return
	}
	if req.Body == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("body"))
		return
	}

	created, err := h.service.CreatePost(r.Context(), userID, post.CreatePostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toPostResponse(created))
}

// UpdatePost は既存記事を更新する。管理者のみ。
// PUT /api/posts/:id
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	postID := chi.URLParam(r, "id")

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}
	if req.Title == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("title"))
		return
	}
	if req.Body == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("body"))
		return
	}

	updated, err := h.service.UpdatePost(r.Context(), userID, postID, post.UpdatePostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPostResponse(updated))
}

// DeletePost は記事を削除する。管理者のみ。
// DELETE /api/posts/:id
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	postID := chi.URLParam(r, "id")

	if err := h.service.DeletePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
