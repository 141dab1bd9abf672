// Package post はブログ記事に関するビジネスロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// CreatePostInput は記事作成の入力。
type CreatePostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// UpdatePostInput は記事更新の入力。
type UpdatePostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// PostDetail は記事詳細（著者名とコメント一覧付き）。
type PostDetail struct {
	repository.PostWithAuthor
	Comments []repository.CommentWithAuthor
}

// Service は記事に関するビジネスロジックを提供する。
// 作成・更新・削除は管理者のみ実行できる。
type Service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	sanitizer   security.ContentSanitizerService
	collector   metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	sanitizer security.ContentSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		sanitizer:   sanitizer,
		collector:   collector,
	}
}

// ListPosts は全記事を著者名付きで返す。認証不要。
// 順序は作成日時降順・ID昇順で常に安定している。
func (s *Service) ListPosts(ctx context.Context) ([]repository.PostWithAuthor, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost は記事詳細をコメント一覧付きで返す。認証不要。
// 記事が存在しない場合は model.APIError (POST_NOT_FOUND) を返す。
func (s *Service) GetPost(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := s.postRepo.FindWithAuthorByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &PostDetail{
		PostWithAuthor: *post,
		Comments:       comments,
	}, nil
}

// CreatePost は新規記事を作成する。管理者のみ実行できる。
// 権限チェックは永続化より先に行い、権限がない場合は一切書き込まない。
// 本文はサニタイズしてから保存する。作成日時はサーバー側で確定する。
// タイトル重複時は model.APIError (DUPLICATE_TITLE) を返す。
func (s *Service) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*model.Post, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Subtitle:  input.Subtitle,
		Body:      s.sanitizer.SanitizeBody(input.Body),
		ImageURL:  input.ImageURL,
		AuthorID:  userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.collector.RecordPostCreated()
	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", userID),
		slog.String("title", post.Title),
	)

	return post, nil
}

// UpdatePost は既存記事を更新する。管理者のみ実行できる。
// idと作成日時は変更されず、更新日時のみサーバー側で更新される。
// 記事が存在しない場合は model.APIError (POST_NOT_FOUND) を返す。
func (s *Service) UpdatePost(ctx context.Context, userID, postID string, input UpdatePostInput) (*model.Post, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	post.Title = input.Title
	post.Subtitle = input.Subtitle
	post.Body = s.sanitizer.SanitizeBody(input.Body)
	post.ImageURL = input.ImageURL
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post updated",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
	)

	return post, nil
}

// DeletePost は記事を削除する。管理者のみ実行できる。
// 配下のコメントも同時に削除される。
// 記事が存在しない場合は model.APIError (POST_NOT_FOUND) を返す。
func (s *Service) DeletePost(ctx context.Context, userID, postID string) error {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return model.NewPostNotFoundError(postID)
	}

	if err := s.postRepo.DeleteByID(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)

	return nil
}

// requireAdmin は操作ユーザーが管理者であることを確認する。
// 未認証は model.APIError (UNAUTHORIZED)、権限不足は model.APIError (FORBIDDEN) を返す。
func (s *Service) requireAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUnauthorizedError()
	}
	if !user.IsAdmin() {
		return model.NewForbiddenError()
	}
	return nil
}
