// Package comment は記事コメントに関するビジネスロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Service はコメントに関するビジネスロジックを提供する。
// 投稿はログイン済みユーザーなら誰でも、削除は管理者のみ実行できる。
type Service struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	sanitizer   security.ContentSanitizerService
	collector   metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	sanitizer security.ContentSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		sanitizer:   sanitizer,
		collector:   collector,
	}
}

// AddComment は記事にコメントを投稿する。ログイン済みユーザーのみ実行できる。
// 本文はサニタイズ後に空白のみなら model.APIError (EMPTY_COMMENT) を返す。
// 記事が存在しない場合は model.APIError (POST_NOT_FOUND) を返す。
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) (*model.Comment, error) {
	if userID == "" {
		return nil, model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUnauthorizedError()
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	sanitized := s.sanitizer.SanitizeComment(text)
	if strings.TrimSpace(sanitized) == "" {
		return nil, model.NewEmptyCommentError()
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  userID,
		Text:      sanitized,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.collector.RecordCommentCreated()
	slog.Info("comment added",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("author_id", userID),
	)

	return comment, nil
}

// DeleteComment はコメントを削除する。管理者のみ実行できる。
// コメントが存在しない場合は model.APIError (COMMENT_NOT_FOUND) を返す。
func (s *Service) DeleteComment(ctx context.Context, userID, commentID string) error {
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

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to find comment: %w", err)
	}
	if comment == nil {
		return model.NewCommentNotFoundError(commentID)
	}

	if err := s.commentRepo.DeleteByID(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	slog.Info("comment deleted",
		slog.String("comment_id", commentID),
		slog.String("user_id", userID),
	)

	return nil
}
