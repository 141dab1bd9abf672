// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成し、Roleを確定する。
	// 最初に登録されたユーザーがadmin、以降はmemberになる。
	// メールアドレス重複時は model.APIError (DUPLICATE_EMAIL) を返す。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにしない（冪等）。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// PostRepository は記事データの永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// FindWithAuthorByID は指定IDの記事を著者名付きで取得する。見つからない場合はnilを返す。
	FindWithAuthorByID(ctx context.Context, id string) (*PostWithAuthor, error)

	// List は全記事を著者名付きで返す。
	// 順序は作成日時降順・ID昇順で、同一データセットに対して常に同じ並びになる。
	List(ctx context.Context) ([]PostWithAuthor, error)

	// Create は記事を作成する。
	// タイトル重複時は model.APIError (DUPLICATE_TITLE) を返す。
	Create(ctx context.Context, post *model.Post) error

	// Update は記事のtitle/subtitle/body/image_url/updated_atを更新する。
	// idとcreated_atは変更しない。タイトル重複時は model.APIError (DUPLICATE_TITLE) を返す。
	Update(ctx context.Context, post *model.Post) error

	// DeleteByID は指定IDの記事を削除する。
	// 配下のコメントはON DELETE CASCADEで同時に削除される。
	DeleteByID(ctx context.Context, id string) error
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// FindByID は指定IDのコメントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Comment, error)

	// ListByPostID は記事のコメント一覧を著者名付きで投稿日時昇順で返す。
	ListByPostID(ctx context.Context, postID string) ([]CommentWithAuthor, error)

	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// DeleteByID は指定IDのコメントを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// PostWithAuthor は記事と著者表示名を結合した構造体。
type PostWithAuthor struct {
	model.Post
	AuthorName string
}

// CommentWithAuthor はコメントと著者表示名を結合した構造体。
type CommentWithAuthor struct {
	model.Comment
	AuthorName string
}
