package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/blogman/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, subtitle, body, image_url, author_id, created_at, updated_at
		 FROM posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.Title, &post.Subtitle, &post.Body, &post.ImageURL,
		&post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return post, nil
}

// FindWithAuthorByID は指定IDの記事を著者名付きで取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindWithAuthorByID(ctx context.Context, id string) (*PostWithAuthor, error) {
	p := &PostWithAuthor{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.subtitle, p.body, p.image_url, p.author_id,
		        p.created_at, p.updated_at, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt, &p.AuthorName)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post with author: %w", err)
	}

	return p, nil
}

// List は全記事を著者名付きで返す。
// 作成日時降順・ID昇順のため、同一データセットに対して常に同じ並びになる。
func (r *PostgresPostRepo) List(ctx context.Context) ([]PostWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.subtitle, p.body, p.image_url, p.author_id,
		        p.created_at, p.updated_at, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC, p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []PostWithAuthor
	for rows.Next() {
		var p PostWithAuthor
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL,
			&p.AuthorID, &p.CreatedAt, &p.UpdatedAt, &p.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post rows: %w", err)
	}

	return posts, nil
}

// Create は記事を作成する。
// タイトル重複は model.APIError (DUPLICATE_TITLE) に変換する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, subtitle, body, image_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		post.ID, post.Title, post.Subtitle, post.Body, post.ImageURL,
		post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if isTitleConflict(err) {
			return model.NewDuplicateTitleError(post.Title)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// Update は記事のtitle/subtitle/body/image_url/updated_atを更新する。
// idとcreated_atは変更しない。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = $2, subtitle = $3, body = $4, image_url = $5, updated_at = $6
		 WHERE id = $1`,
		post.ID, post.Title, post.Subtitle, post.Body, post.ImageURL, post.UpdatedAt,
	)
	if err != nil {
		if isTitleConflict(err) {
			return model.NewDuplicateTitleError(post.Title)
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %s", post.ID)
	}
	return nil
}

// DeleteByID は指定IDの記事を削除する。
// 配下のコメントはON DELETE CASCADEで同時に削除される。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %s", id)
	}
	return nil
}

// isTitleConflict はposts_title_keyの一意制約違反かどうかを判定する。
func isTitleConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "posts_title_key"
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
