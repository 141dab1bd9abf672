package model

import "time"

// Comment は記事へのコメントを表す。
// 投稿後の編集は不可。削除は管理者による個別削除か、親記事削除時のCASCADEのみ。
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}
