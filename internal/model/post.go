package model

import "time"

// Post はブログ記事を表す。
// Titleは全記事でユニーク。BodyはサニタイズされたリッチテキストHTML。
// CreatedAtは作成時に確定し、編集しても変化しない。
type Post struct {
	ID        string
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateLabel は記事の作成日を人間可読な表記で返す（例: "August 29, 2026"）。
func (p *Post) DateLabel() string {
	return p.CreatedAt.Format("January 2, 2006")
}
