// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限区分を表す。
type Role string

const (
	// RoleAdmin は管理者。記事の作成・編集・削除とコメントの削除が許可される。
	RoleAdmin Role = "admin"
	// RoleMember は一般ユーザー。記事の閲覧とコメントの投稿のみ許可される。
	RoleMember Role = "member"
)

// User はサービス利用ユーザーを表す。
// PasswordHashにはbcryptのハッシュのみを保存し、平文パスワードは一切保持しない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin は管理者かどうかを返す。
// 管理者判定はこのメソッドに集約し、呼び出し側でRoleを直接比較しない。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session はユーザーのログインセッションを表す。
// IDはサーバー側で生成した不透明トークンで、HTTP Only Cookieとして配布される。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
