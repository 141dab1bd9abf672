package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash はタイミング攻撃対策用のダミーハッシュ。
// 未登録メールアドレスでのログイン試行でも照合処理を1回実行し、
// 応答時間からメールアドレスの登録有無を推測されにくくする。
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// HashPassword はbcryptでパスワードをハッシュ化する。
// ソルトは呼び出しごとに生成されるため、同じパスワードでも毎回異なるハッシュになる。
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword は保存済みハッシュと候補パスワードを照合する。
// 不正な形式のハッシュに対してもpanicせずfalseを返す。
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// verifyDummy は未登録ユーザーへのログイン試行時に照合時間を揃えるための空照合。
func verifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
