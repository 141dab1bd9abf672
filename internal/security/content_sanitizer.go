// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService は記事本文とコメントのHTMLコンテンツをサニタイズし、
// XSS攻撃などのセキュリティリスクから閲覧者を保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はHTMLコンテンツのサニタイズ機能のインターフェースを定義する。
// 記事・コメントの保存前に使用される。
type ContentSanitizerService interface {
	// SanitizeBody は記事本文のリッチテキストHTMLをサニタイズして安全なHTMLを返す。
	// 見出し・段落・リスト・リンク・画像などのリッチテキスト編集タグのみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// imgタグのsrc属性はhttpsスキームのみ許可される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeBody(rawHTML string) string

	// SanitizeComment はコメント本文をサニタイズしてプレーンテキストを返す。
	// コメントにHTMLタグは許可しない（タグは全て除去される）。
	SanitizeComment(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	bodyPolicy    *bluemonday.Policy
	commentPolicy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 初期化時にbluemondayのカスタムポリシーを構築する。
// 記事本文ポリシーの内容:
//   - 許可タグ: h1〜h4, p, br, a, ul, ol, li, blockquote, pre, code, strong, em, img
//   - 禁止タグ: script, iframe, style および全てのon*イベント属性
//   - imgのsrc属性: httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noreferrer noopener" を自動付与
//
// コメントポリシーはタグを一切許可しない（StrictPolicy）。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	// リッチテキストエディタが生成する基本タグ
	p.AllowElements(
		"h1", "h2", "h3", "h4",
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	// aタグ:
	// - href属性を許可、相対URLは不許可
	// - target="_blank"とrel="noreferrer noopener"を強制付与
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	// imgタグ:
	// - src属性はhttpsスキームのみ許可（http, javascript, data等は拒否）
	// - alt属性を許可（アクセシビリティ確保）
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{
		bodyPolicy:    p,
		commentPolicy: bluemonday.StrictPolicy(),
	}
}

// SanitizeBody は記事本文のリッチテキストHTMLをサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) SanitizeBody(rawHTML string) string {
	return s.bodyPolicy.Sanitize(rawHTML)
}

// SanitizeComment はコメント本文からHTMLタグを全て除去して返す。
func (s *contentSanitizer) SanitizeComment(raw string) string {
	return s.commentPolicy.Sanitize(raw)
}
