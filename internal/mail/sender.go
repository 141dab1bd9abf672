// Package mail はSMTP経由のメール送信を提供する。
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Config はSMTP接続の設定。
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Message は送信するメールの内容。
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender はメール送信のインターフェース。
// サービス層からSMTPの詳細を隠蔽する。
type Sender interface {
	// Send はメールを送信する。呼び出し元のcontextでタイムアウトを制御できる。
	Send(ctx context.Context, msg Message) error
}

// SMTPSender はwneessen/go-mailを使ったSenderの実装。
// STARTTLSとSMTP AUTH PLAINで認証する。
type SMTPSender struct {
	config Config
}

// NewSMTPSender はSMTPSenderを生成する。
func NewSMTPSender(config Config) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send はメールを1通送信する。
// 接続・認証・送信のいずれかが失敗した場合はエラーを返す。
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.config.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(s.config.Host,
		gomail.WithPort(s.config.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.config.Username),
		gomail.WithPassword(s.config.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
