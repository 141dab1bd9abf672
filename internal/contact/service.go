// Package contact はお問い合わせフォームの送信処理を提供する。
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/blogman/internal/mail"
	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
)

// ContactInput はお問い合わせフォームの入力。
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ServiceConfig はお問い合わせサービスの設定。
type ServiceConfig struct {
	To      string        // 通知メールの宛先
	Timeout time.Duration // メール送信のタイムアウト
}

// Service はお問い合わせに関するビジネスロジックを提供する。
// 送信失敗はログとメトリクスに記録される。
type Service struct {
	sender    mail.Sender
	collector metrics.MetricsCollector
	config    ServiceConfig
}

// NewService はServiceを生成する。
func NewService(sender mail.Sender, collector metrics.MetricsCollector, config ServiceConfig) *Service {
	return &Service{
		sender:    sender,
		collector: collector,
		config:    config,
	}
}

// Submit はお問い合わせ内容を通知メールとして送信する。
// 送信はServiceConfig.Timeoutで打ち切られる。
// 失敗時は model.APIError (MAIL_SEND_FAILED) を返す。
func (s *Service) Submit(ctx context.Context, input ContactInput) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	msg := mail.Message{
		To:      s.config.To,
		Subject: "New Message!",
		Body:    formatBody(input),
	}

	if err := s.sender.Send(sendCtx, msg); err != nil {
		s.collector.RecordMailFailure(err.Error())
		slog.Error("failed to send contact mail",
			slog.String("from_name", input.Name),
			slog.String("from_email", input.Email),
			slog.String("error", err.Error()),
		)
		return model.NewMailSendFailedError(err.Error())
	}

	s.collector.RecordMailSent()
	slog.Info("contact mail sent",
		slog.String("from_name", input.Name),
		slog.String("from_email", input.Email),
	)

	return nil
}

// formatBody は通知メール本文を組み立てる。
func formatBody(input ContactInput) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s",
		input.Name, input.Email, input.Phone, input.Message)
}
