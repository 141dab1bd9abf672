package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/contact"
)

// ContactServiceInterface はお問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	// Submit はお問い合わせ内容を通知メールとして送信する。
	Submit(ctx context.Context, input contact.ContactInput) error
}

// ContactHandler はお問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// contactRequest はお問い合わせリクエストのボディ。
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Submit はお問い合わせフォームの送信を受け付ける。認証不要。
// POST /api/contact
//
// メール配送の成否はレスポンスに反映しない。送信失敗はログと
// メトリクスに記録され、クライアントには常に受付完了を返す。
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, newInvalidRequestError())
		return
	}

	if req.Name == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("name"))
		return
	}
	if req.Email == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("email"))
		return
	}
	if req.Message == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, newMissingFieldError("message"))
		return
	}

	if err := h.service.Submit(r.Context(), contact.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}); err != nil {
		// 配送失敗はサービス側で記録済み。受付自体は成功として扱う。
		slog.Warn("contact submission delivery failed", slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"message_sent": true,
	})
}
