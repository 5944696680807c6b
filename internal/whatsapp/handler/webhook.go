package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/fekuna/termas-hotel-service/internal/whatsapp"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	webhookTokenHeader = "X-Webhook-Token"
	maxWebhookBody     = 64 << 10
)

// Webhook receives gateway message events over HTTP.
type Webhook struct {
	uc     whatsapp.UseCase
	token  string
	logger logger.ZapLogger
}

// NewWebhook builds the webhook. An empty token disables the token check.
func NewWebhook(uc whatsapp.UseCase, token string, log logger.ZapLogger) *Webhook {
	return &Webhook{
		uc:     uc,
		token:  token,
		logger: log,
	}
}

// Routes mounts the webhook under r.
func (wh *Webhook) Routes(r chi.Router) {
	r.With(wh.authorize).Post("/webhooks/whatsapp", wh.handleMessage)
}

func (wh *Webhook) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wh.token != "" {
			got := r.Header.Get(webhookTokenHeader)
			if got == "" {
				got = r.URL.Query().Get("token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(wh.token)) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "invalid webhook token"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (wh *Webhook) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg dto.IncomingMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid message payload"})
		return
	}

	reply, err := wh.uc.HandleIncoming(r.Context(), &msg)
	if err != nil {
		wh.logger.Error("whatsapp webhook failed", zap.String("message_id", msg.ID), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reply": reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
