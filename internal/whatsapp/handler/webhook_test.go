package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/termas-hotel-service/internal/whatsapp"
	"github.com/fekuna/termas-hotel-service/internal/whatsapp/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	whatsapp.UseCase
	got   *dto.IncomingMessage
	reply string
	err   error
}

func (f *fakeUseCase) HandleIncoming(_ context.Context, msg *dto.IncomingMessage) (string, error) {
	f.got = msg
	return f.reply, f.err
}

func newRouter(uc whatsapp.UseCase, token string) http.Handler {
	r := chi.NewRouter()
	NewWebhook(uc, token, logger.NewNop()).Routes(r)
	return r
}

func post(t *testing.T, h http.Handler, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestWebhook_Message(t *testing.T) {
	uc := &fakeUseCase{reply: "hola"}
	h := newRouter(uc, "s3cret")

	w := post(t, h, "/webhooks/whatsapp", `{"id":"m1","from":"56912345678@c.us","body":"/spa","name":"Ana"}`,
		map[string]string{webhookTokenHeader: "s3cret"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"reply":"hola"}`, w.Body.String())
	require.NotNil(t, uc.got)
	assert.Equal(t, "/spa", uc.got.Body)
	assert.Equal(t, "Ana", uc.got.Name)
}

func TestWebhook_TokenInQuery(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(t, newRouter(uc, "s3cret"), "/webhooks/whatsapp?token=s3cret", `{"from":"x@c.us","body":"hi"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_Unauthorized(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(t, newRouter(uc, "s3cret"), "/webhooks/whatsapp", `{}`, map[string]string{webhookTokenHeader: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.got)
}

func TestWebhook_BadPayload(t *testing.T) {
	w := post(t, newRouter(&fakeUseCase{}, ""), "/webhooks/whatsapp", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_SendFailure(t *testing.T) {
	uc := &fakeUseCase{reply: "hola", err: errors.New("gateway down")}
	w := post(t, newRouter(uc, ""), "/webhooks/whatsapp", `{"from":"x@c.us","body":"hi"}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "gateway down")
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/webhooks/whatsapp", nil)
	w := httptest.NewRecorder()
	newRouter(&fakeUseCase{}, "").ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
