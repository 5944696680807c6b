package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/termas-hotel-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.WhatsAppConfig{GatewayURL: srv.URL + "/", Token: "secret"})
}

func TestSend(t *testing.T) {
	var got sendRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"messageId":"m1"}`))
	})

	require.NoError(t, c.Send(context.Background(), "56912345678@c.us", "hola"))
	assert.Equal(t, "56912345678@c.us", got.ChatID)
	assert.Equal(t, "hola", got.Message)
}

func TestSend_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "client not ready", http.StatusServiceUnavailable)
	})

	err := c.Send(context.Background(), "x@c.us", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "client not ready")
}

func TestSend_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"number not on whatsapp"}`))
	})

	err := c.Send(context.Background(), "x@c.us", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number not on whatsapp")
}

func TestSend_NotConfigured(t *testing.T) {
	c := NewClient(config.WhatsAppConfig{})
	assert.ErrorIs(t, c.Send(context.Background(), "x@c.us", "hola"), ErrNotConfigured)
	assert.False(t, c.Connected(context.Background()))
}

func TestConnected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.Write([]byte(`{"connected":true}`))
	})
	assert.True(t, c.Connected(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, down.Connected(context.Background()))
}
