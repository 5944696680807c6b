package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/config"
)

const defaultTimeout = 15 * time.Second

var ErrNotConfigured = errors.New("whatsapp gateway url is not configured")

// Client talks to the WhatsApp web gateway over its small JSON API:
// POST /send {chatId, message} and GET /status {connected}.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg config.WhatsAppConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GatewayURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type sendRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type sendResponse struct {
	Success   *bool  `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

type statusResponse struct {
	Connected bool `json:"connected"`
}

func (c *Client) Send(ctx context.Context, chatID, text string) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	body, err := json.Marshal(sendRequest{ChatID: chatID, Message: text})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway: %w", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("whatsapp gateway: status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out sendResponse
	if len(raw) > 0 && json.Unmarshal(raw, &out) == nil && out.Success != nil && !*out.Success {
		if out.Error == "" {
			out.Error = "message rejected"
		}
		return fmt.Errorf("whatsapp gateway: %s", out.Error)
	}
	return nil
}

// Connected reports whether the gateway session is logged in. Any transport
// error counts as disconnected.
func (c *Client) Connected(ctx context.Context) bool {
	if c.baseURL == "" {
		return false
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return false
	}
	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return false
	}
	var out statusResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return false
	}
	return out.Connected
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
