package dto

import "time"

// IncomingMessage is one chat message delivered by the gateway webhook.
type IncomingMessage struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	Body      string    `json:"body"`
	Name      string    `json:"name"`
	IsFromMe  bool      `json:"is_from_me"`
	IsGroup   bool      `json:"is_group"`
	Timestamp time.Time `json:"timestamp"`
}

type SendResult struct {
	Number  string `json:"number"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BroadcastResult struct {
	// Success is true when at least one recipient was reached.
	Success bool         `json:"success"`
	Results []SendResult `json:"results"`
}
