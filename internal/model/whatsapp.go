package model

import "time"

type BotStatus struct {
	Connected         bool       `json:"connected"`
	MessagesProcessed int64      `json:"messages_processed"`
	MessagesSent      int64      `json:"messages_sent"`
	Errors            int64      `json:"errors"`
	LastActivity      *time.Time `json:"last_activity"`
	InBusinessHours   bool       `json:"in_business_hours"`
	HoursStart        int        `json:"hours_start"`
	HoursEnd          int        `json:"hours_end"`
}
