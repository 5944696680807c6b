package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TokenUsage struct {
	ID               string          `db:"id" json:"id"`
	UserID           *string         `db:"user_id" json:"user_id"`
	SessionID        *string         `db:"session_id" json:"session_id"`
	FeatureType      string          `db:"feature_type" json:"feature_type"`
	Model            string          `db:"model" json:"model"`
	PromptTokens     int             `db:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int             `db:"completion_tokens" json:"completion_tokens"`
	TotalTokens      int             `db:"total_tokens" json:"total_tokens"`
	EstimatedCostUSD decimal.Decimal `db:"estimated_cost_usd" json:"estimated_cost_usd"`
	RequestType      string          `db:"request_type" json:"request_type"`
	Success          bool            `db:"success" json:"success"`
	ErrorMessage     *string         `db:"error_message" json:"error_message"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// TokenUsageTrend sums the usage of one day, week or month. Date is the
// bucket start (YYYY-MM-DD) or YYYY-MM for months.
type TokenUsageTrend struct {
	Date         string          `json:"date"`
	TotalTokens  int             `json:"total_tokens"`
	TotalCostUSD decimal.Decimal `json:"total_cost_usd"`
	Requests     int             `json:"requests"`
}

type TokenUsageStats struct {
	TotalRequests    int             `json:"total_requests"`
	SuccessfulCount  int             `json:"successful_count"`
	FailedCount      int             `json:"failed_count"`
	TotalTokens      int             `json:"total_tokens"`
	PromptTokens     int             `json:"prompt_tokens"`
	CompletionTokens int             `json:"completion_tokens"`
	TotalCostUSD     decimal.Decimal `json:"total_cost_usd"`
	AvgTokensPerCall int             `json:"avg_tokens_per_request"`
	MostUsedModel    string          `json:"most_used_model"`
	MostUsedFeature  string          `json:"most_used_feature"`
	ByModel          map[string]int  `json:"by_model"`
	ByFeature        map[string]int  `json:"by_feature"`
}
