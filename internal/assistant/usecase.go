package assistant

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type UseCase interface {
	Chat(ctx context.Context, input *dto.ChatInput) (*Reply, error)
	LogUsage(ctx context.Context, input *dto.UsageInput) (*model.TokenUsage, error)
	GetUsageStats(ctx context.Context, filters *dto.UsageFilters) (*model.TokenUsageStats, error)
	GetUsageHistory(ctx context.Context, filters *dto.UsageFilters) ([]model.TokenUsage, int, error)
	GetUsageTrends(ctx context.Context, input *dto.TrendInput) ([]model.TokenUsageTrend, error)
}

type Reply struct {
	Text  string
	Usage *model.TokenUsage
}

// Completion is one model answer with its token counts.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Generator is satisfied by gemini.Client.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (*Completion, error)
}
