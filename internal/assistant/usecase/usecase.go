package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/assistant"
	"github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/i18n"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	FeatureChat     = "chat"
	requestChat     = "chat"
	requestExternal = "completion"
	notAvailable    = "N/A"

	defaultTrendDays = 30
	maxTrendDays     = 366
)

// trendBuckets map a timestamp in the hotel zone to its bucket label.
var trendBuckets = map[string]func(time.Time) string{
	dto.TrendDaily: func(t time.Time) string { return t.Format("2006-01-02") },
	// weeks start on Sunday
	dto.TrendWeekly:  func(t time.Time) string { return t.AddDate(0, 0, -int(t.Weekday())).Format("2006-01-02") },
	dto.TrendMonthly: func(t time.Time) string { return t.Format("2006-01") },
}

var ErrNotConfigured = errors.New("assistant is not configured")

type assistantUseCase struct {
	repo      assistant.Repository
	generator assistant.Generator
	model     string
	hotelName string
	loc       *time.Location
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewAssistantUseCase builds the assistant. generator may be nil when no API
// key is configured; Chat then fails with ErrNotConfigured.
func NewAssistantUseCase(
	repo assistant.Repository,
	generator assistant.Generator,
	modelName, hotelName string,
	loc *time.Location,
	log logger.ZapLogger,
) assistant.UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &assistantUseCase{
		repo:      repo,
		generator: generator,
		model:     modelName,
		hotelName: hotelName,
		loc:       loc,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *assistantUseCase) Chat(ctx context.Context, input *dto.ChatInput) (*assistant.Reply, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", model.ErrInvalidInput)
	}
	if uc.generator == nil {
		return nil, ErrNotConfigured
	}
	feature := input.FeatureType
	if feature == "" {
		feature = FeatureChat
	}

	system := i18n.T("", "bot.system_prompt", map[string]any{"HotelName": uc.hotelName})
	if name := strings.TrimSpace(input.Name); name != "" {
		system += "\nEl cliente se llama " + name + "."
	}

	c, genErr := uc.generator.Generate(ctx, system, message)
	usage := &dto.UsageInput{
		SessionID:   input.SessionID,
		FeatureType: feature,
		Model:       uc.model,
		RequestType: requestChat,
		Success:     genErr == nil,
	}
	if c != nil {
		if c.Model != "" {
			usage.Model = c.Model
		}
		usage.PromptTokens = c.PromptTokens
		usage.CompletionTokens = c.CompletionTokens
	}
	if genErr != nil {
		usage.ErrorMessage = genErr.Error()
	}

	record, err := uc.LogUsage(ctx, usage)
	if err != nil {
		uc.logger.Warn("failed to log token usage", zap.String("feature", feature), zap.Error(err))
	}
	if genErr != nil {
		uc.logger.Error("assistant call failed", zap.String("feature", feature), zap.Error(genErr))
		return nil, genErr
	}
	return &assistant.Reply{Text: c.Text, Usage: record}, nil
}

func (uc *assistantUseCase) LogUsage(ctx context.Context, input *dto.UsageInput) (*model.TokenUsage, error) {
	if strings.TrimSpace(input.FeatureType) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, fmt.Errorf("%w: feature type and model are required", model.ErrInvalidInput)
	}
	if input.PromptTokens < 0 || input.CompletionTokens < 0 {
		return nil, fmt.Errorf("%w: token counts must not be negative", model.ErrInvalidInput)
	}
	requestType := input.RequestType
	if requestType == "" {
		requestType = requestExternal
	}

	u := &model.TokenUsage{
		ID:               uuid.New().String(),
		UserID:           auth.UserPtr(ctx),
		SessionID:        optional(input.SessionID),
		FeatureType:      input.FeatureType,
		Model:            input.Model,
		PromptTokens:     input.PromptTokens,
		CompletionTokens: input.CompletionTokens,
		TotalTokens:      input.PromptTokens + input.CompletionTokens,
		EstimatedCostUSD: assistant.EstimateCost(input.Model, input.PromptTokens, input.CompletionTokens),
		RequestType:      requestType,
		Success:          input.Success,
		ErrorMessage:     optional(input.ErrorMessage),
		CreatedAt:        uc.now(),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Debug("token usage logged",
		zap.String("feature", u.FeatureType),
		zap.String("model", u.Model),
		zap.Int("total_tokens", u.TotalTokens),
		zap.String("cost_usd", u.EstimatedCostUSD.String()),
	)
	return u, nil
}

func (uc *assistantUseCase) GetUsageStats(ctx context.Context, filters *dto.UsageFilters) (*model.TokenUsageStats, error) {
	if err := uc.scope(ctx, filters); err != nil {
		return nil, err
	}
	stats, err := uc.repo.Stats(ctx, filters)
	if err != nil {
		return nil, err
	}
	if stats.TotalRequests > 0 {
		stats.AvgTokensPerCall = int(math.Round(float64(stats.TotalTokens) / float64(stats.TotalRequests)))
	}
	stats.MostUsedModel = mostUsed(stats.ByModel)
	stats.MostUsedFeature = mostUsed(stats.ByFeature)
	return stats, nil
}

func (uc *assistantUseCase) GetUsageHistory(ctx context.Context, filters *dto.UsageFilters) ([]model.TokenUsage, int, error) {
	if err := uc.scope(ctx, filters); err != nil {
		return nil, 0, err
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *assistantUseCase) GetUsageTrends(ctx context.Context, input *dto.TrendInput) ([]model.TokenUsageTrend, error) {
	bucket, ok := trendBuckets[input.Period]
	if !ok {
		return nil, fmt.Errorf("%w: unknown trend period %q", model.ErrInvalidInput, input.Period)
	}
	days := input.Days
	if days == 0 {
		days = defaultTrendDays
	}
	if days < 0 || days > maxTrendDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", model.ErrInvalidInput, maxTrendDays)
	}

	filters := &dto.UsageFilters{}
	if err := uc.scope(ctx, filters); err != nil {
		return nil, err
	}
	from := uc.now().AddDate(0, 0, -days)
	filters.From = &from

	records, _, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	var out []model.TokenUsageTrend
	for _, r := range records {
		key := bucket(r.CreatedAt.In(uc.loc))
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, model.TokenUsageTrend{Date: key, TotalCostUSD: decimal.Zero})
		}
		out[i].TotalTokens += r.TotalTokens
		out[i].TotalCostUSD = out[i].TotalCostUSD.Add(r.EstimatedCostUSD)
		out[i].Requests++
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out, nil
}

// scope resolves the period start and limits non-admin callers to their own rows.
func (uc *assistantUseCase) scope(ctx context.Context, filters *dto.UsageFilters) error {
	now := uc.now().In(uc.loc)
	var from time.Time
	switch filters.Period {
	case "", dto.PeriodAll:
	case dto.PeriodToday:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	case dto.PeriodWeek:
		from = now.Add(-7 * 24 * time.Hour)
	case dto.PeriodMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	default:
		return fmt.Errorf("%w: unknown period %q", model.ErrInvalidInput, filters.Period)
	}
	if filters.Since != nil && filters.Until != nil && !filters.Until.After(*filters.Since) {
		return fmt.Errorf("%w: end date must not be before start date", model.ErrInvalidInput)
	}
	if filters.Since != nil && filters.Since.After(from) {
		from = *filters.Since
	}
	filters.From = nil
	if !from.IsZero() {
		filters.From = &from
	}

	filters.UserID = ""
	if auth.IsAdmin(ctx) {
		return nil
	}
	userID := auth.GetUserID(ctx)
	if userID == "" {
		return fmt.Errorf("%w: an authenticated user is required", model.ErrForbidden)
	}
	filters.UserID = userID
	return nil
}

// mostUsed picks the key with the highest count, the smallest key on ties.
func mostUsed(counts map[string]int) string {
	if len(counts) == 0 {
		return notAvailable
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
