package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/assistant"
	"github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
)

var _ hotelv1.AssistantServiceServer = (*AssistantHandler)(nil)

type AssistantHandler struct {
	uc     assistant.UseCase
	logger logger.ZapLogger
}

func NewAssistantHandler(uc assistant.UseCase, log logger.ZapLogger) *AssistantHandler {
	return &AssistantHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AssistantHandler) Chat(ctx context.Context, req *hotelv1.ChatRequest) (*hotelv1.ChatResponse, error) {
	reply, err := h.uc.Chat(ctx, &dto.ChatInput{
		SessionID:   req.SessionId,
		Message:     req.Message,
		FeatureType: req.FeatureType,
	})
	if err != nil {
		h.logger.Error("assistant chat failed", zap.String("session_id", req.SessionId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	resp := &hotelv1.ChatResponse{Reply: reply.Text}
	if reply.Usage != nil {
		resp.Usage = mapUsageToProto(reply.Usage)
	}
	return resp, nil
}

func (h *AssistantHandler) LogUsage(ctx context.Context, req *hotelv1.LogUsageRequest) (*hotelv1.LogUsageResponse, error) {
	success := true
	if req.Success != nil {
		success = *req.Success
	}
	u, err := h.uc.LogUsage(ctx, &dto.UsageInput{
		SessionID:        req.SessionId,
		FeatureType:      req.FeatureType,
		Model:            req.Model,
		PromptTokens:     int(req.PromptTokens),
		CompletionTokens: int(req.CompletionTokens),
		RequestType:      req.RequestType,
		Success:          success,
		ErrorMessage:     req.ErrorMessage,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.LogUsageResponse{Usage: mapUsageToProto(u)}, nil
}

func (h *AssistantHandler) GetUsageStats(ctx context.Context, req *hotelv1.GetUsageStatsRequest) (*hotelv1.UsageStatsResponse, error) {
	f, err := filters(req.Filter)
	if err != nil {
		return nil, err
	}
	s, err := h.uc.GetUsageStats(ctx, f)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.UsageStatsResponse{
		TotalRequests:       int32(s.TotalRequests),
		SuccessfulRequests:  int32(s.SuccessfulCount),
		FailedRequests:      int32(s.FailedCount),
		TotalTokens:         int32(s.TotalTokens),
		PromptTokens:        int32(s.PromptTokens),
		CompletionTokens:    int32(s.CompletionTokens),
		TotalCostUsd:        s.TotalCostUSD.String(),
		AvgTokensPerRequest: int32(s.AvgTokensPerCall),
		MostUsedModel:       s.MostUsedModel,
		MostUsedFeature:     s.MostUsedFeature,
		ByModel:             counts(s.ByModel),
		ByFeature:           counts(s.ByFeature),
	}, nil
}

func (h *AssistantHandler) GetUsageHistory(ctx context.Context, req *hotelv1.GetUsageHistoryRequest) (*hotelv1.UsageHistoryResponse, error) {
	f, err := filters(req.Filter)
	if err != nil {
		return nil, err
	}
	f.Page = int(req.Page)
	f.PageSize = int(req.PageSize)

	records, count, err := h.uc.GetUsageHistory(ctx, f)
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.TokenUsage, 0, len(records))
	for i := range records {
		out = append(out, mapUsageToProto(&records[i]))
	}
	pages := (count + f.PageSize - 1) / f.PageSize
	return &hotelv1.UsageHistoryResponse{Records: out, Total: int32(count), TotalPages: int32(pages)}, nil
}

func (h *AssistantHandler) GetUsageTrends(ctx context.Context, req *hotelv1.GetUsageTrendsRequest) (*hotelv1.UsageTrendsResponse, error) {
	points, err := h.uc.GetUsageTrends(ctx, &dto.TrendInput{Period: req.Period, Days: int(req.Days)})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	out := make([]*hotelv1.UsageTrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, &hotelv1.UsageTrendPoint{
			Date:         p.Date,
			TotalTokens:  int32(p.TotalTokens),
			TotalCostUsd: p.TotalCostUSD.String(),
			Requests:     int32(p.Requests),
		})
	}
	return &hotelv1.UsageTrendsResponse{Points: out}, nil
}

func filters(f *hotelv1.UsageFilter) (*dto.UsageFilters, error) {
	if f == nil {
		return &dto.UsageFilters{}, nil
	}
	since, err := convert.OptDate("start_date", f.StartDate)
	if err != nil {
		return nil, err
	}
	until, err := convert.DayEnd("end_date", f.EndDate)
	if err != nil {
		return nil, err
	}
	return &dto.UsageFilters{
		Period:      f.Period,
		Since:       since,
		Until:       until,
		FeatureType: f.FeatureType,
		Model:       f.Model,
		Success:     f.Success,
	}, nil
}

func counts(in map[string]int) map[string]int32 {
	out := make(map[string]int32, len(in))
	for k, v := range in {
		out[k] = int32(v)
	}
	return out
}

func mapUsageToProto(u *model.TokenUsage) *hotelv1.TokenUsage {
	return &hotelv1.TokenUsage{
		Id:               u.ID,
		UserId:           convert.Str(u.UserID),
		SessionId:        convert.Str(u.SessionID),
		FeatureType:      u.FeatureType,
		Model:            u.Model,
		PromptTokens:     int32(u.PromptTokens),
		CompletionTokens: int32(u.CompletionTokens),
		TotalTokens:      int32(u.TotalTokens),
		EstimatedCostUsd: u.EstimatedCostUSD.String(),
		RequestType:      u.RequestType,
		Success:          u.Success,
		ErrorMessage:     convert.Str(u.ErrorMessage),
		CreatedAt:        u.CreatedAt,
	}
}
