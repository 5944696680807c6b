package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const AssistantServiceName = "termas.hotel.v1.AssistantService"

type TokenUsage struct {
	Id               string    `json:"id"`
	UserId           string    `json:"user_id,omitempty"`
	SessionId        string    `json:"session_id,omitempty"`
	FeatureType      string    `json:"feature_type"`
	Model            string    `json:"model"`
	PromptTokens     int32     `json:"prompt_tokens"`
	CompletionTokens int32     `json:"completion_tokens"`
	TotalTokens      int32     `json:"total_tokens"`
	EstimatedCostUsd string    `json:"estimated_cost_usd"`
	RequestType      string    `json:"request_type"`
	Success          bool      `json:"success"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type ChatRequest struct {
	SessionId   string `json:"session_id"`
	Message     string `json:"message"`
	FeatureType string `json:"feature_type"`
}

type ChatResponse struct {
	Reply string      `json:"reply"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

type LogUsageRequest struct {
	SessionId        string `json:"session_id"`
	FeatureType      string `json:"feature_type"`
	Model            string `json:"model"`
	PromptTokens     int32  `json:"prompt_tokens"`
	CompletionTokens int32  `json:"completion_tokens"`
	RequestType      string `json:"request_type"`
	// Success defaults to true when omitted.
	Success      *bool  `json:"success"`
	ErrorMessage string `json:"error_message"`
}

type LogUsageResponse struct {
	Usage *TokenUsage `json:"usage"`
}

type UsageFilter struct {
	Period      string `json:"period"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	FeatureType string `json:"feature_type"`
	Model       string `json:"model"`
	Success     *bool  `json:"success"`
}

type GetUsageStatsRequest struct {
	Filter *UsageFilter `json:"filter"`
}

type UsageStatsResponse struct {
	TotalRequests       int32            `json:"total_requests"`
	SuccessfulRequests  int32            `json:"successful_requests"`
	FailedRequests      int32            `json:"failed_requests"`
	TotalTokens         int32            `json:"total_tokens"`
	PromptTokens        int32            `json:"prompt_tokens"`
	CompletionTokens    int32            `json:"completion_tokens"`
	TotalCostUsd        string           `json:"total_cost_usd"`
	AvgTokensPerRequest int32            `json:"average_tokens_per_request"`
	MostUsedModel       string           `json:"most_used_model"`
	MostUsedFeature     string           `json:"most_used_feature"`
	ByModel             map[string]int32 `json:"by_model"`
	ByFeature           map[string]int32 `json:"by_feature"`
}

type GetUsageHistoryRequest struct {
	Filter   *UsageFilter `json:"filter"`
	Page     int32        `json:"page"`
	PageSize int32        `json:"page_size"`
}

type UsageHistoryResponse struct {
	Records    []*TokenUsage `json:"records"`
	Total      int32         `json:"total"`
	TotalPages int32         `json:"total_pages"`
}

type GetUsageTrendsRequest struct {
	Period string `json:"period"`
	Days   int32  `json:"days"`
}

type UsageTrendPoint struct {
	Date         string `json:"date"`
	TotalTokens  int32  `json:"total_tokens"`
	TotalCostUsd string `json:"total_cost_usd"`
	Requests     int32  `json:"requests"`
}

type UsageTrendsResponse struct {
	Points []*UsageTrendPoint `json:"points"`
}

type AssistantServiceServer interface {
	Chat(context.Context, *ChatRequest) (*ChatResponse, error)
	LogUsage(context.Context, *LogUsageRequest) (*LogUsageResponse, error)
	GetUsageStats(context.Context, *GetUsageStatsRequest) (*UsageStatsResponse, error)
	GetUsageHistory(context.Context, *GetUsageHistoryRequest) (*UsageHistoryResponse, error)
	GetUsageTrends(context.Context, *GetUsageTrendsRequest) (*UsageTrendsResponse, error)
}

var AssistantService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AssistantServiceName,
	HandlerType: (*AssistantServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(AssistantServiceName, "Chat", AssistantServiceServer.Chat),
		rpc.Unary(AssistantServiceName, "LogUsage", AssistantServiceServer.LogUsage),
		rpc.Unary(AssistantServiceName, "GetUsageStats", AssistantServiceServer.GetUsageStats),
		rpc.Unary(AssistantServiceName, "GetUsageHistory", AssistantServiceServer.GetUsageHistory),
		rpc.Unary(AssistantServiceName, "GetUsageTrends", AssistantServiceServer.GetUsageTrends),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAssistantServiceServer(s grpc.ServiceRegistrar, srv AssistantServiceServer) {
	s.RegisterService(&AssistantService_ServiceDesc, srv)
}
