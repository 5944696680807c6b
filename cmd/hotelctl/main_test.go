package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/config"
	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func testConfig() *config.Config {
	cfg := config.LoadEnv()
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.Issuer = "termas-test"
	cfg.JWT.TTL = time.Hour
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	cfg := testConfig()

	out, err := run(t, cfg, "token", "issue", "--user", "u-42", "--role", "reception", "--ttl", "10m")
	require.NoError(t, err)

	claims, err := middleware.ParseToken(cfg.JWT.SecretKey, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.Subject)
	assert.Equal(t, "reception", claims.Role)
	assert.Equal(t, "termas-test", claims.Issuer)
}

func TestMigrateList(t *testing.T) {
	out, err := run(t, testConfig(), "migrate", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0001_init")
}

type fakePOS struct {
	hotelv1.POSServiceServer
	caller string
	role   string
}

func (f *fakePOS) SyncPOSProducts(ctx context.Context, _ *hotelv1.SyncPOSProductsRequest) (*hotelv1.SyncPOSProductsResponse, error) {
	f.caller = auth.GetUserID(ctx)
	f.role = auth.GetRole(ctx)
	return &hotelv1.SyncPOSProductsResponse{Reception: 3, Restaurant: 2, Skipped: 1, Errors: []string{"PROD-x: duplicate sku"}}, nil
}

type fakeAssistant struct {
	hotelv1.AssistantServiceServer
	filter *hotelv1.UsageFilter
	trends *hotelv1.GetUsageTrendsRequest
}

func (f *fakeAssistant) GetUsageTrends(_ context.Context, req *hotelv1.GetUsageTrendsRequest) (*hotelv1.UsageTrendsResponse, error) {
	f.trends = req
	return &hotelv1.UsageTrendsResponse{Points: []*hotelv1.UsageTrendPoint{
		{Date: "2024-07-07", Requests: 3, TotalTokens: 900, TotalCostUsd: "0.0009"},
		{Date: "2024-07-14", Requests: 1, TotalTokens: 300, TotalCostUsd: "0.0003"},
	}}, nil
}

func (f *fakeAssistant) GetUsageStats(_ context.Context, req *hotelv1.GetUsageStatsRequest) (*hotelv1.UsageStatsResponse, error) {
	f.filter = req.Filter
	return &hotelv1.UsageStatsResponse{
		TotalRequests:      4,
		SuccessfulRequests: 3,
		FailedRequests:     1,
		TotalTokens:        1200,
		TotalCostUsd:       "0.0012",
		MostUsedModel:      "gemini-2.0-flash",
		MostUsedFeature:    "whatsapp",
		ByModel:            map[string]int32{"gemini-2.0-flash": 3, "gpt-4": 1},
	}, nil
}

func startServer(t *testing.T, cfg *config.Config) (string, *fakePOS, *fakeAssistant) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer(grpc.UnaryInterceptor(middleware.ContextInterceptor(&middleware.AuthConfig{Secret: cfg.JWT.SecretKey})))
	pos := &fakePOS{}
	ai := &fakeAssistant{}
	hotelv1.RegisterPOSServiceServer(srv, pos)
	hotelv1.RegisterAssistantServiceServer(srv, ai)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)
	return lis.Addr().String(), pos, ai
}

func TestPOSSync(t *testing.T) {
	cfg := testConfig()
	addr, pos, _ := startServer(t, cfg)

	out, err := run(t, cfg, "--addr", addr, "pos", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Reception:  3")
	assert.Contains(t, out, "Restaurant: 2")
	assert.Contains(t, out, "error: PROD-x: duplicate sku")
	assert.Equal(t, "hotelctl", pos.caller)
	assert.Equal(t, "admin", pos.role)
}

func TestPOSSync_BadToken(t *testing.T) {
	cfg := testConfig()
	addr, _, _ := startServer(t, cfg)

	_, err := run(t, cfg, "--addr", addr, "--token", "garbage", "pos", "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestTokensStats(t *testing.T) {
	cfg := testConfig()
	addr, _, ai := startServer(t, cfg)

	out, err := run(t, cfg, "--addr", addr, "tokens", "stats", "--period", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "Requests:      4 (3 ok, 1 failed)")
	assert.Contains(t, out, "Cost (USD):    0.0012")
	assert.Contains(t, out, "  gemini-2.0-flash: 3\n  gpt-4: 1\n")
	require.NotNil(t, ai.filter)
	assert.Equal(t, "week", ai.filter.Period)
}

func TestTokensStats_DateRange(t *testing.T) {
	cfg := testConfig()
	addr, _, ai := startServer(t, cfg)

	_, err := run(t, cfg, "--addr", addr, "tokens", "stats", "--period", "all", "--from", "2024-07-01", "--to", "2024-07-15")
	require.NoError(t, err)
	require.NotNil(t, ai.filter)
	assert.Equal(t, "2024-07-01", ai.filter.StartDate)
	assert.Equal(t, "2024-07-15", ai.filter.EndDate)
}

func TestTokensTrends(t *testing.T) {
	cfg := testConfig()
	addr, _, ai := startServer(t, cfg)

	out, err := run(t, cfg, "--addr", addr, "tokens", "trends", "--period", "weekly", "--days", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Regexp(t, `2024-07-07\s+3\s+900\s+0\.0009`, out)
	assert.Regexp(t, `2024-07-14\s+1\s+300\s+0\.0003`, out)
	require.NotNil(t, ai.trends)
	assert.Equal(t, "weekly", ai.trends.Period)
	assert.Equal(t, int32(14), ai.trends.Days)
}
