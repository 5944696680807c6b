package middleware

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

type AuthConfig struct {
	Secret string
	// DevMode accepts x-user-id / x-user-role metadata without a token.
	DevMode bool
	// Public lists full method names that skip authentication.
	Public []string
}

// WithUser stores the caller identity in ctx.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}

// ContextInterceptor authenticates the caller and stores user id and role in
// the request context.
func ContextInterceptor(cfg *AuthConfig) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(cfg.Public))
	for _, m := range cfg.Public {
		public[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)

		if raw := first(md, "authorization"); raw != "" {
			token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
			claims, err := ParseToken(cfg.Secret, token)
			if err != nil {
				return nil, status.Error(codes.Unauthenticated, "invalid token")
			}
			return handler(WithUser(ctx, claims.Subject, claims.Role), req)
		}

		if cfg.DevMode {
			if userID := first(md, "x-user-id"); userID != "" {
				role := first(md, "x-user-role")
				if role == "" {
					role = "user"
				}
				return handler(WithUser(ctx, userID, role), req)
			}
		}

		return nil, status.Error(codes.Unauthenticated, "missing credentials")
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		}
		if err != nil {
			log.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("grpc request", fields...)
		}
		return resp, err
	}
}

func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func first(md metadata.MD, key string) string {
	if md == nil {
		return ""
	}
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}
