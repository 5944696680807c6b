package auth

import (
	"context"

	"github.com/fekuna/termas-hotel-service/pkg/middleware"
)

const RoleAdmin = "admin"

// GetUserID returns the authenticated user id set by the interceptor.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.UserIDKey).(string); ok {
		return val
	}
	return ""
}

func GetRole(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.RoleKey).(string); ok {
		return val
	}
	return ""
}

func IsAdmin(ctx context.Context) bool {
	return GetRole(ctx) == RoleAdmin
}

// UserPtr returns the user id as a nullable column value.
func UserPtr(ctx context.Context) *string {
	if id := GetUserID(ctx); id != "" {
		return &id
	}
	return nil
}
