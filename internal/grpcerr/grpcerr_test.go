package grpcerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/cache"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", fmt.Errorf("room x: %w", model.ErrNotFound), codes.NotFound},
		{"invalid", fmt.Errorf("%w: amount must be positive", model.ErrInvalidInput), codes.InvalidArgument},
		{"conflict", model.ErrConflict, codes.AlreadyExists},
		{"stock", model.ErrInsufficientStock, codes.FailedPrecondition},
		{"transition", model.ErrInvalidTransition, codes.FailedPrecondition},
		{"session", model.ErrSessionClosed, codes.FailedPrecondition},
		{"forbidden", model.ErrForbidden, codes.PermissionDenied},
		{"locked", cache.ErrLocked, codes.Unavailable},
		{"other", errors.New("db down"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(Status(tt.err)))
		})
	}
}

func TestStatus_PassesThroughStatusErrors(t *testing.T) {
	in := status.Error(codes.Unauthenticated, "nope")
	assert.Equal(t, in, Status(in))
	assert.NoError(t, Status(nil))
}
