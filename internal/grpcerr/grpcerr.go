package grpcerr

import (
	"context"
	"errors"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/cache"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status converts a usecase error into a gRPC status error.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case errors.Is(err, model.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, model.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, model.ErrConflict):
		code = codes.AlreadyExists
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrSessionClosed):
		code = codes.FailedPrecondition
	case errors.Is(err, model.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, cache.ErrLocked):
		code = codes.Unavailable
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}
