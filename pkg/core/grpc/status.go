package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
)

// CodeFromError maps the code of a foundation error to a gRPC status code
func CodeFromError(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}

	switch mdwerror.GetCode(err) {
	case mdwerror.CodeInvalidInput, mdwerror.CodeValidationFailed:
		return codes.InvalidArgument
	case mdwerror.CodeInvalidLength:
		return codes.OutOfRange
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeServiceUnavailable, mdwerror.CodeDatabaseError, mdwerror.CodeNetworkError:
		return codes.Unavailable
	case mdwerror.CodeConfigError, mdwerror.CodeInvalidConfig:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// StatusFromError converts err into a gRPC status error. Errors that
// already carry a status are returned unchanged.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(CodeFromError(err), err.Error())
}
