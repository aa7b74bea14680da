package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/msto63/ghll/pkg/core/logging"
)

var interceptorLogger = logging.New("ghll-rpc")

type contextKey string

const (
	// RequestIDKey holds the request ID in a server or client context
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader carries the request ID in gRPC metadata both ways
	RequestIDHeader = "x-request-id"
)

// WithRequestID returns ctx carrying requestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID of ctx: the one set by WithRequestID,
// else the one in incoming metadata, else ""
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// serverFault reports codes that point at the server rather than the caller
func serverFault(code codes.Code) bool {
	switch code {
	case codes.Internal, codes.Unavailable, codes.Unknown, codes.DataLoss:
		return true
	default:
		return false
	}
}

// logCall writes one line per finished call in the same vocabulary as the
// engine timer: rpc, request_id, code and duration_ms
func logCall(msg, method, requestID string, start time.Time, err error, client bool) {
	code := status.Code(err)
	kv := []interface{}{
		"rpc", method,
		"code", code.String(),
		"duration_ms", float64(time.Since(start).Nanoseconds()) / 1e6,
	}
	if requestID != "" {
		kv = append(kv, "request_id", requestID)
	}

	switch {
	case serverFault(code):
		interceptorLogger.Warn(msg, append(kv, "error", err)...)
	case client:
		interceptorLogger.Debug(msg, kv...)
	default:
		interceptorLogger.Info(msg, kv...)
	}
}

// recovered turns a recovered panic value into an Internal status and logs
// it with the stack
func recovered(method string, r interface{}) error {
	interceptorLogger.Error("Panic in rpc handler", "rpc", method, "panic", r, "stack", string(debug.Stack()))
	return status.Error(codes.Internal, "internal server error")
}

// RecoveryInterceptor converts handler panics into Internal errors
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor is RecoveryInterceptor for streams such as the
// health Watch call
func StreamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(info.FullMethod, r)
			}
		}()
		return handler(srv, ss)
	}
}

// RequestIDInterceptor takes the caller's request ID or generates one,
// stores it in the context and echoes it in the response header
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := GetRequestID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx = WithRequestID(ctx, requestID)
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			interceptorLogger.Debug("Request ID header not set", "rpc", info.FullMethod, "error", err)
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every finished unary call
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall("rpc served", info.FullMethod, GetRequestID(ctx), start, err, false)
		return resp, err
	}
}

// StreamLoggingInterceptor logs every finished stream
func StreamLoggingInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall("stream served", info.FullMethod, GetRequestID(ss.Context()), start, err, false)
		return err
	}
}

// ErrorInterceptor converts foundation errors returned by handlers into
// gRPC status errors. It runs innermost so the logging interceptor sees
// the final code.
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		return resp, StatusFromError(err)
	}
}

// ClientRequestIDInterceptor sends the context's request ID, or a new one,
// with every outgoing call
func ClientRequestIDInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		requestID, _ := ctx.Value(RequestIDKey).(string)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = metadata.AppendToOutgoingContext(WithRequestID(ctx, requestID), RequestIDHeader, requestID)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ClientLoggingInterceptor logs outgoing unary calls at debug level
func ClientLoggingInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		requestID, _ := ctx.Value(RequestIDKey).(string)
		logCall("rpc sent", method, requestID, start, err, true)
		return err
	}
}
