package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
)

func TestCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"invalid input", mdwerror.New("bad").WithCode(mdwerror.CodeInvalidInput), codes.InvalidArgument},
		{"too long", mdwerror.New("long").WithCode(mdwerror.CodeInvalidLength), codes.OutOfRange},
		{"not found", mdwerror.New("gone").WithCode(mdwerror.CodeNotFound), codes.NotFound},
		{"timeout", mdwerror.New("slow").WithCode(mdwerror.CodeTimeout), codes.DeadlineExceeded},
		{"database", mdwerror.New("db").WithCode(mdwerror.CodeDatabaseError), codes.Unavailable},
		{"config", mdwerror.New("cfg").WithCode(mdwerror.CodeInvalidConfig), codes.FailedPrecondition},
		{"wrapped", mdwerror.Wrap(mdwerror.New("x").WithCode(mdwerror.CodeNotFound), "outer"), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"plain", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFromError(tt.err); got != tt.want {
				t.Errorf("CodeFromError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusFromError(t *testing.T) {
	if StatusFromError(nil) != nil {
		t.Error("StatusFromError(nil) != nil")
	}

	existing := status.Error(codes.Aborted, "aborted")
	if got := StatusFromError(existing); got != existing {
		t.Errorf("StatusFromError() = %v, want unchanged %v", got, existing)
	}

	err := StatusFromError(mdwerror.New("missing").WithCode(mdwerror.CodeNotFound))
	if status.Code(err) != codes.NotFound {
		t.Errorf("status code = %v, want NotFound", status.Code(err))
	}
	if status.Convert(err).Message() != "missing" {
		t.Errorf("message = %q, want missing", status.Convert(err).Message())
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("status code = %v, want Internal", status.Code(err))
	}
}

func TestGetRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID() = %q, want abc", got)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "from-header"))
	if got := GetRequestID(ctx); got != "from-header" {
		t.Errorf("GetRequestID() = %q, want from-header", got)
	}
}

func startBufconn(t *testing.T, s *Server) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := Dial(DefaultClientConfig("passthrough:///bufnet"),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_Health(t *testing.T) {
	s := NewServer(DefaultServerConfig())
	s.SetServing("ghll.v1.ParseService", true)
	conn := startBufconn(t, s)

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "ghll.v1.ParseService"})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Status = %v, want SERVING", resp.Status)
	}

	s.SetServing("ghll.v1.ParseService", false)
	resp, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "ghll.v1.ParseService"})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Status = %v, want NOT_SERVING", resp.Status)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	s := NewServer(DefaultServerConfig())
	conn := startBufconn(t, s)

	var header metadata.MD
	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "req-1")
	_, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-1" {
		t.Errorf("response header %s = %v, want [req-1]", RequestIDHeader, got)
	}
}

func TestClient_SendsContextRequestID(t *testing.T) {
	s := NewServer(DefaultServerConfig())
	conn := startBufconn(t, s)

	var header metadata.MD
	ctx := WithRequestID(context.Background(), "req-2")
	_, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-2" {
		t.Errorf("response header %s = %v, want [req-2]", RequestIDHeader, got)
	}
}

func TestServer_GeneratesRequestID(t *testing.T) {
	s := NewServer(DefaultServerConfig())
	conn := startBufconn(t, s)

	var header metadata.MD
	_, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got := header.Get(RequestIDHeader); len(got) != 1 || got[0] == "" {
		t.Errorf("response header %s = %v, want one generated ID", RequestIDHeader, got)
	}
}

func TestServer_Address(t *testing.T) {
	s := NewServer(ServerConfig{Host: "localhost", Port: 1234})
	if got := s.Address(); got != "localhost:1234" {
		t.Errorf("Address() = %q, want localhost:1234", got)
	}
}
