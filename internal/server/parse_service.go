package server

import (
	"context"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
	"github.com/msto63/ghll/pkg/core/cache"
	"github.com/msto63/ghll/pkg/core/logging"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "ghll.v1.ParseService"

	// ParseMethod is the full method name of the unary Parse call
	ParseMethod = "/" + ServiceName + "/Parse"
)

// ParseServer is the server API of ghll.v1.ParseService. Messages are
// google.protobuf.Struct: the request carries {line}, the response the
// fields of ghll.View.
type ParseServer interface {
	Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ParseServiceDesc describes ghll.v1.ParseService for grpc.Server.RegisterService
var ParseServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ParseServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler:    parseHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ghll/v1/parse.proto",
}

// RegisterParseServer registers srv on s
func RegisterParseServer(s grpc.ServiceRegistrar, srv ParseServer) {
	s.RegisterService(&ParseServiceDesc, srv)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParseServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParseMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParseServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ParseService implements ParseServer on top of the engine
type ParseService struct {
	proc *processor
}

// NewParseService creates the service; results and store may be nil
func NewParseService(engine *ghll.Engine, results *cache.Cache[*ghll.Result], store *history.Store) *ParseService {
	return &ParseService{
		proc: newProcessor(engine, results, store, logging.New("ghll-parse-service")),
	}
}

// Parse parses the line of the request
func (s *ParseService) Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lineValue, ok := req.GetFields()["line"]
	if !ok {
		return nil, mdwerror.New("field line is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("server.parse")
	}
	line, ok := lineValue.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, mdwerror.New("field line must be a string").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("server.parse")
	}

	res, err := s.proc.process(ctx, line.StringValue)
	if err != nil {
		return nil, err
	}
	return viewToStruct(res.View())
}

func viewToStruct(v ghll.View) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]interface{}{
		"line":        v.Line,
		"expression":  v.Expression,
		"tree":        lo.ToAnySlice(v.Tree),
		"tokens":      lo.ToAnySlice(v.Tokens),
		"remaining":   lo.ToAnySlice(v.Remaining),
		"diagnostics": lo.ToAnySlice(v.Diagnostics),
		"complete":    v.Complete,
		"duration_ms": v.DurationMs,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode parse result").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.parse")
	}
	return out, nil
}

// ParseClient calls ghll.v1.ParseService
type ParseClient struct {
	cc grpc.ClientConnInterface
}

// NewParseClient creates a client on cc
func NewParseClient(cc grpc.ClientConnInterface) *ParseClient {
	return &ParseClient{cc: cc}
}

// Parse sends one line and returns the raw response struct
func (c *ParseClient) Parse(ctx context.Context, line string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"line": structpb.NewStringValue(line),
	}}
	if err := c.cc.Invoke(ctx, ParseMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StructToView converts a Parse response back into a ghll.View
func StructToView(s *structpb.Struct) ghll.View {
	fields := s.GetFields()
	return ghll.View{
		Line:        fields["line"].GetStringValue(),
		Expression:  fields["expression"].GetStringValue(),
		Tree:        stringList(fields["tree"]),
		Tokens:      stringList(fields["tokens"]),
		Remaining:   stringList(fields["remaining"]),
		Diagnostics: stringList(fields["diagnostics"]),
		Complete:    fields["complete"].GetBoolValue(),
		DurationMs:  fields["duration_ms"].GetNumberValue(),
	}
}

func stringList(v *structpb.Value) []string {
	return lo.Map(v.GetListValue().GetValues(), func(item *structpb.Value, _ int) string {
		return item.GetStringValue()
	})
}
