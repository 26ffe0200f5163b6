package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "querybuilder.v1.QueryBuilder"

const (
	methodSerialize     = "/" + ServiceName + "/Serialize"
	methodParse         = "/" + ServiceName + "/Parse"
	methodEvaluate      = "/" + ServiceName + "/Evaluate"
	methodGetSchemaFile = "/" + ServiceName + "/GetSchemaFile"
)

// QueryBuilderServer is the server API for the QueryBuilder service.
// Request and response bodies are google.protobuf.Struct carrying the JSON
// shapes of the domain types.
type QueryBuilderServer interface {
	Serialize(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSchemaFile(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterQueryBuilderServer registers srv on s.
func RegisterQueryBuilderServer(s grpc.ServiceRegistrar, srv QueryBuilderServer) {
	s.RegisterService(&QueryBuilderServiceDesc, srv)
}

type unaryMethod func(QueryBuilderServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a QueryBuilderServer method to grpc's handler shape.
func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(QueryBuilderServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(QueryBuilderServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// QueryBuilderServiceDesc is the grpc.ServiceDesc for the QueryBuilder service.
var QueryBuilderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QueryBuilderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Serialize", Handler: unaryHandler(methodSerialize, QueryBuilderServer.Serialize)},
		{MethodName: "Parse", Handler: unaryHandler(methodParse, QueryBuilderServer.Parse)},
		{MethodName: "Evaluate", Handler: unaryHandler(methodEvaluate, QueryBuilderServer.Evaluate)},
		{MethodName: "GetSchemaFile", Handler: unaryHandler(methodGetSchemaFile, QueryBuilderServer.GetSchemaFile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "querybuilder/v1/querybuilder.proto",
}

// Client calls the QueryBuilder service over conn.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Serialize(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodSerialize, in, opts...)
}

func (c *Client) Parse(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodParse, in, opts...)
}

func (c *Client) Evaluate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodEvaluate, in, opts...)
}

func (c *Client) GetSchemaFile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetSchemaFile, in, opts...)
}
