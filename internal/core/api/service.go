// Package api provides the gRPC service implementation for querybuilder.
package api

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/expression"
	"github.com/solatis/querybuilder/internal/schema"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// QueryBuilderService implements QueryBuilderServer.
// Thin orchestration layer delegating to the converter, evaluator and
// schema fetcher.
type QueryBuilderService struct {
	converter *expression.Converter
	fetcher   schema.Fetcher
}

var _ QueryBuilderServer = (*QueryBuilderService)(nil)

// NewQueryBuilderService creates service instance with dependencies.
// fetcher may be nil when no schema store is configured; GetSchemaFile then
// reports UNIMPLEMENTED.
func NewQueryBuilderService(converter *expression.Converter, fetcher schema.Fetcher) (*QueryBuilderService, error) {
	if converter == nil {
		return nil, fmt.Errorf("converter cannot be nil")
	}
	return &QueryBuilderService{converter: converter, fetcher: fetcher}, nil
}

// decodeRequest copies a Struct body into a typed request through its JSON form.
func decodeRequest(in *structpb.Struct, dst any) error {
	raw, err := json.Marshal(in.AsMap())
	if err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid request body: %v", err))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// encodeResponse converts a typed response to a Struct body.
func encodeResponse(src any) (*structpb.Struct, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
