package api

import (
	"context"

	"github.com/solatis/querybuilder/internal/schema"
	"github.com/solatis/querybuilder/internal/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type getSchemaFileRequest struct {
	FileName       string `json:"fileName"`
	SchemaFilePath string `json:"schemaFilePath"`
}

type getSchemaFileResponse struct {
	Schema *types.Schema `json:"schema"`
}

// GetSchemaFile returns the schema selected by file name and path.
func (s *QueryBuilderService) GetSchemaFile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s.fetcher == nil {
		return nil, status.Error(codes.Unimplemented, "no schema store configured")
	}

	var req getSchemaFileRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.FileName == "" {
		return nil, status.Error(codes.InvalidArgument, "fileName required")
	}

	sch, err := schema.GetSelectedSchema(ctx, s.fetcher, req.FileName, req.SchemaFilePath)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeResponse(getSchemaFileResponse{Schema: sch})
}
