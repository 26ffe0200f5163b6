package api

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/expression"
	"github.com/solatis/querybuilder/internal/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type serializeRequest struct {
	Row *types.RowItem `json:"row"`
}

type serializeResponse struct {
	Expression string `json:"expression"`
}

type parseRequest struct {
	Expression string         `json:"expression"`
	Previous   *types.RowItem `json:"previous,omitempty"`
}

type parseResponse struct {
	Row types.RowItem `json:"row"`
}

// evaluateRequest carries either an expression or a row, plus the payload
// tokens resolve against.
type evaluateRequest struct {
	Expression string         `json:"expression,omitempty"`
	Row        *types.RowItem `json:"row,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type evaluateResponse struct {
	Matched  bool   `json:"matched"`
	Operator string `json:"operator"`
	Left     any    `json:"left"`
	Right    any    `json:"right"`
}

// Serialize writes a row as a single-line expression.
func (s *QueryBuilderService) Serialize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req serializeRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.Row == nil {
		return nil, status.Error(codes.InvalidArgument, "row required")
	}

	text, err := s.converter.Serialize(*req.Row)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeResponse(serializeResponse{Expression: text})
}

// Parse reads an expression back into a row, reusing segment ids from the
// previous row where values are unchanged.
func (s *QueryBuilderService) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req parseRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	var previous types.RowItem
	if req.Previous != nil {
		previous = *req.Previous
	}

	row, err := s.converter.Parse(req.Expression, previous)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeResponse(parseResponse{Row: row})
}

// Evaluate previews a condition against a payload.
func (s *QueryBuilderService) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req evaluateRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.Row == nil && req.Expression == "" {
		return nil, status.Error(codes.InvalidArgument, "expression or row required")
	}

	var resolver expression.TokenResolver
	if req.Payload != nil {
		raw, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid payload: %v", err))
		}
		pr, err := expression.NewPayloadResolver(raw)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resolver = pr
	}

	var (
		result expression.Result
		err    error
	)
	if req.Row != nil {
		result, err = s.converter.Evaluate(*req.Row, resolver)
	} else {
		result, err = s.converter.EvaluateExpression(req.Expression, resolver)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	return encodeResponse(evaluateResponse{
		Matched:  result.Matched,
		Operator: string(result.Operator),
		Left:     result.Left,
		Right:    result.Right,
	})
}
