package api

import (
	"context"
	"errors"

	"github.com/solatis/querybuilder/internal/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Converter and evaluator errors map to INVALID_ARGUMENT.
// Missing schemas map to NOT_FOUND.
// Store errors map to UNAVAILABLE.
// Context timeouts map to DEADLINE_EXCEEDED.
func toStatus(err error) error {
	switch {
	case errors.Is(err, types.ErrMalformedExpression),
		errors.Is(err, types.ErrUnsupportedOperandSyntax),
		errors.Is(err, types.ErrInvalidOperator),
		errors.Is(err, types.ErrCoercionFailed),
		errors.Is(err, types.ErrFieldNotFound),
		errors.Is(err, types.ErrPathTooDeep):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrSchemaNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}
