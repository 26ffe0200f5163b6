package types

import "errors"

// Sentinel errors for querybuilder operations.
var (
	// ErrMalformedExpression indicates text that does not match @op(a,b).
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnsupportedOperandSyntax indicates an operand that cannot be written
	// unquoted without breaking the operand separator or closing parenthesis.
	ErrUnsupportedOperandSyntax = errors.New("unsupported operand syntax")

	// ErrInvalidOperator indicates an unknown or badly formed operator.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrCoercionFailed indicates type coercion failed.
	ErrCoercionFailed = errors.New("type coercion failed")

	// ErrFieldNotFound indicates a token path could not be resolved.
	ErrFieldNotFound = errors.New("field not found")

	// ErrPathTooDeep indicates a token path exceeds MaxPathDepth.
	ErrPathTooDeep = errors.New("field path exceeds maximum depth")

	// ErrSchemaNotFound indicates no schema file exists for a name and path.
	ErrSchemaNotFound = errors.New("schema not found")
)
