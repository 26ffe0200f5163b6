// internal/expression/coercion.go
package expression

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Literal classification and type coercion.
 *
 * IsNumber and IsBoolean decide whether a literal is written bare or quoted
 * in the expression text. Coerce converts resolved operand values for the
 * comparison operators.
 *
 * Classification is done on the untrimmed string: " 5" is text, not a number,
 * so it stays quoted and keeps its whitespace through a round trip.
 *
 * Type modes:
 *   - NUMERIC: Strict - coerce strings to float64, reject booleans
 *   - TEXT: Lenient - auto-coerce all types to string
 *   - BOOLEAN: Strict - bool and "true"/"false" literals only
 *   - ANY: Lenient - preserve original type
 */

// FieldType selects the coercion applied before comparison.
type FieldType int

const (
	FieldTypeUnspecified FieldType = iota
	FieldTypeNumeric
	FieldTypeText
	FieldTypeBoolean
	FieldTypeAny
)

// IsNumber reports whether s is a finite number literal.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// IsBoolean reports whether s is a boolean literal (case-insensitive).
func IsBoolean(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

// literalValue types a literal segment value the way the expression language
// reads it: numbers and booleans bare, null as nil, everything else text.
func literalValue(s string) any {
	switch {
	case s == "null":
		return nil
	case IsNumber(s):
		f, _ := strconv.ParseFloat(s, 64)
		return f
	case IsBoolean(s):
		return strings.EqualFold(s, "true")
	default:
		return s
	}
}

// CoercionResult holds the coerced value or indicates null.
type CoercionResult struct {
	Value  any  // coerced value (valid only if !IsNull)
	IsNull bool // true if input was nil/null
}

// Coerce attempts to convert value to the expected field type.
// Returns CoercionResult with IsNull=true for nil input.
// Returns ErrCoercionFailed for impossible coercions.
func Coerce(value any, fieldType FieldType) (CoercionResult, error) {
	if value == nil {
		return CoercionResult{IsNull: true}, nil
	}

	switch fieldType {
	case FieldTypeNumeric:
		return coerceNumeric(value)
	case FieldTypeText:
		return coerceText(value)
	case FieldTypeBoolean:
		return coerceBoolean(value)
	case FieldTypeAny, FieldTypeUnspecified:
		return CoercionResult{Value: value}, nil
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
}

// coerceNumeric converts value to float64 for ordering comparisons.
// Whitespace-only strings return ErrCoercionFailed.
func coerceNumeric(value any) (CoercionResult, error) {
	switch v := value.(type) {
	case float64:
		return CoercionResult{Value: v}, nil
	case int:
		return CoercionResult{Value: float64(v)}, nil
	case int64:
		return CoercionResult{Value: float64(v)}, nil
	case string:
		v = strings.TrimSpace(v)
		if !IsNumber(v) {
			return CoercionResult{}, types.ErrCoercionFailed
		}
		f, _ := strconv.ParseFloat(v, 64)
		return CoercionResult{Value: f}, nil
	default:
		// bool included: no 1/0 reading of booleans
		return CoercionResult{}, types.ErrCoercionFailed
	}
}

// coerceText converts all types to their string representation.
func coerceText(value any) (CoercionResult, error) {
	switch v := value.(type) {
	case string:
		return CoercionResult{Value: v}, nil
	case float64:
		return CoercionResult{Value: strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case int:
		return CoercionResult{Value: strconv.Itoa(v)}, nil
	case int64:
		return CoercionResult{Value: strconv.FormatInt(v, 10)}, nil
	case bool:
		return CoercionResult{Value: strconv.FormatBool(v)}, nil
	default:
		return CoercionResult{Value: fmt.Sprintf("%v", v)}, nil
	}
}

// coerceBoolean accepts bool values and boolean literals.
func coerceBoolean(value any) (CoercionResult, error) {
	switch v := value.(type) {
	case bool:
		return CoercionResult{Value: v}, nil
	case string:
		if IsBoolean(v) {
			return CoercionResult{Value: strings.EqualFold(v, "true")}, nil
		}
		return CoercionResult{}, types.ErrCoercionFailed
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
}
