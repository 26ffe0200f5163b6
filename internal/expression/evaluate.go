// internal/expression/evaluate.go
package expression

import (
	"fmt"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Simple-mode condition evaluation.
 *
 * Evaluation flow:
 *   1. Normalize the operator (default when empty, reject unknown)
 *   2. Resolve each operand: literals are typed by the classifier, tokens
 *      come from the TokenResolver, multi-segment operands concatenate as text
 *   3. Coerce per operator family (numeric for ordering, text for affixes)
 *   4. Compare
 *
 * Null handling: a null operand compares equal only to another null and
 * fails coercion for ordering operators.
 */

// Result is the outcome of evaluating one row.
type Result struct {
	Matched  bool
	Operator Operator
	Left     any // operand1 after resolution and coercion
	Right    any // operand2 after resolution and coercion
}

// Evaluate applies row's operator to its resolved operands. A row without
// an operator uses the converter's default operator, as Serialize does.
// resolver may be nil when the row holds no tokens.
func (c *Converter) Evaluate(row types.RowItem, resolver TokenResolver) (Result, error) {
	name := row.Operator
	if name == "" {
		name = c.defaultOperator
	}
	op, ok := LookupOperator(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", types.ErrInvalidOperator, name)
	}

	left, err := resolveOperand(row.Operand1, resolver)
	if err != nil {
		return Result{}, fmt.Errorf("operand1: %w", err)
	}
	right, err := resolveOperand(row.Operand2, resolver)
	if err != nil {
		return Result{}, fmt.Errorf("operand2: %w", err)
	}

	left, right, err = coerceFor(op, left, right)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Matched:  Compare(op, left, right),
		Operator: op,
		Left:     left,
		Right:    right,
	}, nil
}

// EvaluateExpression parses text and evaluates the resulting row.
func (c *Converter) EvaluateExpression(text string, resolver TokenResolver) (Result, error) {
	row, err := c.Parse(text, types.RowItem{})
	if err != nil {
		return Result{}, err
	}
	return c.Evaluate(row, resolver)
}

// resolveOperand produces the runtime value of an operand.
func resolveOperand(operand []types.ValueSegment, resolver TokenResolver) (any, error) {
	switch len(operand) {
	case 0:
		return nil, nil
	case 1:
		return resolveSegment(operand[0], resolver)
	}

	var sb strings.Builder
	for _, seg := range operand {
		v, err := resolveSegment(seg, resolver)
		if err != nil {
			return nil, err
		}
		if seg.IsToken() {
			text, _ := Coerce(v, FieldTypeText)
			if !text.IsNull {
				sb.WriteString(text.Value.(string))
			}
			continue
		}
		sb.WriteString(seg.Value)
	}
	return sb.String(), nil
}

func resolveSegment(seg types.ValueSegment, resolver TokenResolver) (any, error) {
	if !seg.IsToken() {
		return literalValue(seg.Value), nil
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: no resolver for token %q", types.ErrFieldNotFound, seg.Value)
	}
	return resolver.ResolveToken(seg.Value)
}

// coerceFor converts both operands to the types op compares.
func coerceFor(op Operator, left, right any) (any, any, error) {
	var ft FieldType
	switch {
	case op.isOrdering():
		ft = FieldTypeNumeric
	case op == OpStartsWith, op == OpNotStartsWith, op == OpEndsWith, op == OpNotEndsWith:
		ft = FieldTypeText
	case op == OpContains, op == OpNotContains:
		if _, isText := left.(string); !isText {
			return left, right, nil
		}
		ft = FieldTypeText
	default:
		return left, right, nil
	}

	l, err := Coerce(left, ft)
	if err != nil || l.IsNull {
		return nil, nil, fmt.Errorf("%w: %s operand1 %v", types.ErrCoercionFailed, op, left)
	}
	r, err := Coerce(right, ft)
	if err != nil || r.IsNull {
		return nil, nil, fmt.Errorf("%w: %s operand2 %v", types.ErrCoercionFailed, op, right)
	}
	return l.Value, r.Value, nil
}
