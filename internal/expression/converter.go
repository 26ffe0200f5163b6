// internal/expression/converter.go
package expression

import (
	"fmt"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Row <-> text conversion for simple-mode conditions.
 *
 * A row {operator, operand1, operand2} is written as @operator(op1,op2).
 * Absent or empty operands are written as a bare null. Literal operands are
 * single-quoted unless they read as a number or boolean; tokens are written
 * as their raw reference text.
 *
 * Modes:
 *   - strict: quoted literals escape ' as ''; bare operands that would not
 *     re-scan as one operand are rejected; parsing validates the @op(a,b)
 *     shape and splits with the quote-aware scanner.
 *   - legacy: the historical format. No escaping, first-comma split, never
 *     fails. Values containing , or ) do not round-trip.
 *
 * Identity: parsing reuses the previous row's segment (same id, same
 * variant) when the operand text is unchanged, so downstream editors keep
 * their state; any changed value gets a new literal segment.
 */

// DefaultOperator is applied when a row carries no operator.
const DefaultOperator = "equals"

// Mode selects how strictly expressions are written and read.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeLegacy Mode = "legacy"
)

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict, "":
		return ModeStrict, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown converter mode %q (expected strict or legacy)", s)
	}
}

// nullOperand is written for absent or empty operands.
const nullOperand = "null"

// Options configures a Converter. Zero values select the defaults.
type Options struct {
	DefaultOperator string
	Mode            Mode
}

// Converter maps RowItems to expression text and back.
// Safe for concurrent use when its IDGenerator is.
type Converter struct {
	ids             types.IDGenerator
	defaultOperator string
	mode            Mode
}

// NewConverter creates a converter allocating segment ids from ids.
func NewConverter(ids types.IDGenerator, opts Options) *Converter {
	c := &Converter{
		ids:             ids,
		defaultOperator: opts.DefaultOperator,
		mode:            opts.Mode,
	}
	if c.defaultOperator == "" {
		c.defaultOperator = DefaultOperator
	}
	if c.mode == "" {
		c.mode = ModeStrict
	}
	return c
}

// Mode returns the converter's mode.
func (c *Converter) Mode() Mode {
	return c.mode
}

// Serialize renders row as @operator(op1,op2).
// In strict mode returns ErrInvalidOperator for a non-identifier operator and
// ErrUnsupportedOperandSyntax for bare operands that would not parse back.
func (c *Converter) Serialize(row types.RowItem) (string, error) {
	op := row.Operator
	if op == "" {
		op = c.defaultOperator
	}
	if c.mode == ModeStrict && !isIdentifier(op) {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidOperator, op)
	}

	op1, err := c.renderOperand(row.Operand1)
	if err != nil {
		return "", fmt.Errorf("operand1: %w", err)
	}
	op2, err := c.renderOperand(row.Operand2)
	if err != nil {
		return "", fmt.Errorf("operand2: %w", err)
	}

	return "@" + op + "(" + op1 + "," + op2 + ")", nil
}

// renderOperand writes the first segment of an operand, or null.
func (c *Converter) renderOperand(operand []types.ValueSegment) (string, error) {
	if len(operand) == 0 || operand[0].Value == "" {
		return nullOperand, nil
	}
	seg := operand[0]

	if ShouldQuote(seg) {
		if c.mode == ModeLegacy {
			return "'" + seg.Value + "'", nil
		}
		return quoteLiteral(seg.Value), nil
	}

	if c.mode == ModeStrict {
		if err := checkBareOperand(seg.Value); err != nil {
			return "", err
		}
	}
	return seg.Value, nil
}

// Parse reads an expression back into a row. previous is the row the text
// was derived from (zero value if none); its segments are reused for
// operands whose value did not change.
func (c *Converter) Parse(text string, previous types.RowItem) (types.RowItem, error) {
	var op, v1, v2 string
	var err error

	if c.mode == ModeLegacy {
		op, v1, v2 = parseLegacy(text)
		if op == "" {
			op = c.defaultOperator
		}
	} else {
		op, v1, v2, err = parseStrict(text)
		if err != nil {
			return types.RowItem{}, err
		}
	}

	return types.RowItem{
		Operator: op,
		Operand1: c.reuseOrAllocate(previous.Operand1, v1),
		Operand2: c.reuseOrAllocate(previous.Operand2, v2),
		Type:     types.GroupTypeRow,
	}, nil
}

// reuseOrAllocate keeps the previous single segment when value is unchanged.
func (c *Converter) reuseOrAllocate(prev []types.ValueSegment, value string) []types.ValueSegment {
	if len(prev) == 1 && prev[0].Value == value {
		return []types.ValueSegment{prev[0]}
	}
	return []types.ValueSegment{{
		ID:    c.ids.NewSegmentID(),
		Type:  types.SegmentLiteral,
		Value: value,
	}}
}

// parseStrict validates the @op(a,b) shape and splits with the scanner.
func parseStrict(text string) (op, v1, v2 string, err error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "@") {
		return "", "", "", fmt.Errorf("%w: missing leading @ in %q", types.ErrMalformedExpression, text)
	}
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", "", "", fmt.Errorf("%w: missing ( in %q", types.ErrMalformedExpression, text)
	}
	if !strings.HasSuffix(s, ")") {
		return "", "", "", fmt.Errorf("%w: missing closing ) in %q", types.ErrMalformedExpression, text)
	}

	op = s[1:open]
	if !isIdentifier(op) {
		return "", "", "", fmt.Errorf("%w: bad operator %q in %q", types.ErrMalformedExpression, op, text)
	}

	a, b, err := splitOperands(s[open+1 : len(s)-1])
	if err != nil {
		return "", "", "", err
	}
	if v1, err = unquoteOperand(strings.TrimSpace(a)); err != nil {
		return "", "", "", err
	}
	if v2, err = unquoteOperand(strings.TrimSpace(b)); err != nil {
		return "", "", "", err
	}
	return op, v1, v2, nil
}

// unquoteOperand strips one layer of quotes from a quoted operand and
// un-doubles escaped single quotes. A quoted operand must be one literal.
func unquoteOperand(s string) (string, error) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return s, nil
	}
	if end := closingQuote(s); end != len(s)-1 {
		return "", fmt.Errorf("%w: trailing text after quoted operand %q", types.ErrMalformedExpression, s)
	}
	if s[0] == '\'' {
		return strings.ReplaceAll(RemoveQuotes(s), "''", "'"), nil
	}
	return RemoveQuotes(s), nil
}

// parseLegacy is the historical best-effort reader: operator between the
// first @ and first (, operands from a plain comma split. Missing pieces
// come back empty.
func parseLegacy(text string) (op, v1, v2 string) {
	at := strings.IndexByte(text, '@')
	open := strings.IndexByte(text, '(')
	if open > at {
		op = text[at+1 : open]
	}

	parts := strings.SplitN(text, ",", 3)

	first := parts[0]
	v1 = RemoveQuotes(strings.TrimSpace(first[strings.IndexByte(first, '(')+1:]))

	if len(parts) > 1 {
		second := parts[1]
		if end := strings.LastIndexByte(second, ')'); end >= 0 {
			v2 = RemoveQuotes(strings.TrimSpace(second[:end]))
		}
	}
	return op, v1, v2
}

// isIdentifier reports whether s matches [A-Za-z][A-Za-z0-9_]*.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}
	return true
}
