// internal/expression/scanner.go
package expression

import (
	"fmt"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Operand scanner.
 *
 * Finds top-level commas in an argument list while tracking quote state and
 * bracket depth, so quoted literals and token references such as
 * body('a,b')?['x'] may contain separators.
 *
 * Quoting:
 *   - '...': a doubled quote ('') is an escaped quote, not a terminator
 *   - "...": ends at the next double quote
 *
 * Brackets (), [] and {} share one depth counter; mismatched kinds are not
 * distinguished, only balance is checked.
 */

// scanSeparators returns the offsets of top-level commas in s.
// Fails with ErrMalformedExpression on unbalanced brackets or an
// unterminated quote.
func scanSeparators(s string) ([]int, error) {
	var seps []int
	var quote byte
	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				if quote == '\'' && i+1 < len(s) && s[i+1] == '\'' {
					i++
					continue
				}
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced %q at offset %d", types.ErrMalformedExpression, c, i)
			}
		case ',':
			if depth == 0 {
				seps = append(seps, i)
			}
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated %c quote", types.ErrMalformedExpression, quote)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: %d unclosed bracket(s)", types.ErrMalformedExpression, depth)
	}
	return seps, nil
}

// splitOperands splits an argument list at its single top-level comma.
func splitOperands(args string) (string, string, error) {
	seps, err := scanSeparators(args)
	if err != nil {
		return "", "", err
	}
	switch len(seps) {
	case 0:
		return "", "", fmt.Errorf("%w: missing operand separator", types.ErrMalformedExpression)
	case 1:
		return args[:seps[0]], args[seps[0]+1:], nil
	default:
		return "", "", fmt.Errorf("%w: expected 2 operands, got %d", types.ErrMalformedExpression, len(seps)+1)
	}
}

// closingQuote returns the offset of the quote closing the one at s[0],
// or -1 when it is never closed.
func closingQuote(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if q == '\'' && i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return i
	}
	return -1
}

// checkBareOperand verifies that an unquoted operand re-scans as exactly one
// operand and reads back unchanged: it may not open with a quote or carry
// surrounding whitespace, both of which parsing strips.
func checkBareOperand(s string) error {
	if s[0] == '\'' || s[0] == '"' {
		return fmt.Errorf("%w: %q starts with a quote", types.ErrUnsupportedOperandSyntax, s)
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("%w: %q has surrounding whitespace", types.ErrUnsupportedOperandSyntax, s)
	}
	seps, err := scanSeparators(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", types.ErrUnsupportedOperandSyntax, s, err)
	}
	if len(seps) > 0 {
		return fmt.Errorf("%w: %q contains a top-level comma", types.ErrUnsupportedOperandSyntax, s)
	}
	return nil
}
