package expression

import (
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

// ShouldQuote reports whether a segment's value is single-quoted in the
// expression text. Tokens, numbers and booleans are written bare.
func ShouldQuote(seg types.ValueSegment) bool {
	if seg.IsToken() {
		return false
	}
	if seg.Value != "" && (IsNumber(seg.Value) || IsBoolean(seg.Value)) {
		return false
	}
	return true
}

// RemoveQuotes strips exactly one layer of matching single or double quotes.
// Strings not wrapped in a matching pair are returned unchanged; a lone quote
// is not a pair.
func RemoveQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '\'' || first == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// quoteLiteral wraps s in single quotes, doubling embedded quotes.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
