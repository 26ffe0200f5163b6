package expression

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/querybuilder/internal/types"
)

func TestRemoveQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "abc", want: "abc"},
		{in: "'abc", want: "'abc"},
		{in: "abc'", want: "abc'"},
		{in: "'abc'", want: "abc"},
		{in: `"abc"`, want: "abc"},
		{in: `'abc"`, want: `'abc"`},
		{in: "''abc''", want: "'abc'"},
		{in: "''", want: ""},
		{in: "'", want: "'"},
		{in: `"`, want: `"`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := RemoveQuotes(tt.in); got != tt.want {
				t.Errorf("RemoveQuotes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldQuote(t *testing.T) {
	tests := []struct {
		name string
		seg  types.ValueSegment
		want bool
	}{
		{name: "text", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: "abc"}, want: true},
		{name: "empty", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: ""}, want: true},
		{name: "integer", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: "42"}, want: false},
		{name: "decimal", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: "-3.5e2"}, want: false},
		{name: "padded number", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: " 5"}, want: true},
		{name: "boolean", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: "True"}, want: false},
		{name: "null text", seg: types.ValueSegment{Type: types.SegmentLiteral, Value: "null"}, want: true},
		{name: "token", seg: types.ValueSegment{Type: types.SegmentToken, Value: "body()"}, want: false},
		{name: "token with text value", seg: types.ValueSegment{Type: types.SegmentToken, Value: "abc"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldQuote(tt.seg); got != tt.want {
				t.Errorf("ShouldQuote(%+v) = %v, want %v", tt.seg, got, tt.want)
			}
		})
	}
}

// Property-based test: unwrapped strings pass through
func TestRemoveQuotes_PropertyNoopWhenUnwrapped(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("strings without a matching quote pair are unchanged", prop.ForAll(
		func(s string) bool {
			return RemoveQuotes(s) == s
		},
		gen.AnyString().SuchThat(func(s string) bool {
			return len(s) < 2 || s[0] != s[len(s)-1] || (s[0] != '\'' && s[0] != '"')
		}),
	))

	properties.TestingRun(t)
}

// Property-based test: exactly one layer is removed
func TestRemoveQuotes_PropertyOneLayer(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("stripping a wrapped string yields its body", prop.ForAll(
		func(body string, double bool, layers int) bool {
			q := "'"
			if double {
				q = `"`
			}
			wrapped := strings.Repeat(q, layers) + body + strings.Repeat(q, layers)
			want := strings.Repeat(q, layers-1) + body + strings.Repeat(q, layers-1)
			return RemoveQuotes(wrapped) == want
		},
		gen.AlphaString(),
		gen.Bool(),
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}

func TestQuoteLiteral(t *testing.T) {
	if got := quoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("quoteLiteral(it's) = %q", got)
	}
	if got := quoteLiteral(""); got != "''" {
		t.Errorf("quoteLiteral(\"\") = %q", got)
	}
}
