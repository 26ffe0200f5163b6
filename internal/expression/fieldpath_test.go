package expression

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/querybuilder/internal/types"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    []types.PathSegment
		wantErr error
	}{
		{name: "single key", ref: "status", want: []types.PathSegment{{Key: "status"}}},
		{name: "root marker", ref: "$.a.b", want: []types.PathSegment{{Key: "a"}, {Key: "b"}}},
		{
			name: "indices",
			ref:  "items[0].tags[2][1]",
			want: []types.PathSegment{
				{Key: "items"}, {Index: 0, IsIndex: true},
				{Key: "tags"}, {Index: 2, IsIndex: true}, {Index: 1, IsIndex: true},
			},
		},
		{name: "root array index", ref: "[3]", want: []types.PathSegment{{Index: 3, IsIndex: true}}},
		{name: "empty", ref: "", wantErr: types.ErrFieldNotFound},
		{name: "empty segment", ref: "a..b", wantErr: types.ErrFieldNotFound},
		{name: "unclosed index", ref: "a[1", wantErr: types.ErrFieldNotFound},
		{name: "dangling bracket", ref: "a[", wantErr: types.ErrFieldNotFound},
		{name: "trailing bracket", ref: "a[0][", wantErr: types.ErrFieldNotFound},
		{name: "negative index", ref: "a[-1]", wantErr: types.ErrFieldNotFound},
		{name: "text after index", ref: "a[0]b", wantErr: types.ErrFieldNotFound},
		{name: "too deep", ref: strings.Repeat("a.", types.MaxPathDepth) + "a", wantErr: types.ErrPathTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParsePath(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.ref, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	var data any
	if err := json.Unmarshal([]byte(`{"a": {"b": [10, {"c": "deep"}]}, "n": null}`), &data); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    []types.PathSegment
		want    any
		wantErr error
	}{
		{name: "nested object and array", path: []types.PathSegment{{Key: "a"}, {Key: "b"}, {Index: 1, IsIndex: true}, {Key: "c"}}, want: "deep"},
		{name: "array element", path: []types.PathSegment{{Key: "a"}, {Key: "b"}, {Index: 0, IsIndex: true}}, want: 10.0},
		{name: "explicit null", path: []types.PathSegment{{Key: "n"}}, want: nil},
		{name: "empty path returns root", path: nil, want: data},
		{name: "missing key", path: []types.PathSegment{{Key: "x"}}, wantErr: types.ErrFieldNotFound},
		{name: "index out of range", path: []types.PathSegment{{Key: "a"}, {Key: "b"}, {Index: 5, IsIndex: true}}, wantErr: types.ErrFieldNotFound},
		{name: "index into object", path: []types.PathSegment{{Key: "a"}, {Index: 0, IsIndex: true}}, wantErr: types.ErrFieldNotFound},
		{name: "key into array", path: []types.PathSegment{{Key: "a"}, {Key: "b"}, {Key: "c"}}, wantErr: types.ErrFieldNotFound},
		{name: "child of scalar", path: []types.PathSegment{{Key: "n"}, {Key: "x"}}, wantErr: types.ErrFieldNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path, data)
			if err != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNewPayloadResolver_InvalidJSON(t *testing.T) {
	if _, err := NewPayloadResolver(json.RawMessage(`{"a":`)); err == nil {
		t.Error("NewPayloadResolver() error = nil, want decode error")
	}
}

// Property-based test: path parsing never crashes
func TestParsePath_PropertyNeverCrashes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	resolver, err := NewPayloadResolver(json.RawMessage(`{"key": [{"key": "value"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("resolving arbitrary references never panics", prop.ForAll(
		func(ref string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("ResolveToken(%q) panicked: %v", ref, r)
				}
			}()
			_, _ = resolver.ResolveToken(ref)
			return true
		},
		gen.OneGenOf(
			gen.AnyString(),
			gen.RegexMatch(`[a-z\[\]0-9.]{0,20}`),
		),
	))

	properties.TestingRun(t)
}
