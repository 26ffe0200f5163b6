// internal/expression/fieldpath.go
package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Token path resolution for JSON payloads.
 *
 * Token references are written as dotted paths with optional array indices:
 * body.items[0].name, with an optional leading "$." root marker. The payload
 * is parsed once per resolver and paths are walked against the decoded tree.
 *
 * Key functions:
 *   - ParsePath: Converts a reference into PathSegments
 *   - Resolve: Traverses decoded JSON following a PathSegment chain
 *
 * MaxPathDepth is enforced at parse time so resolution never recurses past it.
 */

// ParsePath converts a token reference into path segments.
// Returns ErrPathTooDeep past MaxPathDepth and ErrFieldNotFound for
// syntactically broken references.
func ParsePath(ref string) ([]types.PathSegment, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "$.")
	if ref == "" {
		return nil, fmt.Errorf("%w: empty path", types.ErrFieldNotFound)
	}

	var path []types.PathSegment
	for _, part := range strings.Split(ref, ".") {
		key, rest, hasIndex := strings.Cut(part, "[")
		if key == "" && !hasIndex {
			return nil, fmt.Errorf("%w: empty segment in %q", types.ErrFieldNotFound, ref)
		}
		if hasIndex && rest == "" {
			return nil, fmt.Errorf("%w: unclosed index in %q", types.ErrFieldNotFound, ref)
		}
		if key != "" {
			path = append(path, types.PathSegment{Key: key})
		}
		for rest != "" {
			idx, after, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, fmt.Errorf("%w: unclosed index in %q", types.ErrFieldNotFound, ref)
			}
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", types.ErrFieldNotFound, idx, ref)
			}
			path = append(path, types.PathSegment{Index: n, IsIndex: true})
			if after == "[" || (after != "" && !strings.HasPrefix(after, "[")) {
				return nil, fmt.Errorf("%w: unexpected %q in %q", types.ErrFieldNotFound, after, ref)
			}
			rest = strings.TrimPrefix(after, "[")
		}
	}

	if len(path) > types.MaxPathDepth {
		return nil, types.ErrPathTooDeep
	}
	return path, nil
}

// Resolve traverses decoded JSON data following path segments.
// Returns ErrFieldNotFound if the path does not exist in data.
func Resolve(path []types.PathSegment, data any) (any, error) {
	if len(path) > types.MaxPathDepth {
		return nil, types.ErrPathTooDeep
	}

	current := data
	for _, seg := range path {
		switch v := current.(type) {
		case map[string]any:
			if seg.IsIndex {
				// Cannot index into object with integer
				return nil, types.ErrFieldNotFound
			}
			val, ok := v[seg.Key]
			if !ok {
				return nil, types.ErrFieldNotFound
			}
			current = val
		case []any:
			if !seg.IsIndex || seg.Index >= len(v) {
				return nil, types.ErrFieldNotFound
			}
			current = v[seg.Index]
		default:
			// Scalars have no children
			return nil, types.ErrFieldNotFound
		}
	}
	return current, nil
}

// TokenResolver supplies values for token segments during evaluation.
type TokenResolver interface {
	ResolveToken(ref string) (any, error)
}

// PayloadResolver resolves token references against a JSON payload.
type PayloadResolver struct {
	root any
}

// NewPayloadResolver decodes payload once for repeated lookups.
func NewPayloadResolver(payload json.RawMessage) (*PayloadResolver, error) {
	var root any
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &PayloadResolver{root: root}, nil
}

// ResolveToken implements TokenResolver.
func (r *PayloadResolver) ResolveToken(ref string) (any, error) {
	path, err := ParsePath(ref)
	if err != nil {
		return nil, err
	}
	v, err := Resolve(path, r.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, ref)
	}
	return v, nil
}
