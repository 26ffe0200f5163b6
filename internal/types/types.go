// Package types provides domain models shared across querybuilder components.
//
// types.go depends only on the JSON codec and errors.go on nothing, so the row
// model can be embedded by callers without pulling in the converter.
// ID utilities in ids.go import uuid but are isolated in their own file.
package types

import (
	"time"

	"github.com/goccy/go-json"
)

// SegmentID identifies a single ValueSegment.
// Generated per segment and never reused across edits.
type SegmentID string

// SegmentType tags the ValueSegment variant.
type SegmentType string

const (
	// SegmentLiteral carries a raw string typed by the user.
	SegmentLiteral SegmentType = "literal"

	// SegmentToken carries a reference to an external data token.
	// The reference text is rendered unquoted; the host editor resolves it.
	SegmentToken SegmentType = "token"
)

// ValueSegment is one fragment of an editable value.
type ValueSegment struct {
	ID    SegmentID   `json:"id"`
	Type  SegmentType `json:"type"`
	Value string      `json:"value"`

	// Token is the opaque token descriptor supplied by the host surface.
	// Never interpreted here, only carried along.
	Token json.RawMessage `json:"token,omitempty"`
}

// IsToken reports whether the segment references an external token.
func (s ValueSegment) IsToken() bool {
	return s.Type == SegmentToken
}

// GroupType distinguishes a single condition row from a group container.
type GroupType string

const (
	GroupTypeRow   GroupType = "row"
	GroupTypeGroup GroupType = "group"
)

// RowItem is the structured form of a single comparison condition.
// Operator may be empty; the converter then applies its default operator.
type RowItem struct {
	Operator string         `json:"operator,omitempty"`
	Operand1 []ValueSegment `json:"operand1"`
	Operand2 []ValueSegment `json:"operand2"`
	Type     GroupType      `json:"type"`
}

// SchemaType is the document format of a mapping schema.
type SchemaType string

const (
	SchemaTypeXML  SchemaType = "xml"
	SchemaTypeJSON SchemaType = "json"
)

// Schema is a source or target schema used by the data mapper.
// Content holds the raw schema document; parsing it belongs to the mapper.
type Schema struct {
	Name            string            `json:"name"`
	FileName        string            `json:"fileName"`
	FilePath        string            `json:"filePath"`
	Type            SchemaType        `json:"type"`
	TargetNamespace string            `json:"targetNamespace,omitempty"`
	Namespaces      map[string]string `json:"namespaces,omitempty"`
	Content         string            `json:"content"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Resource limits for token path resolution.
const (
	// MaxPathDepth prevents unbounded recursion when resolving token paths.
	// 16 levels handles deeply nested payloads (body.a.b.c...) comfortably.
	MaxPathDepth = 16
)

// PathSegment represents one component of a token path.
// Key for object members, Index for array elements.
type PathSegment struct {
	Key     string // object key (mutually exclusive with Index)
	Index   int    // array index
	IsIndex bool   // disambiguates Index=0 from unset
}
