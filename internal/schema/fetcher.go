// Package schema retrieves the source and target schemas used by the data
// mapper.
package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/solatis/querybuilder/internal/types"
)

// Fetcher loads a schema file by name from a schema directory.
type Fetcher interface {
	GetSchemaFile(ctx context.Context, fileName, schemaFilePath string) (*types.Schema, error)
}

// GetSelectedSchema fetches the schema the user selected. Failures surface to
// the caller unchanged apart from wrapping; there is no retry or caching.
func GetSelectedSchema(ctx context.Context, f Fetcher, fileName, schemaFilePath string) (*types.Schema, error) {
	slog.DebugContext(ctx, "fetching schema", "file_name", fileName, "path", schemaFilePath)

	s, err := f.GetSchemaFile(ctx, fileName, schemaFilePath)
	if err != nil {
		return nil, fmt.Errorf("get schema %s in %s: %w", fileName, schemaFilePath, err)
	}

	slog.DebugContext(ctx, "fetched schema", "name", s.Name, "type", s.Type, "bytes", len(s.Content))
	return s, nil
}
