package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/core/db"
	"github.com/solatis/querybuilder/internal/types"
)

// Store is a Fetcher backed by the schema_files table.
type Store struct {
	queries *db.Queries
	now     func() time.Time
}

// NewStore wraps loaded named queries.
func NewStore(queries *db.Queries) *Store {
	return &Store{queries: queries, now: time.Now}
}

// schemaRow mirrors a schema_files row.
type schemaRow struct {
	FileName        string `db:"file_name"`
	FilePath        string `db:"file_path"`
	Name            string `db:"name"`
	SchemaType      string `db:"schema_type"`
	TargetNamespace string `db:"target_namespace"`
	Namespaces      string `db:"namespaces"`
	Content         string `db:"content"`
	CreatedAt       string `db:"created_at"`
}

func (r schemaRow) toSchema() (*types.Schema, error) {
	s := &types.Schema{
		Name:            r.Name,
		FileName:        r.FileName,
		FilePath:        r.FilePath,
		Type:            types.SchemaType(r.SchemaType),
		TargetNamespace: r.TargetNamespace,
		Content:         r.Content,
	}

	if r.Namespaces != "" {
		if err := json.Unmarshal([]byte(r.Namespaces), &s.Namespaces); err != nil {
			return nil, fmt.Errorf("decode namespaces for %s: %w", r.FileName, err)
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at for %s: %w", r.FileName, err)
	}
	s.CreatedAt = createdAt
	return s, nil
}

// GetSchemaFile implements Fetcher.
func (s *Store) GetSchemaFile(ctx context.Context, fileName, schemaFilePath string) (*types.Schema, error) {
	var row schemaRow
	err := s.queries.GetContext(ctx, "get-schema-file", &row, fileName, schemaFilePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s in %s: %w", fileName, schemaFilePath, types.ErrSchemaNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query schema file: %w", err)
	}
	return row.toSchema()
}

// ListSchemaFiles returns the schemas stored under a path, ordered by file
// name. Content is left empty.
func (s *Store) ListSchemaFiles(ctx context.Context, schemaFilePath string) ([]*types.Schema, error) {
	var rows []schemaRow
	if err := s.queries.SelectContext(ctx, "list-schema-files", &rows, schemaFilePath); err != nil {
		return nil, fmt.Errorf("list schema files: %w", err)
	}

	schemas := make([]*types.Schema, 0, len(rows))
	for _, r := range rows {
		schema, err := r.toSchema()
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

// PutSchemaFile imports a schema document, replacing any existing file with
// the same name and path. Type, name and namespaces are read from the file
// name and content.
func (s *Store) PutSchemaFile(ctx context.Context, fileName, schemaFilePath, content string) (*types.Schema, error) {
	schemaType, err := TypeForFile(fileName)
	if err != nil {
		return nil, err
	}

	targetNamespace, namespaces, err := describe(schemaType, content)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", fileName, err)
	}

	encoded, err := json.Marshal(namespaces)
	if err != nil {
		return nil, fmt.Errorf("encode namespaces: %w", err)
	}

	schema := &types.Schema{
		Name:            NameForFile(fileName),
		FileName:        fileName,
		FilePath:        schemaFilePath,
		Type:            schemaType,
		TargetNamespace: targetNamespace,
		Namespaces:      namespaces,
		Content:         content,
		CreatedAt:       s.now().UTC().Truncate(time.Second),
	}

	_, err = s.queries.ExecContext(ctx, "upsert-schema-file",
		schema.FileName,
		schema.FilePath,
		schema.Name,
		string(schema.Type),
		schema.TargetNamespace,
		string(encoded),
		schema.Content,
		schema.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("store schema file: %w", err)
	}
	return schema, nil
}
