package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestDataSourceFor(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantDSN    string
		wantErr    bool
	}{
		{url: "sqlite://qb.db", wantDriver: "sqlite3", wantDSN: "file:qb.db?_busy_timeout=5000"},
		{url: "sqlite:///var/lib/qb.db", wantDriver: "sqlite3", wantDSN: "file:/var/lib/qb.db?_busy_timeout=5000"},
		{url: "postgres://u:p@localhost:5432/qb?sslmode=disable", wantDriver: "postgres", wantDSN: "postgres://u:p@localhost:5432/qb?sslmode=disable"},
		{url: "postgresql://localhost/qb", wantDriver: "postgres", wantDSN: "postgresql://localhost/qb"},
		{url: "mysql://localhost/qb", wantErr: true},
		{url: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := dataSourceFor(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got driver=%s dsn=%s", driver, dsn)
				}
				return
			}
			if err != nil {
				t.Fatalf("dataSourceFor failed: %v", err)
			}
			if driver != tt.wantDriver {
				t.Errorf("driver = %s, want %s", driver, tt.wantDriver)
			}
			if dsn != tt.wantDSN {
				t.Errorf("dsn = %s, want %s", dsn, tt.wantDSN)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	sql := `-- header comment
-- second line

CREATE TABLE a (id TEXT);
  -- indented comment
CREATE INDEX idx_a ON a (id);
;
`
	got := splitStatements(sql)
	want := []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX idx_a ON a (id)"}
	if len(got) != len(want) {
		t.Fatalf("got %d statements %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func openTestDB(t *testing.T) *Queries {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "qb.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	q, err := LoadQueries(db)
	if err != nil {
		t.Fatalf("LoadQueries failed: %v", err)
	}
	return q
}

func TestMigrateUp(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	// Second run is a no-op
	if err := MigrateUp(ctx, q.DB()); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}

	statuses, err := MigrateStatus(ctx, q.DB())
	if err != nil {
		t.Fatalf("MigrateStatus failed: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(statuses))
	}
	if !statuses[0].Applied || statuses[0].ID != "001_initial_schema.sql" {
		t.Errorf("unexpected status: %+v", statuses[0])
	}
	if statuses[0].AppliedAt == nil {
		t.Error("expected applied_at to be set")
	}
}

func TestMigrateUp_ChecksumMismatch(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	if _, err := q.DB().ExecContext(ctx, "UPDATE migrations SET checksum = 'tampered'"); err != nil {
		t.Fatal(err)
	}
	if err := MigrateUp(ctx, q.DB()); err == nil {
		t.Fatal("expected checksum validation error")
	}
}

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

func TestQueries(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339)

	upsert := func(content string) {
		t.Helper()
		if _, err := q.ExecContext(ctx, "upsert-schema-file",
			"orders.xsd", "/schemas", "orders", "xml", "urn:orders", `{"o":"urn:orders"}`, content, now,
		); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	upsert("<xs:schema/>")
	upsert("<xs:schema version=\"2\"/>")

	var row schemaRow
	if err := q.GetContext(ctx, "get-schema-file", &row, "orders.xsd", "/schemas"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if row.Content != "<xs:schema version=\"2\"/>" {
		t.Errorf("upsert did not replace content: %q", row.Content)
	}

	var rows []schemaRow
	if err := q.SelectContext(ctx, "list-schema-files", &rows, "/schemas"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Content != "" {
		t.Errorf("unexpected list result: %+v", rows)
	}

	err := q.GetContext(ctx, "get-schema-file", &row, "missing.xsd", "/schemas")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}

	if _, err := q.ExecContext(ctx, "no-such-query"); err == nil {
		t.Error("expected error for unknown query name")
	}
}
