package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/solatis/querybuilder/internal/types"
)

// run executes the root command. Flags persist between runs on the shared
// command tree, so callers pass every flag they depend on.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSerializeAndParse(t *testing.T) {
	chdir(t, t.TempDir())

	row := `{"operator":"contains","type":"row",
		"operand1":[{"id":"a","type":"token","value":"body.name"}],
		"operand2":[{"id":"b","type":"literal","value":"it's"}]}`

	out, err := run(t, row, "serialize", "--row", "-")
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	expr := strings.TrimSpace(out)
	if expr != "@contains(body.name,'it''s')" {
		t.Fatalf("serialize = %q", expr)
	}

	prevPath := filepath.Join(t.TempDir(), "prev.json")
	if err := os.WriteFile(prevPath, []byte(row), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err = run(t, "", "parse", expr, "--previous", prevPath)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var parsed types.RowItem
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("parse output is not a row: %v\n%s", err, out)
	}
	if parsed.Operand1[0].ID != "a" || !parsed.Operand1[0].IsToken() {
		t.Errorf("operand1 should keep token segment, got %+v", parsed.Operand1[0])
	}
	if parsed.Operand2[0].ID != "b" || parsed.Operand2[0].Value != "it's" {
		t.Errorf("operand2 should keep literal segment, got %+v", parsed.Operand2[0])
	}

	if _, err := run(t, "", "parse", "@contains(a", "--previous", ""); err == nil {
		t.Error("expected malformed expression error")
	}
}

func TestEvaluateCommand(t *testing.T) {
	chdir(t, t.TempDir())

	payloadPath := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(payloadPath, []byte(`{"body":{"age":42}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "evaluate", "@greaterOrEquals(7,7)", "--payload", payloadPath, "--row", "")
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	var result struct {
		Matched bool `json:"matched"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("bad output: %v\n%s", err, out)
	}
	if !result.Matched {
		t.Errorf("expected match, got %s", out)
	}

	if _, err := run(t, "", "evaluate", "--payload", payloadPath, "--row", ""); err == nil {
		t.Error("expected error without EXPR or --row")
	}
}

func TestSchemaCommands(t *testing.T) {
	chdir(t, t.TempDir())
	dbArg := "sqlite://" + filepath.Join(t.TempDir(), "qb.db")

	xsdPath := filepath.Join(t.TempDir(), "orders.xsd")
	xsd := `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:orders"/>`
	if err := os.WriteFile(xsdPath, []byte(xsd), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "schema", "import", xsdPath, "--path", "/schemas", "--db-url", dbArg); err == nil {
		t.Fatal("expected error before migrations are applied")
	}

	if _, err := run(t, "", "migrate", "--status=false", "--db-url", dbArg); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	out, err := run(t, "", "migrate", "--status", "--db-url", dbArg)
	if err != nil {
		t.Fatalf("migrate --status failed: %v", err)
	}
	if !strings.Contains(out, "001_initial_schema.sql") || !strings.Contains(out, "applied") {
		t.Errorf("unexpected status output: %s", out)
	}

	if _, err := run(t, "", "schema", "import", xsdPath, "--path", "/schemas", "--db-url", dbArg); err != nil {
		t.Fatalf("schema import failed: %v", err)
	}

	out, err = run(t, "", "schema", "get", "orders.xsd", "--path", "/schemas", "--db-url", dbArg)
	if err != nil {
		t.Fatalf("schema get failed: %v", err)
	}
	var got types.Schema
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad output: %v\n%s", err, out)
	}
	if got.Content != xsd || got.TargetNamespace != "urn:orders" {
		t.Errorf("unexpected schema: %+v", got)
	}

	if _, err := run(t, "", "schema", "get", "missing.xsd", "--path", "/schemas", "--db-url", dbArg); err == nil {
		t.Error("expected error for missing schema")
	}
}

// chdir changes the working directory to dir and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
