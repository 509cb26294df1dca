package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/JayabrataBasu/sqlast/internal/config"
	"github.com/JayabrataBasu/sqlast/internal/logger"
	"github.com/JayabrataBasu/sqlast/pkg/sql"
)

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sql")
	if err := os.WriteFile(path, []byte("COMMIT;"), 0644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	got, err := ReadSource(path, nil)
	if err != nil || got != "COMMIT;" {
		t.Errorf("ReadSource(file) = %q, %v", got, err)
	}

	got, err = ReadSource("-", strings.NewReader("BEGIN;"))
	if err != nil || got != "BEGIN;" {
		t.Errorf("ReadSource(-) = %q, %v", got, err)
	}

	if _, err := ReadSource(filepath.Join(t.TempDir(), "missing.sql"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunParse(t *testing.T) {
	cfg := config.Default()
	cfg.Parse.Workers = 2

	var logs bytes.Buffer
	log, err := logger.NewWithWriter("info", "json", &logs)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	var out bytes.Buffer
	src := "CREATE TABLE t (a INTEGER); INSERT INTO t VALUES (1); COMMIT;"
	if err := RunParse(context.Background(), &out, cfg, log, "t.sql", src, "json"); err != nil {
		t.Fatalf("RunParse: %v", err)
	}
	for _, s := range []string{"CreateTableStmt", "InsertStmt", "CommitStmt"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %s:\n%s", s, out.String())
		}
	}
	for _, field := range []string{`"statements":3`, `"logger":"parse"`, `"file":"t.sql"`} {
		if !strings.Contains(logs.String(), field) {
			t.Errorf("log missing %s: %s", field, logs.String())
		}
	}
}

func TestRunParseError(t *testing.T) {
	var out bytes.Buffer
	err := RunParse(context.Background(), &out, config.Default(), logger.NewNop(), "bad.sql", "SELECT 1; DROP;", "yaml")
	if err == nil {
		t.Fatal("Expected parse error")
	}
	var pe *sql.ParseError
	if !errors.As(err, &pe) || pe.Kind != sql.KindSyntax {
		t.Errorf("error = %v, want a syntax ParseError", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on error: %s", out.String())
	}
}

func TestRunExpr(t *testing.T) {
	var out bytes.Buffer
	if err := RunExpr(&out, "a IS NOT NULL", "yaml"); err != nil {
		t.Fatalf("RunExpr: %v", err)
	}
	if !strings.Contains(out.String(), "QualifiedColumn") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if err := RunExpr(&out, "1 +", "yaml"); err == nil {
		t.Error("Expected error for incomplete expression")
	}
}
