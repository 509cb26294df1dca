package sql

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

// asParseError fails the test unless err is a *ParseError.
func asParseError(tb testing.TB, err error) *ParseError {
	tb.Helper()
	if err == nil {
		tb.Fatal("got nil error, want *ParseError")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		tb.Fatalf("error %v (%T) is not a *ParseError", err, err)
	}
	return pe
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"SELEC 1", 1, 1},
		{"SELECT 1 +", 1, 11},
		{"SELECT *\nFROM", 2, 5},
		{"CREATE TABLE t (", 1, 17},
		{"INSERT INTO t VALUES (1", 1, 24},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			pe := asParseError(t, err)
			if pe.Kind != KindSyntax {
				t.Fatalf("Kind = %s, want syntax", pe.Kind)
			}
			var se *grammar.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %v does not wrap a *grammar.SyntaxError", err)
			}
			if se.Line != tt.line || se.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Column, tt.line, tt.column)
			}
		})
	}
}

func TestParseRejectsTransactionControl(t *testing.T) {
	_, err := Parse("SELECT 1; COMMIT")
	pe := asParseError(t, err)
	if pe.Kind != KindSyntax {
		t.Fatalf("Kind = %s, want syntax", pe.Kind)
	}
	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error %v does not wrap a *grammar.SyntaxError", err)
	}
	if se.Pos != 10 {
		t.Errorf("Pos = %d, want 10", se.Pos)
	}
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		rule  cst.Rule
	}{
		{
			name: "expr with two operands",
			build: func() error {
				_, err := BuildExpr(node(cst.RuleExpr, numberNode("1"), numberNode("2")))
				return err
			},
			rule: cst.RuleExpr,
		},
		{
			name: "empty expr",
			build: func() error {
				_, err := BuildExpr(node(cst.RuleExpr))
				return err
			},
			rule: cst.RuleExpr,
		},
		{
			name: "expr ending in an operator",
			build: func() error {
				_, err := BuildExpr(node(cst.RuleExpr, numberNode("1"), leaf(cst.RulePlus, "+")))
				return err
			},
			rule: cst.RuleExpr,
		},
		{
			name: "wrong rule for literal",
			build: func() error {
				_, err := BuildLiteral(identNode("x"))
				return err
			},
			rule: cst.RuleUnknown,
		},
		{
			name: "schema object with three parts",
			build: func() error {
				_, err := BuildSchemaObject(node(cst.RuleSchemaObject, identNode("a"), identNode("b"), identNode("c")))
				return err
			},
			rule: cst.RuleSchemaObject,
		},
		{
			name: "statement node of unknown kind",
			build: func() error {
				_, err := BuildNode(node(cst.RuleExpr))
				return err
			},
			rule: cst.RuleUnknown,
		},
		{
			name: "nil node",
			build: func() error {
				_, err := BuildStatement(nil)
				return err
			},
			rule: cst.RuleUnknown,
		},
		{
			name: "trigger without body",
			build: func() error {
				_, err := BuildCreateTrigger(node(cst.RuleCreateTrigger,
					node(cst.RuleSchemaObject, identNode("t")),
					leaf(cst.RuleTriggerDelete, "DELETE"),
					identNode("e"),
				))
				return err
			},
			rule: cst.RuleCreateTrigger,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if err == nil {
				t.Fatal("build succeeded, want structural error")
			}
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("error %v (%T) is not a *StructuralError", err, err)
			}
			if se.Rule != tt.rule {
				t.Errorf("Rule = %s, want %s", se.Rule, tt.rule)
			}
			if kind := wrapError(err).(*ParseError).Kind; kind != KindStructural {
				t.Errorf("wrapped Kind = %s, want structural", kind)
			}
		})
	}
}

func TestStructuralErrorCarriesStack(t *testing.T) {
	_, err := BuildExpr(node(cst.RuleExpr))
	wrapped := wrapError(err)
	if !strings.Contains(fmt.Sprintf("%+v", wrapped), "sqlast/pkg/sql.") {
		t.Errorf("%%+v output has no stack trace:\n%+v", wrapped)
	}
	if strings.Contains(wrapped.Error(), "\n") {
		t.Errorf("Error() = %q, want a single line", wrapped.Error())
	}
}

func TestWrapErrorKeepsParseError(t *testing.T) {
	pe := &ParseError{Kind: KindSyntax, Err: grammar.NewSyntaxError("x", 0, "x")}
	if got := wrapError(pe); got != pe {
		t.Errorf("wrapError rewrapped a *ParseError: %v", got)
	}
	if wrapError(nil) != nil {
		t.Error("wrapError(nil) != nil")
	}
}

const parallelScript = `
	BEGIN;
	CREATE TABLE users (id integer primary key, name text not null);
	INSERT INTO users VALUES (1, 'Alice'), (2, 'Bob');
	UPDATE users SET name = 'Carol' WHERE id = 2;
	SELECT id, name FROM users WHERE id > 0 ORDER BY name DESC;
	CREATE INDEX idx_name ON users (name);
	DELETE FROM users WHERE id = 1;
	DROP TABLE users;
	COMMIT;
`

func TestParseParallelMatchesParseScript(t *testing.T) {
	want, err := ParseScript(parallelScript)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := ParseParallel(context.Background(), parallelScript, workers)
			if err != nil {
				t.Fatalf("ParseParallel: %v", err)
			}
			assertEqual(t, got, want)
		})
	}
}

func TestParseParallelSyntaxError(t *testing.T) {
	_, err := ParseParallel(context.Background(), "SELECT 1; SELEC 2", 4)
	if pe := asParseError(t, err); pe.Kind != KindSyntax {
		t.Errorf("Kind = %s, want syntax", pe.Kind)
	}
}

func TestParseParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseParallel(ctx, parallelScript, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	first, err := ParseScript(parallelScript)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ParseScript(parallelScript)
		if err != nil {
			t.Fatalf("ParseScript: %v", err)
		}
		assertEqual(t, again, first)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  ", ";", "-- only a comment\n"} {
		stmts, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)
			continue
		}
		if len(stmts) != 0 {
			t.Errorf("Parse(%q) = %d statements, want 0", input, len(stmts))
		}
	}
}

func TestParseKeepsInputOrder(t *testing.T) {
	stmts, err := Parse("DELETE FROM a; DELETE FROM b; DELETE FROM c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []ast.Statement{
		&ast.DeleteStmt{Table: table("a")},
		&ast.DeleteStmt{Table: table("b")},
		&ast.DeleteStmt{Table: table("c")},
	}
	assertEqual(t, stmts, want)
}
