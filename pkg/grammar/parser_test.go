package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

func TestParseRuleShapes(t *testing.T) {
	tests := []struct {
		rule  cst.Rule
		input string
		want  string
	}{
		{cst.RuleExpr, "1 + 2", `(expr (literal number("1")) plus("+") (literal number("2")))`},
		{cst.RuleExpr, "-a IS NOT NULL", `(expr negative("-") (qualified_column (ident ident_bare("a"))) is_not("IS NOT") (literal null("NULL")))`},
		{cst.RuleExpr, "(1, 'x')", `(expr (exprs (expr (literal number("1"))) (expr (literal string("'x'")))))`},
		{cst.RuleLiteral, "-12", `(literal number("-12"))`},
		{cst.RuleIdent, `"Mixed"`, `(ident ident_quoted("\"Mixed\""))`},
		{cst.RuleSchemaObject, "main.users", `(schema_object (ident ident_bare("main")) (ident ident_bare("users")))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := ParseRule(tt.rule, tt.input)
			if err != nil {
				t.Fatalf("ParseRule(%s, %q): %v", tt.rule, tt.input, err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	src := "SELECT 1;  DELETE FROM t"
	nodes, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d statements, want 2", len(nodes))
	}
	if nodes[0].Rule != cst.RuleSelect || nodes[0].Text != "SELECT 1" {
		t.Errorf("first = %s %q", nodes[0].Rule, nodes[0].Text)
	}
	if nodes[1].Rule != cst.RuleDelete || nodes[1].Span != (cst.Span{Start: 11, End: 24}) {
		t.Errorf("second = %s %v", nodes[1].Rule, nodes[1].Span)
	}
}

func TestParseStatementKinds(t *testing.T) {
	tests := map[string]cst.Rule{
		"SELECT 1":                     cst.RuleSelect,
		"VALUES (1)":                   cst.RuleSelect,
		"INSERT INTO t VALUES (1)":     cst.RuleInsert,
		"REPLACE INTO t VALUES (1)":    cst.RuleInsert,
		"UPDATE t SET a = 1":           cst.RuleUpdate,
		"DELETE FROM t":                cst.RuleDelete,
		"CREATE TABLE t (a)":           cst.RuleCreateTable,
		"CREATE TEMPORARY TABLE t (a)": cst.RuleCreateTable,
		"ALTER TABLE t DROP a":         cst.RuleAlterTable,
		"DROP TABLE t":                 cst.RuleDropTable,
		"CREATE INDEX i ON t (a)":      cst.RuleCreateIndex,
		"DROP INDEX i":                 cst.RuleDropIndex,
		"CREATE VIEW v AS SELECT 1":    cst.RuleCreateView,
		"DROP VIEW v":                  cst.RuleDropView,
		"DROP TRIGGER g":               cst.RuleDropTrigger,
		"BEGIN":                        cst.RuleBegin,
		"END":                          cst.RuleCommit,
		"ROLLBACK":                     cst.RuleRollback,
		"SAVEPOINT s":                  cst.RuleSavepoint,
		"RELEASE s":                    cst.RuleRelease,
	}
	for input, rule := range tests {
		t.Run(input, func(t *testing.T) {
			nodes, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", input, err)
			}
			if len(nodes) != 1 || nodes[0].Rule != rule {
				t.Errorf("Parse(%q) = %v, want one %s", input, nodes, rule)
			}
		})
	}
}

func TestSyntaxErrorMessages(t *testing.T) {
	tests := []struct {
		input    string
		line     int
		column   int
		found    string
		expected string
	}{
		{"SELECT 1 +", 1, 11, "end of input", "expression"},
		{"SELECT *\nFROM", 2, 5, "end of input", "identifier"},
		{"DROP SCHEMA s", 1, 6, `"SCHEMA"`, "TABLE"},
		{"SELECT 'abc", 1, 8, `illegal input "'abc"`, "expression"},
		{"SELECT 1 2", 1, 10, `"2"`, "';'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.input, err)
			}
			if se.Line != tt.line || se.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Column, tt.line, tt.column)
			}
			if se.Found != tt.found {
				t.Errorf("Found = %s, want %s", se.Found, tt.found)
			}
			if !contains(se.Expected, tt.expected) {
				t.Errorf("Expected = %v, want it to include %s", se.Expected, tt.expected)
			}
			if !strings.HasPrefix(se.Error(), "syntax error at line ") {
				t.Errorf("Error() = %s", se.Error())
			}
		})
	}
}

func TestSyntaxErrorString(t *testing.T) {
	tests := []struct {
		err  *SyntaxError
		want string
	}{
		{
			NewSyntaxError("ab\ncd", 4, `"d"`, "identifier"),
			`syntax error at line 2, column 2: unexpected "d", expected identifier`,
		},
		{
			NewSyntaxError("x", 1, "end of input", "AND", "OR"),
			"syntax error at line 1, column 2: unexpected end of input, expected AND or OR",
		},
		{
			NewSyntaxError("x", 0, `"x"`, "BEGIN", "COMMIT", "END"),
			`syntax error at line 1, column 1: unexpected "x", expected BEGIN, COMMIT or END`,
		},
		{
			NewSyntaxError("x", 0, `"x"`),
			`syntax error at line 1, column 1: unexpected "x"`,
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %s\nwant      %s", got, tt.want)
		}
	}
}

func TestParseRuleRejectsTrailingInput(t *testing.T) {
	for _, input := range []string{"a b", "1 +", "a.b.c.d"} {
		if _, err := ParseRule(cst.RuleExpr, input); err == nil {
			t.Errorf("ParseRule(expr, %q) succeeded", input)
		}
	}
	if _, err := ParseRule(cst.RuleNumber, "1"); err == nil {
		t.Error("ParseRule accepted a non-entry rule")
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
