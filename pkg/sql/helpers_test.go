package sql

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

func init() {
	// Statement trees nest well past deep's default of 10 levels.
	deep.MaxDepth = 64
}

// assertEqual fails the test with a field-by-field diff when got != want.
func assertEqual(tb testing.TB, got, want interface{}) {
	tb.Helper()
	if diff := deep.Equal(got, want); diff != nil {
		tb.Fatalf("mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

// parseRuleOrFail recognizes src as a single instance of rule.
func parseRuleOrFail(tb testing.TB, rule cst.Rule, src string) *cst.Node {
	tb.Helper()
	n, err := grammar.ParseRule(rule, src)
	if err != nil {
		tb.Fatalf("ParseRule(%s, %q): %v", rule, src, err)
	}
	return n
}

// parseOneOrFail parses src as exactly one DML or DDL statement.
func parseOneOrFail(tb testing.TB, src string) ast.Statement {
	tb.Helper()
	stmts, err := Parse(src)
	if err != nil {
		tb.Fatalf("Parse(%q): %v", src, err)
	}
	if len(stmts) != 1 {
		tb.Fatalf("Parse(%q) returned %d statements, want 1", src, len(stmts))
	}
	return stmts[0]
}

func parseExprOrFail(tb testing.TB, src string) ast.Expr {
	tb.Helper()
	e, err := ParseExpr(src)
	if err != nil {
		tb.Fatalf("ParseExpr(%q): %v", src, err)
	}
	return e
}

// Shorthands for expected trees.

func col(name string) *ast.QualifiedColumn { return ast.Column(name) }

func bin(left ast.Expr, op ast.BinaryOp, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Left: left, Op: op, Right: right}
}

func unary(op ast.UnaryOp, e ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Op: op, Expr: e}
}

func table(name string) ast.QualifiedTable {
	return ast.QualifiedTable{Table: ast.SchemaObject{Name: name}}
}

// Hand-built CST nodes for structural error tests.

func leaf(rule cst.Rule, text string) *cst.Node {
	return cst.NewLeaf(rule, text, cst.Span{})
}

func node(rule cst.Rule, children ...*cst.Node) *cst.Node {
	n := cst.NewNode(rule)
	n.Add(children...)
	return n
}

func identNode(name string) *cst.Node {
	return node(cst.RuleIdent, leaf(cst.RuleIdentBare, name))
}

func numberNode(text string) *cst.Node {
	return node(cst.RuleLiteral, leaf(cst.RuleNumber, text))
}
