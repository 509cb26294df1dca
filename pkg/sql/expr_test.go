package sql

import (
	"testing"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
)

func TestParseExprPrecedence(t *testing.T) {
	a, b, c, d := col("a"), col("b"), col("c"), col("d")
	one, two, three := ast.Integer("1"), ast.Integer("2"), ast.Integer("3")

	tests := []struct {
		name  string
		input string
		want  ast.Expr
	}{
		{"mul binds tighter than plus", "1 + 2 * 3", bin(one, ast.OpPlus, bin(two, ast.OpMul, three))},
		{"parens override", "(1 + 2) * 3", bin(&ast.ExprList{Exprs: []ast.Expr{bin(one, ast.OpPlus, two)}}, ast.OpMul, three)},
		{"minus is left associative", "a - b - c", bin(bin(a, ast.OpMinus, b), ast.OpMinus, c)},
		{"div is left associative", "a / b / c", bin(bin(a, ast.OpDiv, b), ast.OpDiv, c)},
		{"mixed arithmetic", "a + b * c - d", bin(bin(a, ast.OpPlus, bin(b, ast.OpMul, c)), ast.OpMinus, d)},
		{"and binds tighter than or", "a OR b AND c", bin(a, ast.OpLogicalOr, bin(b, ast.OpLogicalAnd, c))},
		{"not covers comparison", "NOT a = b", unary(ast.OpLogicalNot, bin(a, ast.OpEq, b))},
		{"not below and", "NOT a AND b", bin(unary(ast.OpLogicalNot, a), ast.OpLogicalAnd, b)},
		{"is below equality", "a = 1 IS TRUE", bin(bin(a, ast.OpEq, one), ast.OpIs, ast.Bool(true))},
		{"comparison above equality", "a < b = c < d", bin(bin(a, ast.OpLt, b), ast.OpEq, bin(c, ast.OpLt, d))},
		{"bitwise below additive", "a & b + c", bin(a, ast.OpBitwiseAnd, bin(b, ast.OpPlus, c))},
		{"shifts share a level", "a << b >> c", bin(bin(a, ast.OpLeftShift, b), ast.OpRightShift, c)},
		{"concat above mul", "a || b * c", bin(bin(a, ast.OpConcat, b), ast.OpMul, c)},
		{"negation binds tightest", "-a + b", bin(unary(ast.OpNegative, a), ast.OpPlus, b)},
		{"negated right operand", "a + -b", bin(a, ast.OpPlus, unary(ast.OpNegative, b))},
		{"bitwise not over concat", "~a || b", bin(unary(ast.OpBitwiseNot, a), ast.OpConcat, b)},
		{"stacked prefixes", "- + a", unary(ast.OpNegative, unary(ast.OpPositive, a))},
		{"signed number is unary", "-123", unary(ast.OpNegative, ast.Integer("123"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, parseExprOrFail(t, tt.input), tt.want)
		})
	}
}

func TestParseExprOperands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expr
	}{
		{"is not null", "a IS NOT NULL", bin(col("a"), ast.OpIsNot, ast.Null())},
		{"is null", "a IS NULL", bin(col("a"), ast.OpIs, ast.Null())},
		{"is not false", "a IS NOT FALSE", bin(col("a"), ast.OpIsNot, ast.Bool(false))},
		{"angle not equal", "a <> b", bin(col("a"), ast.OpNe, col("b"))},
		{"bang not equal", "a != b", bin(col("a"), ast.OpNe, col("b"))},
		{"double equals", "a == b", bin(col("a"), ast.OpEq, col("b"))},
		{"quoted identifier keeps case", `"MixedCase" and b`, bin(col("MixedCase"), ast.OpLogicalAnd, col("b"))},
		{"bare identifier folds case", "MixedCase", col("mixedcase")},
		{"table column", "t.c", &ast.QualifiedColumn{Table: "t", Column: "c"}},
		{"schema table column", "s.t.c", &ast.QualifiedColumn{Schema: "s", Table: "t", Column: "c"}},
		{"decimals", "1.23 + 4.56", bin(ast.Decimal("1.23"), ast.OpPlus, ast.Decimal("4.56"))},
		{"strings", "'hello' || 'world'", bin(ast.String("hello"), ast.OpConcat, ast.String("world"))},
		{"booleans", "TRUE AND FALSE", bin(ast.Bool(true), ast.OpLogicalAnd, ast.Bool(false))},
		{"blob", "x'010D'", ast.Blob("010D")},
		{"list", "(1, 'a', b)", &ast.ExprList{Exprs: []ast.Expr{ast.Integer("1"), ast.String("a"), col("b")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, parseExprOrFail(t, tt.input), tt.want)
		})
	}
}

func TestParseExprSamples(t *testing.T) {
	samples := []string{
		"1 + 2", "1 - 2", "1 * 2", "1 / 2", "1 % 2",
		"1 + (2 * 3)", "1 + 2 * 3 - 4 / 5",
		"a * (b + c)", "a / b - c * d", "a + b + c + d", "a * b * c * d",
		"a > b", "a < b", "a >= b", "a <= b", "a = b",
		"a AND b", "a OR b", "NOT a",
		"a + (b * (c - d))", "((a + b) * c) / d",
		"a + b * c / d - e % f", "a IS TRUE",
	}
	for _, s := range samples {
		t.Run(s, func(t *testing.T) {
			parseExprOrFail(t, s)
		})
	}
}

func TestParseExprIsDeterministic(t *testing.T) {
	const input = "a + b * c - d / e OR NOT f IS NOT NULL AND g || 'x' <> h"
	assertEqual(t, parseExprOrFail(t, input), parseExprOrFail(t, input))
}

func TestParseExprErrors(t *testing.T) {
	tests := []string{
		"",
		"1 +",
		"a IS",
		"(1, 2",
		"a b",
		"a.b.c.d",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseExpr(input); err == nil {
				t.Fatalf("ParseExpr(%q) succeeded, want error", input)
			}
		})
	}
}
