package ast

import (
	"encoding/hex"
	"fmt"
)

// Expr is the interface for all SQL expressions.
type Expr interface {
	exprNode()
}

// LiteralKind classifies a literal.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralInteger
	LiteralDecimal
	LiteralDouble
	LiteralString
	LiteralBlob
	LiteralBool
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNull:
		return "Null"
	case LiteralInteger:
		return "Integer"
	case LiteralDecimal:
		return "Decimal"
	case LiteralDouble:
		return "Double"
	case LiteralString:
		return "String"
	case LiteralBlob:
		return "Blob"
	case LiteralBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Literal is a constant. Numeric literals keep their verbatim source text;
// interpreting the number is left to the consumer. String literals hold the
// text between the quotes and blobs hold the hex digits.
type Literal struct {
	Kind LiteralKind
	Text string
	Bool bool
}

func (e *Literal) exprNode() {}

func (e *Literal) String() string {
	switch e.Kind {
	case LiteralNull:
		return "NULL"
	case LiteralBool:
		if e.Bool {
			return "TRUE"
		}
		return "FALSE"
	case LiteralString:
		return "'" + e.Text + "'"
	case LiteralBlob:
		return "X'" + e.Text + "'"
	default:
		return e.Text
	}
}

// Bytes decodes a blob literal's hex digits.
func (e *Literal) Bytes() ([]byte, error) {
	if e.Kind != LiteralBlob {
		return nil, fmt.Errorf("literal is %s, not Blob", e.Kind)
	}
	b, err := hex.DecodeString(e.Text)
	if err != nil {
		return nil, fmt.Errorf("invalid blob literal X'%s': %w", e.Text, err)
	}
	return b, nil
}

// Literal constructors, mostly for tests and callers building trees by hand.

func Integer(text string) *Literal { return &Literal{Kind: LiteralInteger, Text: text} }
func Decimal(text string) *Literal { return &Literal{Kind: LiteralDecimal, Text: text} }
func Double(text string) *Literal  { return &Literal{Kind: LiteralDouble, Text: text} }
func String(text string) *Literal  { return &Literal{Kind: LiteralString, Text: text} }
func Blob(hexText string) *Literal { return &Literal{Kind: LiteralBlob, Text: hexText} }
func Null() *Literal               { return &Literal{Kind: LiteralNull} }
func Bool(v bool) *Literal         { return &Literal{Kind: LiteralBool, Bool: v} }

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpBitwiseNot UnaryOp = iota // ~
	OpPositive                  // +
	OpNegative                  // -
	OpLogicalNot                // NOT
)

func (op UnaryOp) String() string {
	switch op {
	case OpBitwiseNot:
		return "~"
	case OpPositive:
		return "+"
	case OpNegative:
		return "-"
	case OpLogicalNot:
		return "NOT"
	default:
		return "?"
	}
}

// BinaryOp is an infix operator.
type BinaryOp int

const (
	OpConcat BinaryOp = iota // ||

	OpMul // *
	OpDiv // /
	OpMod // %

	OpPlus  // +
	OpMinus // -

	OpBitwiseAnd // &
	OpBitwiseOr  // |
	OpRightShift // >>
	OpLeftShift  // <<

	OpLt // <
	OpLe // <=
	OpGt // >
	OpGe // >=

	OpEq    // = or ==
	OpNe    // != or <>
	OpIs    // IS
	OpIsNot // IS NOT

	OpLogicalAnd // AND
	OpLogicalOr  // OR
)

var binaryOpNames = [...]string{
	OpConcat:     "||",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpPlus:       "+",
	OpMinus:      "-",
	OpBitwiseAnd: "&",
	OpBitwiseOr:  "|",
	OpRightShift: ">>",
	OpLeftShift:  "<<",
	OpLt:         "<",
	OpLe:         "<=",
	OpGt:         ">",
	OpGe:         ">=",
	OpEq:         "=",
	OpNe:         "!=",
	OpIs:         "IS",
	OpIsNot:      "IS NOT",
	OpLogicalAnd: "AND",
	OpLogicalOr:  "OR",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// UnaryExpr represents a prefix operation (e.g., NOT x, -x).
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
}

func (e *UnaryExpr) exprNode() {}

// BinaryExpr represents an infix operation (e.g., a = b, a AND b).
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (e *BinaryExpr) exprNode() {}

// ExprList is a parenthesized, comma-separated list. A single parenthesized
// expression is a list of one.
type ExprList struct {
	Exprs []Expr
}

func (e *ExprList) exprNode() {}

// BetweenExpr represents expr [NOT] BETWEEN low AND high.
// No grammar rule produces it yet.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (e *BetweenExpr) exprNode() {}

// QualifiedColumn is a column reference: [[schema.]table.]column.
type QualifiedColumn struct {
	Schema string
	Table  string
	Column string
}

func (e *QualifiedColumn) exprNode() {}

// Column builds an unqualified column reference.
func Column(name string) *QualifiedColumn {
	return &QualifiedColumn{Column: name}
}
