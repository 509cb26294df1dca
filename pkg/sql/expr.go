package sql

import (
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// Binding powers, lowest first. All infix operators are left-associative.
const (
	precOr = iota + 1
	precAnd
	precNot
	precIs
	precEquality
	precComparison
	precBitwise
	precAdditive
	precMultiplicative
	precConcat
	precUnary
)

type infixOp struct {
	op   ast.BinaryOp
	prec int
}

type prefixOp struct {
	op   ast.UnaryOp
	prec int
}

// infixOps and prefixOps are read-only after package initialization.
var infixOps = map[cst.Rule]infixOp{
	cst.RuleLogicalOr:  {ast.OpLogicalOr, precOr},
	cst.RuleLogicalAnd: {ast.OpLogicalAnd, precAnd},
	cst.RuleIs:         {ast.OpIs, precIs},
	cst.RuleIsNot:      {ast.OpIsNot, precIs},
	cst.RuleEq:         {ast.OpEq, precEquality},
	cst.RuleNe:         {ast.OpNe, precEquality},
	cst.RuleLt:         {ast.OpLt, precComparison},
	cst.RuleLe:         {ast.OpLe, precComparison},
	cst.RuleGt:         {ast.OpGt, precComparison},
	cst.RuleGe:         {ast.OpGe, precComparison},
	cst.RuleBitwiseAnd: {ast.OpBitwiseAnd, precBitwise},
	cst.RuleBitwiseOr:  {ast.OpBitwiseOr, precBitwise},
	cst.RuleRightShift: {ast.OpRightShift, precBitwise},
	cst.RuleLeftShift:  {ast.OpLeftShift, precBitwise},
	cst.RulePlus:       {ast.OpPlus, precAdditive},
	cst.RuleMinus:      {ast.OpMinus, precAdditive},
	cst.RuleMul:        {ast.OpMul, precMultiplicative},
	cst.RuleDiv:        {ast.OpDiv, precMultiplicative},
	cst.RuleMod:        {ast.OpMod, precMultiplicative},
	cst.RuleConcat:     {ast.OpConcat, precConcat},
}

var prefixOps = map[cst.Rule]prefixOp{
	cst.RuleLogicalNot: {ast.OpLogicalNot, precNot},
	cst.RuleBitwiseNot: {ast.OpBitwiseNot, precUnary},
	cst.RulePositive:   {ast.OpPositive, precUnary},
	cst.RuleNegative:   {ast.OpNegative, precUnary},
}

var (
	primaryRules = []cst.Rule{cst.RuleLiteral, cst.RuleQualifiedColumn, cst.RuleExprs}
	operandRules = append([]cst.Rule{cst.RuleLogicalNot, cst.RuleBitwiseNot, cst.RulePositive, cst.RuleNegative}, primaryRules...)
	infixRules   = []cst.Rule{
		cst.RuleLogicalOr, cst.RuleLogicalAnd, cst.RuleIs, cst.RuleIsNot,
		cst.RuleEq, cst.RuleNe, cst.RuleLt, cst.RuleLe, cst.RuleGt, cst.RuleGe,
		cst.RuleBitwiseAnd, cst.RuleBitwiseOr, cst.RuleRightShift, cst.RuleLeftShift,
		cst.RulePlus, cst.RuleMinus, cst.RuleMul, cst.RuleDiv, cst.RuleMod, cst.RuleConcat,
	}
)

// BuildExpr resolves the flat operator/operand sequence of an Expr node into
// a tree by precedence climbing.
func BuildExpr(n *cst.Node) (ast.Expr, error) {
	if err := expectRule(n, cst.RuleExpr); err != nil {
		return nil, err
	}
	p := &exprParser{node: n}
	e, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(n.Children) {
		return nil, mismatch(n, n.Children[p.pos], infixRules...)
	}
	return e, nil
}

type exprParser struct {
	node *cst.Node
	pos  int
}

func (p *exprParser) peek() *cst.Node {
	return p.node.Child(p.pos)
}

func (p *exprParser) parse(minPrec int) (ast.Expr, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		n := p.peek()
		if n == nil {
			return lhs, nil
		}
		op, ok := infixOps[n.Rule]
		if !ok {
			return nil, mismatch(p.node, n, infixRules...)
		}
		if op.prec < minPrec {
			return lhs, nil
		}
		p.pos++
		rhs, err := p.parse(op.prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Left: lhs, Op: op.op, Right: rhs}
	}
}

func (p *exprParser) parseOperand() (ast.Expr, error) {
	n := p.peek()
	if n == nil {
		return nil, mismatch(p.node, nil, operandRules...)
	}
	p.pos++
	if op, ok := prefixOps[n.Rule]; ok {
		operand, err := p.parse(op.prec)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op.op, Expr: operand}, nil
	}
	switch n.Rule {
	case cst.RuleLiteral:
		return BuildLiteral(n)
	case cst.RuleQualifiedColumn:
		return buildQualifiedColumn(n)
	case cst.RuleExprs:
		exprs, err := buildExprs(n)
		if err != nil {
			return nil, err
		}
		return &ast.ExprList{Exprs: exprs}, nil
	}
	return nil, mismatch(p.node, n, operandRules...)
}

// buildExprs builds the expressions of an Exprs node.
func buildExprs(n *cst.Node) ([]ast.Expr, error) {
	if err := expectRule(n, cst.RuleExprs); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleExpr)
	}
	exprs := make([]ast.Expr, 0, len(n.Children))
	for _, child := range n.Children {
		e, err := BuildExpr(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// buildQualifiedColumn maps 1, 2 or 3 name segments onto column,
// table.column and schema.table.column.
func buildQualifiedColumn(n *cst.Node) (*ast.QualifiedColumn, error) {
	if err := expectRule(n, cst.RuleQualifiedColumn); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 || len(n.Children) > 3 {
		return nil, malformed(n, "qualified column has %d segments", len(n.Children))
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		name, err := BuildIdent(child)
		if err != nil {
			return nil, err
		}
		parts[i] = name
	}
	col := &ast.QualifiedColumn{Column: parts[len(parts)-1]}
	switch len(parts) {
	case 3:
		col.Schema, col.Table = parts[0], parts[1]
	case 2:
		col.Table = parts[0]
	}
	return col, nil
}

// buildExprChild builds the single Expr child of a wrapper node such as
// WhereClause, Limit or Having.
func buildExprChild(n *cst.Node, rule cst.Rule) (ast.Expr, error) {
	if err := expectRule(n, rule); err != nil {
		return nil, err
	}
	c := newCursor(n)
	e, err := c.next(cst.RuleExpr)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return BuildExpr(e)
}
