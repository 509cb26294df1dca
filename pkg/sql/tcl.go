package sql

import (
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// BuildTransaction dispatches a transaction-control node to its builder.
func BuildTransaction(n *cst.Node) (ast.TransactionStatement, error) {
	if n == nil {
		return nil, malformed(nil, "nil transaction node")
	}
	switch n.Rule {
	case cst.RuleBegin:
		return BuildBegin(n)
	case cst.RuleCommit:
		return BuildCommit(n)
	case cst.RuleRollback:
		return BuildRollback(n)
	case cst.RuleSavepoint:
		return BuildSavepoint(n)
	case cst.RuleRelease:
		return BuildRelease(n)
	}
	return nil, mismatch(nil, n, tclRules...)
}

var transactionModes = map[cst.Rule]ast.TransactionMode{
	cst.RuleDeferred:  ast.Deferred,
	cst.RuleImmediate: ast.Immediate,
	cst.RuleExclusive: ast.Exclusive,
}

// BuildBegin builds BEGIN [DEFERRED|IMMEDIATE|EXCLUSIVE]; the default mode is DEFERRED.
func BuildBegin(n *cst.Node) (*ast.BeginStmt, error) {
	if err := expectRule(n, cst.RuleBegin); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.BeginStmt{}
	if mode := c.optional(cst.RuleDeferred, cst.RuleImmediate, cst.RuleExclusive); mode != nil {
		stmt.Mode = transactionModes[mode.Rule]
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// BuildCommit builds COMMIT; END is the same statement.
func BuildCommit(n *cst.Node) (*ast.CommitStmt, error) {
	if err := expectRule(n, cst.RuleCommit); err != nil {
		return nil, err
	}
	if err := newCursor(n).done(); err != nil {
		return nil, err
	}
	return &ast.CommitStmt{}, nil
}

func BuildRollback(n *cst.Node) (*ast.RollbackStmt, error) {
	if err := expectRule(n, cst.RuleRollback); err != nil {
		return nil, err
	}
	c := newCursor(n)
	name, err := optionalIdent(c)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return &ast.RollbackStmt{Savepoint: name}, nil
}

func BuildSavepoint(n *cst.Node) (*ast.SavepointStmt, error) {
	name, err := buildNamed(n, cst.RuleSavepoint)
	if err != nil {
		return nil, err
	}
	return &ast.SavepointStmt{Name: name}, nil
}

func BuildRelease(n *cst.Node) (*ast.ReleaseStmt, error) {
	name, err := buildNamed(n, cst.RuleRelease)
	if err != nil {
		return nil, err
	}
	return &ast.ReleaseStmt{Name: name}, nil
}

// buildNamed reads a node whose only child is a required name.
func buildNamed(n *cst.Node, rule cst.Rule) (string, error) {
	if err := expectRule(n, rule); err != nil {
		return "", err
	}
	c := newCursor(n)
	name, err := nextIdent(c)
	if err != nil {
		return "", err
	}
	return name, c.done()
}
