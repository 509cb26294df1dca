// Package sql turns SQL text into the typed tree of package ast.
//
// The grammar package recognizes the text and produces a concrete syntax
// tree; the builders here walk that tree once, normalize identifiers and
// literals, resolve operator precedence and fill in defaults. Every entry
// point returns a *ParseError on failure and never panics on a malformed
// tree.
package sql

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

// Parse parses src as a list of DML and DDL statements, returned in input
// order. A transaction-control statement is a syntax error here; use
// ParseScript or ParseTransaction for those.
func Parse(src string) ([]ast.Statement, error) {
	nodes, err := grammar.Parse(src)
	if err != nil {
		return nil, wrapError(err)
	}
	stmts := make([]ast.Statement, 0, len(nodes))
	for _, n := range nodes {
		if n.Rule.In(tclRules...) {
			return nil, wrapError(grammar.NewSyntaxError(src, n.Span.Start,
				"transaction control statement", "DML or DDL statement"))
		}
		stmt, err := BuildStatement(n)
		if err != nil {
			return nil, wrapError(err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseScript parses src as any mix of DML, DDL and transaction-control
// statements, returned in input order.
func ParseScript(src string) ([]ast.Node, error) {
	nodes, err := grammar.Parse(src)
	if err != nil {
		return nil, wrapError(err)
	}
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		built, err := BuildNode(n)
		if err != nil {
			return nil, wrapError(err)
		}
		out = append(out, built)
	}
	return out, nil
}

// ParseTransaction parses src as exactly one BEGIN, COMMIT, ROLLBACK,
// SAVEPOINT or RELEASE statement.
func ParseTransaction(src string) (ast.TransactionStatement, error) {
	nodes, err := grammar.Parse(src)
	if err != nil {
		return nil, wrapError(err)
	}
	switch {
	case len(nodes) == 0:
		return nil, wrapError(grammar.NewSyntaxError(src, len(src), "end of input", tclNames...))
	case len(nodes) > 1:
		return nil, wrapError(grammar.NewSyntaxError(src, nodes[1].Span.Start, "second statement", "end of input"))
	case !nodes[0].Rule.In(tclRules...):
		return nil, wrapError(grammar.NewSyntaxError(src, nodes[0].Span.Start, "statement", tclNames...))
	}
	stmt, err := BuildTransaction(nodes[0])
	if err != nil {
		return nil, wrapError(err)
	}
	return stmt, nil
}

var tclNames = []string{"BEGIN", "COMMIT", "END", "RELEASE", "ROLLBACK", "SAVEPOINT"}

// ParseExpr parses src as a single expression.
func ParseExpr(src string) (ast.Expr, error) {
	n, err := grammar.ParseRule(cst.RuleExpr, src)
	if err != nil {
		return nil, wrapError(err)
	}
	e, err := BuildExpr(n)
	if err != nil {
		return nil, wrapError(err)
	}
	return e, nil
}

// ParseParallel behaves like ParseScript but builds the statements on up to
// workers goroutines (GOMAXPROCS when workers <= 0). Results keep input
// order, and when several statements fail the error of the earliest one is
// returned, so the outcome matches ParseScript.
func ParseParallel(ctx context.Context, src string, workers int) ([]ast.Node, error) {
	nodes, err := grammar.Parse(src)
	if err != nil {
		return nil, wrapError(err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]ast.Node, len(nodes))
	errs := make([]error, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i], errs[i] = BuildNode(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, wrapError(err)
		}
	}
	return out, nil
}
