package sql

import (
	"strings"

	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// BuildIdent normalizes an Ident node. Bare identifiers are lower-cased;
// quoted identifiers lose their delimiters and keep their case.
func BuildIdent(n *cst.Node) (string, error) {
	if err := expectRule(n, cst.RuleIdent); err != nil {
		return "", err
	}
	c := newCursor(n)
	leaf, err := c.next(cst.RuleIdentBare, cst.RuleIdentQuoted)
	if err != nil {
		return "", err
	}
	if err := c.done(); err != nil {
		return "", err
	}
	if leaf.Rule == cst.RuleIdentQuoted {
		if len(leaf.Text) < 2 {
			return "", malformed(leaf, "quoted identifier %q too short", leaf.Text)
		}
		return stripDelimiters(leaf.Text), nil
	}
	return strings.ToLower(leaf.Text), nil
}

// buildIdents normalizes every Ident child of an Idents node.
func buildIdents(n *cst.Node) ([]string, error) {
	if err := expectRule(n, cst.RuleIdents); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleIdent)
	}
	names := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		name, err := BuildIdent(child)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// BuildLiteral converts a Literal node. Numbers keep their source text and
// are classified by shape alone.
func BuildLiteral(n *cst.Node) (*ast.Literal, error) {
	if err := expectRule(n, cst.RuleLiteral); err != nil {
		return nil, err
	}
	c := newCursor(n)
	leaf, err := c.next(cst.RuleNumber, cst.RuleString, cst.RuleBlob, cst.RuleNull, cst.RuleTrue, cst.RuleFalse)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}

	switch leaf.Rule {
	case cst.RuleNumber:
		return &ast.Literal{Kind: classifyNumber(leaf.Text), Text: leaf.Text}, nil
	case cst.RuleString:
		if len(leaf.Text) < 2 {
			return nil, malformed(leaf, "string literal %q too short", leaf.Text)
		}
		return ast.String(stripDelimiters(leaf.Text)), nil
	case cst.RuleBlob:
		if len(leaf.Text) < 3 {
			return nil, malformed(leaf, "blob literal %q too short", leaf.Text)
		}
		return ast.Blob(leaf.Text[2 : len(leaf.Text)-1]), nil
	case cst.RuleNull:
		return ast.Null(), nil
	case cst.RuleTrue:
		return ast.Bool(true), nil
	default:
		return ast.Bool(false), nil
	}
}

// classifyNumber: an exponent makes a Double, a decimal point a Decimal,
// anything else an Integer.
func classifyNumber(text string) ast.LiteralKind {
	switch {
	case strings.ContainsAny(text, "eE"):
		return ast.LiteralDouble
	case strings.Contains(text, "."):
		return ast.LiteralDecimal
	default:
		return ast.LiteralInteger
	}
}

func stripDelimiters(s string) string {
	return s[1 : len(s)-1]
}

// normalizeTypeName lower-cases a type name and collapses the whitespace
// between its words.
func normalizeTypeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
