package grammar

import "github.com/JayabrataBasu/sqlast/pkg/cst"

var prefixRules = map[TokenType]cst.Rule{
	TOKEN_NOT:   cst.RuleLogicalNot,
	TOKEN_TILDE: cst.RuleBitwiseNot,
	TOKEN_PLUS:  cst.RulePositive,
	TOKEN_MINUS: cst.RuleNegative,
}

var infixRules = map[TokenType]cst.Rule{
	TOKEN_OR:      cst.RuleLogicalOr,
	TOKEN_AND:     cst.RuleLogicalAnd,
	TOKEN_IS:      cst.RuleIs,
	TOKEN_EQ:      cst.RuleEq,
	TOKEN_NE:      cst.RuleNe,
	TOKEN_LT:      cst.RuleLt,
	TOKEN_LE:      cst.RuleLe,
	TOKEN_GT:      cst.RuleGt,
	TOKEN_GE:      cst.RuleGe,
	TOKEN_AMP:     cst.RuleBitwiseAnd,
	TOKEN_PIPE:    cst.RuleBitwiseOr,
	TOKEN_RSHIFT:  cst.RuleRightShift,
	TOKEN_LSHIFT:  cst.RuleLeftShift,
	TOKEN_PLUS:    cst.RulePlus,
	TOKEN_MINUS:   cst.RuleMinus,
	TOKEN_STAR:    cst.RuleMul,
	TOKEN_SLASH:   cst.RuleDiv,
	TOKEN_PERCENT: cst.RuleMod,
	TOKEN_CONCAT:  cst.RuleConcat,
}

// parseExpr parses one expression into a flat Expr node:
//
//	prefix* primary (infix prefix* primary)*
//
// Operator precedence is not resolved here.
func (p *Parser) parseExpr() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleExpr)
	for {
		for {
			rule, ok := prefixRules[p.cur.Type]
			if !ok {
				break
			}
			n.Add(p.leaf(rule))
		}

		prim, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		n.Add(prim)

		op := p.parseInfix()
		if op == nil {
			break
		}
		n.Add(op)
	}
	return p.close(n, start), nil
}

// parseInfix consumes a binary operator or returns nil. IS NOT is a single operator.
func (p *Parser) parseInfix() *cst.Node {
	rule, ok := infixRules[p.cur.Type]
	if !ok {
		p.exp.add(p.cur.Pos, "operator")
		return nil
	}
	if rule == cst.RuleIs && p.peekTokenIs(TOKEN_NOT) {
		start := p.cur.Pos
		p.nextToken()
		p.nextToken()
		return p.span(cst.RuleIsNot, start)
	}
	return p.leaf(rule)
}

func (p *Parser) parsePrimary() (*cst.Node, error) {
	switch p.cur.Type {
	case TOKEN_NUMBER, TOKEN_STRING, TOKEN_BLOB, TOKEN_NULL, TOKEN_TRUE, TOKEN_FALSE:
		return p.parseLiteral(false)
	case TOKEN_LPAREN:
		return p.parseExprs()
	}
	if p.isIdent() {
		return p.parseQualifiedColumn()
	}
	return nil, p.fail("expression")
}

// parseExprs parses '(' expr (',' expr)* ')'.
func (p *Parser) parseExprs() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	n := cst.NewNode(cst.RuleExprs)
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Add(e)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return p.close(n, start), nil
}

// parseQualifiedColumn parses [[schema.]table.]column.
func (p *Parser) parseQualifiedColumn() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleQualifiedColumn)
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(id)
	for i := 0; i < 2 && p.accept(TOKEN_DOT); i++ {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(id)
	}
	return p.close(n, start), nil
}

// parseLiteral parses a constant. When signed is set a '+' or '-' directly
// followed by a number is folded into the number's text.
func (p *Parser) parseLiteral(signed bool) (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleLiteral)
	switch p.cur.Type {
	case TOKEN_NUMBER:
		n.Add(p.leaf(cst.RuleNumber))
	case TOKEN_PLUS, TOKEN_MINUS:
		if !signed || !p.peekTokenIs(TOKEN_NUMBER) || p.peek.Pos != p.cur.End() {
			return nil, p.fail("literal")
		}
		p.nextToken()
		p.nextToken()
		n.Add(p.span(cst.RuleNumber, start))
	case TOKEN_STRING:
		n.Add(p.leaf(cst.RuleString))
	case TOKEN_BLOB:
		n.Add(p.leaf(cst.RuleBlob))
	case TOKEN_NULL:
		n.Add(p.leaf(cst.RuleNull))
	case TOKEN_TRUE:
		n.Add(p.leaf(cst.RuleTrue))
	case TOKEN_FALSE:
		n.Add(p.leaf(cst.RuleFalse))
	default:
		return nil, p.fail("literal")
	}
	return p.close(n, start), nil
}
