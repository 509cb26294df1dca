package grammar

import "github.com/JayabrataBasu/sqlast/pkg/cst"

// parseSelect parses:
//
//	core (compound_operator core)* [ORDER BY terms] [LIMIT expr [OFFSET expr]]
func (p *Parser) parseSelect() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleSelect)

	core, err := p.parseSelectCore()
	if err != nil {
		return nil, err
	}
	n.Add(core)

	for {
		op := p.parseCompoundOperator()
		if op == nil {
			break
		}
		core, err := p.parseSelectCore()
		if err != nil {
			return nil, err
		}
		n.Add(op, core)
	}

	if p.curTokenIs(TOKEN_ORDER) {
		terms, err := p.parseOrderingTerms()
		if err != nil {
			return nil, err
		}
		n.Add(terms)
	} else {
		p.exp.add(p.cur.Pos, "ORDER BY")
	}

	limit, err := p.parseKeywordExpr(TOKEN_LIMIT, cst.RuleLimit)
	if err != nil {
		return nil, err
	}
	if limit != nil {
		n.Add(limit)
		offset, err := p.parseKeywordExpr(TOKEN_OFFSET, cst.RuleOffset)
		if err != nil {
			return nil, err
		}
		if offset != nil {
			n.Add(offset)
		}
	}
	return p.close(n, start), nil
}

func (p *Parser) parseSelectCore() (*cst.Node, error) {
	switch {
	case p.check(TOKEN_SELECT):
		return p.parseSelectQuery()
	case p.check(TOKEN_VALUES):
		start := p.cur.Pos
		p.nextToken()
		rows, err := p.parseValuesRows()
		if err != nil {
			return nil, err
		}
		n := cst.NewNode(cst.RuleSelectValues)
		n.Add(rows)
		return p.close(n, start), nil
	}
	return nil, p.fail()
}

func (p *Parser) parseSelectQuery() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleSelectQuery)
	if err := p.expect(TOKEN_SELECT); err != nil {
		return nil, err
	}

	if p.check(TOKEN_DISTINCT) {
		n.Add(p.leaf(cst.RuleDistinct))
	} else if p.check(TOKEN_ALL) {
		n.Add(p.leaf(cst.RuleAll))
	}

	cols, err := p.parseResultColumns()
	if err != nil {
		return nil, err
	}
	n.Add(cols)

	if p.curTokenIs(TOKEN_FROM) {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		n.Add(from)
	} else {
		p.exp.add(p.cur.Pos, TOKEN_FROM.String())
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	if where != nil {
		n.Add(where)
	}

	if gstart := p.cur.Pos; p.accept(TOKEN_GROUP) {
		if err := p.expect(TOKEN_BY); err != nil {
			return nil, err
		}
		group := cst.NewNode(cst.RuleGroupBy)
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			group.Add(e)
			if !p.accept(TOKEN_COMMA) {
				break
			}
		}
		n.Add(p.close(group, gstart))
	}

	having, err := p.parseKeywordExpr(TOKEN_HAVING, cst.RuleHaving)
	if err != nil {
		return nil, err
	}
	if having != nil {
		n.Add(having)
	}
	return p.close(n, start), nil
}

// parseValuesRows parses (exprs) (',' (exprs))*; the VALUES keyword is
// consumed by the caller.
func (p *Parser) parseValuesRows() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleValuesRows)
	for {
		row, err := p.parseExprs()
		if err != nil {
			return nil, err
		}
		n.Add(row)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	return p.close(n, start), nil
}

func (p *Parser) parseCompoundOperator() *cst.Node {
	start := p.cur.Pos
	var rule cst.Rule
	switch {
	case p.accept(TOKEN_UNION):
		rule = cst.RuleUnion
		if p.accept(TOKEN_ALL) {
			rule = cst.RuleUnionAll
		}
	case p.accept(TOKEN_INTERSECT):
		rule = cst.RuleIntersect
	case p.accept(TOKEN_EXCEPT):
		rule = cst.RuleExcept
	default:
		return nil
	}
	n := cst.NewNode(cst.RuleCompoundOperator)
	n.Add(p.span(rule, start))
	return p.close(n, start)
}

func (p *Parser) parseResultColumns() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleResultColumns)
	for {
		c, err := p.parseResultColumn()
		if err != nil {
			return nil, err
		}
		n.Add(c)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	return p.close(n, start), nil
}

// parseResultColumn parses '*' or expr [[AS] alias]. RETURNING columns share
// the shape under a different rule.
func (p *Parser) parseResultColumn() (*cst.Node, error) {
	return p.parseColumnOrStar(cst.RuleResultColumn)
}

func (p *Parser) parseColumnOrStar(rule cst.Rule) (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(rule)
	if p.check(TOKEN_STAR) {
		n.Add(p.leaf(cst.RuleStar))
		return p.close(n, start), nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	n.Add(e)
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	if alias != nil {
		n.Add(alias)
	}
	return p.close(n, start), nil
}

// parseOrderingTerms parses ORDER BY term (',' term)*.
func (p *Parser) parseOrderingTerms() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.keywords(TOKEN_ORDER, TOKEN_BY); err != nil {
		return nil, err
	}
	n := cst.NewNode(cst.RuleOrderingTerms)
	for {
		t, err := p.parseOrderingTerm()
		if err != nil {
			return nil, err
		}
		n.Add(t)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	return p.close(n, start), nil
}

// parseOrderingTerm parses expr [ASC|DESC] [NULLS FIRST|NULLS LAST].
func (p *Parser) parseOrderingTerm() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleOrderingTerm)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	n.Add(e)
	if dir := p.parseDirection(); dir != nil {
		n.Add(dir)
	}
	if nstart := p.cur.Pos; p.accept(TOKEN_NULLS) {
		switch {
		case p.accept(TOKEN_FIRST):
			n.Add(p.span(cst.RuleNullsFirst, nstart))
		case p.accept(TOKEN_LAST):
			n.Add(p.span(cst.RuleNullsLast, nstart))
		default:
			return nil, p.fail()
		}
	}
	return p.close(n, start), nil
}

// parseFromClause parses FROM table (join_operator table [join_constraint])*.
// A list joined only by commas without constraints becomes a TableList.
func (p *Parser) parseFromClause() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_FROM); err != nil {
		return nil, err
	}
	first, err := p.parseQualifiedTable()
	if err != nil {
		return nil, err
	}

	var subs []*cst.Node
	plain := true
	for {
		subStart := p.cur.Pos
		op, err := p.parseJoinOperator()
		if err != nil {
			return nil, err
		}
		if op == nil {
			break
		}
		table, err := p.parseQualifiedTable()
		if err != nil {
			return nil, err
		}
		sub := cst.NewNode(cst.RuleJoinSubClause)
		sub.Add(op, table)
		constraint, err := p.parseJoinConstraint()
		if err != nil {
			return nil, err
		}
		if constraint != nil {
			sub.Add(constraint)
		}
		if op.Child(0).Rule != cst.RuleComma || constraint != nil {
			plain = false
		}
		subs = append(subs, p.close(sub, subStart))
	}

	n := cst.NewNode(cst.RuleFromClause)
	if plain {
		list := cst.NewNode(cst.RuleTableList)
		list.Add(first)
		for _, sub := range subs {
			list.Add(sub.Child(1))
		}
		n.Add(p.close(list, first.Span.Start))
	} else {
		join := cst.NewNode(cst.RuleJoinClause)
		join.Add(first)
		join.Add(subs...)
		n.Add(p.close(join, first.Span.Start))
	}
	return p.close(n, start), nil
}

// parseJoinOperator returns nil when the current token starts no join.
func (p *Parser) parseJoinOperator() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleJoinOperator)

	if p.check(TOKEN_COMMA) {
		n.Add(p.leaf(cst.RuleComma))
		return p.close(n, start), nil
	}
	if p.accept(TOKEN_CROSS) {
		if err := p.expect(TOKEN_JOIN); err != nil {
			return nil, err
		}
		n.Add(p.span(cst.RuleCross, start))
		return p.close(n, start), nil
	}

	natural := p.check(TOKEN_NATURAL)
	if natural {
		n.Add(p.leaf(cst.RuleNatural))
	}

	kindStart := p.cur.Pos
	var rule cst.Rule
	switch {
	case p.accept(TOKEN_JOIN):
		n.Add(p.span(cst.RuleInner, kindStart))
		return p.close(n, start), nil
	case p.accept(TOKEN_INNER):
		rule = cst.RuleInner
	case p.accept(TOKEN_LEFT):
		rule = cst.RuleLeft
	case p.accept(TOKEN_RIGHT):
		rule = cst.RuleRight
	case p.accept(TOKEN_FULL):
		rule = cst.RuleFull
	default:
		if natural {
			return nil, p.fail()
		}
		return nil, nil
	}
	if rule != cst.RuleInner {
		p.accept(TOKEN_OUTER)
	}
	if err := p.expect(TOKEN_JOIN); err != nil {
		return nil, err
	}
	n.Add(p.span(rule, kindStart))
	return p.close(n, start), nil
}

// parseJoinConstraint parses ON expr or USING (idents), or returns nil.
// ON CONFLICT belongs to an enclosing INSERT and is left alone.
func (p *Parser) parseJoinConstraint() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleJoinConstraint)
	switch {
	case p.check(TOKEN_ON) && !p.peekTokenIs(TOKEN_CONFLICT):
		p.nextToken()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Add(e)
	case p.accept(TOKEN_USING):
		ids, err := p.parseIdents(true)
		if err != nil {
			return nil, err
		}
		n.Add(ids)
	default:
		return nil, nil
	}
	return p.close(n, start), nil
}

// parseQualifiedTable parses schema_object [[AS] alias] [INDEXED BY name | NOT INDEXED].
func (p *Parser) parseQualifiedTable() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleQualifiedTable)
	obj, err := p.parseSchemaObject()
	if err != nil {
		return nil, err
	}
	n.Add(obj)

	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	if alias != nil {
		n.Add(alias)
	}

	istart := p.cur.Pos
	switch {
	case p.accept(TOKEN_INDEXED):
		if err := p.expect(TOKEN_BY); err != nil {
			return nil, err
		}
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		ib := cst.NewNode(cst.RuleIndexedBy)
		ib.Add(id)
		n.Add(p.close(ib, istart))
	case p.curTokenIs(TOKEN_NOT) && p.peekTokenIs(TOKEN_INDEXED):
		p.nextToken()
		p.nextToken()
		n.Add(p.span(cst.RuleNotIndexed, istart))
	}
	return p.close(n, start), nil
}

// parseInsert parses:
//
//	(INSERT [OR resolution] | REPLACE) INTO schema_object [AS alias] [(columns)]
//	(VALUES rows [upsert] | select [upsert] | DEFAULT VALUES) [RETURNING ...]
func (p *Parser) parseInsert() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleInsert)

	if p.check(TOKEN_REPLACE) {
		n.Add(p.leaf(cst.RuleReplaceHeader))
	} else {
		if err := p.expect(TOKEN_INSERT); err != nil {
			return nil, err
		}
		header := cst.NewNode(cst.RuleInsertHeader)
		if p.accept(TOKEN_OR) {
			cr, err := p.parseConflictResolution()
			if err != nil {
				return nil, err
			}
			header.Add(cr)
		}
		n.Add(p.close(header, start))
	}

	if err := p.expect(TOKEN_INTO); err != nil {
		return nil, err
	}
	table, err := p.parseSchemaObject()
	if err != nil {
		return nil, err
	}
	n.Add(table)

	if p.accept(TOKEN_AS) {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(alias)
	}
	if p.check(TOKEN_LPAREN) {
		cols, err := p.parseIdents(true)
		if err != nil {
			return nil, err
		}
		n.Add(cols)
	}

	body, err := p.parseInsertBody()
	if err != nil {
		return nil, err
	}
	n.Add(body)

	ret, err := p.parseReturning()
	if err != nil {
		return nil, err
	}
	if ret != nil {
		n.Add(ret)
	}
	return p.close(n, start), nil
}

func (p *Parser) parseInsertBody() (*cst.Node, error) {
	start := p.cur.Pos
	var n *cst.Node
	switch {
	case p.accept(TOKEN_VALUES):
		n = cst.NewNode(cst.RuleInsertValues)
		rows, err := p.parseValuesRows()
		if err != nil {
			return nil, err
		}
		n.Add(rows)
	case p.check(TOKEN_SELECT):
		n = cst.NewNode(cst.RuleInsertSelect)
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		n.Add(sel)
	case p.accept(TOKEN_DEFAULT):
		if err := p.expect(TOKEN_VALUES); err != nil {
			return nil, err
		}
		return p.span(cst.RuleInsertDefault, start), nil
	default:
		return nil, p.fail()
	}

	upsert, err := p.parseUpsert()
	if err != nil {
		return nil, err
	}
	if upsert != nil {
		n.Add(upsert)
	}
	return p.close(n, start), nil
}

// parseUpsert parses ON CONFLICT [(cols) [WHERE expr]] DO (NOTHING | UPDATE SET ... [WHERE expr]).
func (p *Parser) parseUpsert() (*cst.Node, error) {
	start := p.cur.Pos
	if !p.check(TOKEN_ON) {
		return nil, nil
	}
	if err := p.keywords(TOKEN_ON, TOKEN_CONFLICT); err != nil {
		return nil, err
	}
	n := cst.NewNode(cst.RuleUpsert)

	if p.check(TOKEN_LPAREN) {
		tstart := p.cur.Pos
		target := cst.NewNode(cst.RuleConflictTarget)
		cols, err := p.parseIndexedColumns()
		if err != nil {
			return nil, err
		}
		target.Add(cols)
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		if where != nil {
			target.Add(where)
		}
		n.Add(p.close(target, tstart))
	}

	astart := p.cur.Pos
	if err := p.expect(TOKEN_DO); err != nil {
		return nil, err
	}
	switch {
	case p.accept(TOKEN_NOTHING):
		n.Add(p.span(cst.RuleDoNothing, astart))
	case p.accept(TOKEN_UPDATE):
		upd := cst.NewNode(cst.RuleUpsertUpdate)
		set, err := p.parseSetClauses()
		if err != nil {
			return nil, err
		}
		upd.Add(set)
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		if where != nil {
			upd.Add(where)
		}
		n.Add(p.close(upd, astart))
	default:
		return nil, p.fail()
	}
	return p.close(n, start), nil
}

// parseSetClauses parses SET clause (',' clause)*.
func (p *Parser) parseSetClauses() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_SET); err != nil {
		return nil, err
	}
	n := cst.NewNode(cst.RuleSetClauses)
	for {
		c, err := p.parseSetClause()
		if err != nil {
			return nil, err
		}
		n.Add(c)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	return p.close(n, start), nil
}

// parseSetClause parses column = expr or (col, ...) = expr.
func (p *Parser) parseSetClause() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleSetClause)
	var target *cst.Node
	var err error
	if p.check(TOKEN_LPAREN) {
		target, err = p.parseIdents(true)
	} else {
		target, err = p.parseIdent()
	}
	if err != nil {
		return nil, err
	}
	n.Add(target)
	if err := p.expect(TOKEN_EQ); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	n.Add(e)
	return p.close(n, start), nil
}

// parseReturning parses RETURNING column (',' column)*, or returns nil.
func (p *Parser) parseReturning() (*cst.Node, error) {
	start := p.cur.Pos
	if !p.accept(TOKEN_RETURNING) {
		return nil, nil
	}
	n := cst.NewNode(cst.RuleReturning)
	for {
		c, err := p.parseColumnOrStar(cst.RuleReturningColumn)
		if err != nil {
			return nil, err
		}
		n.Add(c)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	return p.close(n, start), nil
}

// parseUpdate parses UPDATE [OR resolution] table SET ... [FROM ...] [WHERE ...] [RETURNING ...].
func (p *Parser) parseUpdate() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleUpdate)
	if err := p.expect(TOKEN_UPDATE); err != nil {
		return nil, err
	}
	if p.accept(TOKEN_OR) {
		cr, err := p.parseConflictResolution()
		if err != nil {
			return nil, err
		}
		n.Add(cr)
	}
	table, err := p.parseQualifiedTable()
	if err != nil {
		return nil, err
	}
	n.Add(table)

	set, err := p.parseSetClauses()
	if err != nil {
		return nil, err
	}
	n.Add(set)

	if p.curTokenIs(TOKEN_FROM) {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		n.Add(from)
	} else {
		p.exp.add(p.cur.Pos, TOKEN_FROM.String())
	}
	if err := p.addTail(n); err != nil {
		return nil, err
	}
	return p.close(n, start), nil
}

// parseDelete parses DELETE FROM table [WHERE ...] [RETURNING ...].
func (p *Parser) parseDelete() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleDelete)
	if err := p.keywords(TOKEN_DELETE, TOKEN_FROM); err != nil {
		return nil, err
	}
	table, err := p.parseQualifiedTable()
	if err != nil {
		return nil, err
	}
	n.Add(table)
	if err := p.addTail(n); err != nil {
		return nil, err
	}
	return p.close(n, start), nil
}

// addTail appends the optional WHERE and RETURNING clauses shared by UPDATE and DELETE.
func (p *Parser) addTail(n *cst.Node) error {
	where, err := p.parseWhere()
	if err != nil {
		return err
	}
	if where != nil {
		n.Add(where)
	}
	ret, err := p.parseReturning()
	if err != nil {
		return err
	}
	if ret != nil {
		n.Add(ret)
	}
	return nil
}
