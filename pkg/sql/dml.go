package sql

import (
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// BuildSelect builds core (operator core)* [ORDER BY] [LIMIT] [OFFSET].
func BuildSelect(n *cst.Node) (*ast.SelectStmt, error) {
	if err := expectRule(n, cst.RuleSelect); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.SelectStmt{}

	coreNode, err := c.next(cst.RuleSelectQuery, cst.RuleSelectValues)
	if err != nil {
		return nil, err
	}
	if stmt.Core, err = buildSelectCore(coreNode); err != nil {
		return nil, err
	}

	for c.peekIs(cst.RuleCompoundOperator) {
		opNode := c.optional(cst.RuleCompoundOperator)
		op, err := buildCompoundOperator(opNode)
		if err != nil {
			return nil, err
		}
		coreNode, err := c.next(cst.RuleSelectQuery, cst.RuleSelectValues)
		if err != nil {
			return nil, err
		}
		core, err := buildSelectCore(coreNode)
		if err != nil {
			return nil, err
		}
		stmt.Compounds = append(stmt.Compounds, ast.CompoundSelect{Op: op, Core: core})
	}

	if terms := c.optional(cst.RuleOrderingTerms); terms != nil {
		if stmt.OrderBy, err = buildOrderingTerms(terms); err != nil {
			return nil, err
		}
	}
	if limit := c.optional(cst.RuleLimit); limit != nil {
		if stmt.Limit, err = buildExprChild(limit, cst.RuleLimit); err != nil {
			return nil, err
		}
	}
	if offset := c.optional(cst.RuleOffset); offset != nil {
		if stmt.Offset, err = buildExprChild(offset, cst.RuleOffset); err != nil {
			return nil, err
		}
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func buildSelectCore(n *cst.Node) (ast.SelectCore, error) {
	if n.Rule == cst.RuleSelectValues {
		c := newCursor(n)
		rowsNode, err := c.next(cst.RuleValuesRows)
		if err != nil {
			return nil, err
		}
		if err := c.done(); err != nil {
			return nil, err
		}
		rows, err := buildValuesRows(rowsNode)
		if err != nil {
			return nil, err
		}
		return &ast.SelectValues{Rows: rows}, nil
	}
	return buildSelectQuery(n)
}

// buildSelectQuery builds SELECT [DISTINCT|ALL] columns [FROM] [WHERE] [GROUP BY] [HAVING].
func buildSelectQuery(n *cst.Node) (*ast.SelectQuery, error) {
	if err := expectRule(n, cst.RuleSelectQuery); err != nil {
		return nil, err
	}
	c := newCursor(n)
	q := &ast.SelectQuery{}

	if flag := c.optional(cst.RuleDistinct, cst.RuleAll); flag != nil {
		q.Distinct = flag.Rule == cst.RuleDistinct
	}

	cols, err := c.next(cst.RuleResultColumns)
	if err != nil {
		return nil, err
	}
	if q.Columns, err = buildResultColumns(cols); err != nil {
		return nil, err
	}

	if from := c.optional(cst.RuleFromClause); from != nil {
		if q.From, err = BuildFromClause(from); err != nil {
			return nil, err
		}
	}
	if q.Where, err = optionalWhere(c); err != nil {
		return nil, err
	}
	if group := c.optional(cst.RuleGroupBy); group != nil {
		if len(group.Children) == 0 {
			return nil, mismatch(group, nil, cst.RuleExpr)
		}
		for _, child := range group.Children {
			e, err := BuildExpr(child)
			if err != nil {
				return nil, err
			}
			q.GroupBy = append(q.GroupBy, e)
		}
	}
	if having := c.optional(cst.RuleHaving); having != nil {
		if q.Having, err = buildExprChild(having, cst.RuleHaving); err != nil {
			return nil, err
		}
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return q, nil
}

func buildValuesRows(n *cst.Node) ([][]ast.Expr, error) {
	if err := expectRule(n, cst.RuleValuesRows); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleExprs)
	}
	rows := make([][]ast.Expr, 0, len(n.Children))
	for _, child := range n.Children {
		row, err := buildExprs(child)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var compoundOperators = map[cst.Rule]ast.CompoundOperator{
	cst.RuleUnion:     ast.CompoundUnion,
	cst.RuleUnionAll:  ast.CompoundUnionAll,
	cst.RuleIntersect: ast.CompoundIntersect,
	cst.RuleExcept:    ast.CompoundExcept,
}

func buildCompoundOperator(n *cst.Node) (ast.CompoundOperator, error) {
	c := newCursor(n)
	leaf, err := c.next(cst.RuleUnion, cst.RuleUnionAll, cst.RuleIntersect, cst.RuleExcept)
	if err != nil {
		return 0, err
	}
	if err := c.done(); err != nil {
		return 0, err
	}
	return compoundOperators[leaf.Rule], nil
}

func buildResultColumns(n *cst.Node) ([]ast.ResultColumn, error) {
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleResultColumn)
	}
	cols := make([]ast.ResultColumn, 0, len(n.Children))
	for _, child := range n.Children {
		col, err := BuildResultColumn(child)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// BuildResultColumn builds '*' or expr [AS alias].
func BuildResultColumn(n *cst.Node) (ast.ResultColumn, error) {
	if err := expectRule(n, cst.RuleResultColumn); err != nil {
		return ast.ResultColumn{}, err
	}
	star, e, alias, err := buildColumnOrStar(n)
	if err != nil {
		return ast.ResultColumn{}, err
	}
	return ast.ResultColumn{Star: star, Expr: e, Alias: alias}, nil
}

// buildColumnOrStar reads the shape shared by result and RETURNING columns.
func buildColumnOrStar(n *cst.Node) (star bool, e ast.Expr, alias string, err error) {
	c := newCursor(n)
	if c.optional(cst.RuleStar) != nil {
		return true, nil, "", c.done()
	}
	exprNode, err := c.next(cst.RuleStar, cst.RuleExpr)
	if err != nil {
		return false, nil, "", err
	}
	if e, err = BuildExpr(exprNode); err != nil {
		return false, nil, "", err
	}
	if alias, err = optionalIdent(c); err != nil {
		return false, nil, "", err
	}
	return false, e, alias, c.done()
}

func buildOrderingTerms(n *cst.Node) ([]ast.OrderingTerm, error) {
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleOrderingTerm)
	}
	terms := make([]ast.OrderingTerm, 0, len(n.Children))
	for _, child := range n.Children {
		term, err := BuildOrderingTerm(child)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// BuildOrderingTerm builds expr [ASC|DESC] [NULLS FIRST|LAST]. Both default
// to true: ascending, nulls first.
func BuildOrderingTerm(n *cst.Node) (ast.OrderingTerm, error) {
	if err := expectRule(n, cst.RuleOrderingTerm); err != nil {
		return ast.OrderingTerm{}, err
	}
	c := newCursor(n)
	exprNode, err := c.next(cst.RuleExpr)
	if err != nil {
		return ast.OrderingTerm{}, err
	}
	term := ast.OrderingTerm{Asc: optionalAsc(c), NullsFirst: true}
	if nulls := c.optional(cst.RuleNullsFirst, cst.RuleNullsLast); nulls != nil {
		term.NullsFirst = nulls.Rule == cst.RuleNullsFirst
	}
	if err := c.done(); err != nil {
		return ast.OrderingTerm{}, err
	}
	if term.Expr, err = BuildExpr(exprNode); err != nil {
		return ast.OrderingTerm{}, err
	}
	return term, nil
}

// BuildFromClause builds either a plain comma-separated table list or a join chain.
func BuildFromClause(n *cst.Node) (ast.FromClause, error) {
	if err := expectRule(n, cst.RuleFromClause); err != nil {
		return nil, err
	}
	c := newCursor(n)
	body, err := c.next(cst.RuleTableList, cst.RuleJoinClause)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}

	if body.Rule == cst.RuleTableList {
		if len(body.Children) == 0 {
			return nil, mismatch(body, nil, cst.RuleQualifiedTable)
		}
		list := &ast.TableList{}
		for _, child := range body.Children {
			t, err := BuildQualifiedTable(child)
			if err != nil {
				return nil, err
			}
			list.Tables = append(list.Tables, t)
		}
		return list, nil
	}

	jc := newCursor(body)
	first, err := jc.next(cst.RuleQualifiedTable)
	if err != nil {
		return nil, err
	}
	join := &ast.JoinClause{}
	if join.Table, err = BuildQualifiedTable(first); err != nil {
		return nil, err
	}
	for _, child := range jc.rest() {
		sub, err := buildJoinSubClause(child)
		if err != nil {
			return nil, err
		}
		join.Joins = append(join.Joins, sub)
	}
	return join, nil
}

func buildJoinSubClause(n *cst.Node) (ast.JoinSubClause, error) {
	if err := expectRule(n, cst.RuleJoinSubClause); err != nil {
		return ast.JoinSubClause{}, err
	}
	c := newCursor(n)
	opNode, err := c.next(cst.RuleJoinOperator)
	if err != nil {
		return ast.JoinSubClause{}, err
	}
	tableNode, err := c.next(cst.RuleQualifiedTable)
	if err != nil {
		return ast.JoinSubClause{}, err
	}
	constraintNode := c.optional(cst.RuleJoinConstraint)
	if err := c.done(); err != nil {
		return ast.JoinSubClause{}, err
	}

	var sub ast.JoinSubClause
	if sub.Op, err = BuildJoinOperator(opNode); err != nil {
		return ast.JoinSubClause{}, err
	}
	if sub.Table, err = BuildQualifiedTable(tableNode); err != nil {
		return ast.JoinSubClause{}, err
	}
	if constraintNode != nil {
		if sub.Constraint, err = buildJoinConstraint(constraintNode); err != nil {
			return ast.JoinSubClause{}, err
		}
	}
	return sub, nil
}

var outerJoins = map[cst.Rule]ast.OuterJoinType{
	cst.RuleLeft:  ast.OuterLeft,
	cst.RuleRight: ast.OuterRight,
	cst.RuleFull:  ast.OuterFull,
}

// BuildJoinOperator builds ',', CROSS JOIN, or [NATURAL] (INNER|LEFT|RIGHT|FULL) JOIN.
func BuildJoinOperator(n *cst.Node) (ast.JoinOperator, error) {
	if err := expectRule(n, cst.RuleJoinOperator); err != nil {
		return ast.JoinOperator{}, err
	}
	c := newCursor(n)
	if c.optional(cst.RuleComma) != nil {
		return ast.JoinOperator{Kind: ast.JoinComma}, c.done()
	}
	if c.optional(cst.RuleCross) != nil {
		return ast.JoinOperator{Kind: ast.JoinCross}, c.done()
	}
	op := ast.JoinOperator{Natural: c.optional(cst.RuleNatural) != nil}
	kind, err := c.next(cst.RuleInner, cst.RuleLeft, cst.RuleRight, cst.RuleFull)
	if err != nil {
		return ast.JoinOperator{}, err
	}
	if kind.Rule == cst.RuleInner {
		op.Kind = ast.JoinInner
	} else {
		op.Kind = ast.JoinOuter
		op.Outer = outerJoins[kind.Rule]
	}
	return op, c.done()
}

func buildJoinConstraint(n *cst.Node) (*ast.JoinConstraint, error) {
	c := newCursor(n)
	child, err := c.next(cst.RuleExpr, cst.RuleIdents)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	if child.Rule == cst.RuleExpr {
		on, err := BuildExpr(child)
		if err != nil {
			return nil, err
		}
		return &ast.JoinConstraint{On: on}, nil
	}
	using, err := buildIdents(child)
	if err != nil {
		return nil, err
	}
	return &ast.JoinConstraint{Using: using}, nil
}

// BuildQualifiedTable builds table [AS alias] [INDEXED BY idx | NOT INDEXED].
func BuildQualifiedTable(n *cst.Node) (ast.QualifiedTable, error) {
	if err := expectRule(n, cst.RuleQualifiedTable); err != nil {
		return ast.QualifiedTable{}, err
	}
	c := newCursor(n)
	var t ast.QualifiedTable
	var err error
	if t.Table, err = nextSchemaObject(c); err != nil {
		return ast.QualifiedTable{}, err
	}
	if t.Alias, err = optionalIdent(c); err != nil {
		return ast.QualifiedTable{}, err
	}
	switch idx := c.optional(cst.RuleIndexedBy, cst.RuleNotIndexed); {
	case idx == nil:
	case idx.Rule == cst.RuleNotIndexed:
		t.Indexed = &ast.Indexed{NotIndexed: true}
	default:
		ic := newCursor(idx)
		name, err := nextIdent(ic)
		if err != nil {
			return ast.QualifiedTable{}, err
		}
		if err := ic.done(); err != nil {
			return ast.QualifiedTable{}, err
		}
		t.Indexed = &ast.Indexed{Index: name}
	}
	return t, c.done()
}

// BuildInsert builds an INSERT or REPLACE statement.
func BuildInsert(n *cst.Node) (*ast.InsertStmt, error) {
	if err := expectRule(n, cst.RuleInsert); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.InsertStmt{}

	header, err := c.next(cst.RuleInsertHeader, cst.RuleReplaceHeader)
	if err != nil {
		return nil, err
	}
	if header.Rule == cst.RuleReplaceHeader {
		stmt.Header.Replace = true
	} else {
		hc := newCursor(header)
		if stmt.Header.Conflict, err = optionalConflict(hc); err != nil {
			return nil, err
		}
		if err := hc.done(); err != nil {
			return nil, err
		}
	}

	if stmt.Table, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	if stmt.Alias, err = optionalIdent(c); err != nil {
		return nil, err
	}
	if stmt.Columns, err = optionalIdents(c); err != nil {
		return nil, err
	}

	body, err := c.next(cst.RuleInsertValues, cst.RuleInsertSelect, cst.RuleInsertDefault)
	if err != nil {
		return nil, err
	}
	if stmt.Source, err = buildInsertSource(body); err != nil {
		return nil, err
	}

	if stmt.Returning, err = optionalReturning(c); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func buildInsertSource(n *cst.Node) (ast.InsertSource, error) {
	if n.Rule == cst.RuleInsertDefault {
		return &ast.DefaultValues{}, nil
	}
	c := newCursor(n)
	var src ast.InsertSource
	var upsert **ast.Upsert

	if n.Rule == cst.RuleInsertValues {
		rowsNode, err := c.next(cst.RuleValuesRows)
		if err != nil {
			return nil, err
		}
		rows, err := buildValuesRows(rowsNode)
		if err != nil {
			return nil, err
		}
		values := &ast.ValuesSource{Rows: rows}
		src, upsert = values, &values.Upsert
	} else {
		selNode, err := c.next(cst.RuleSelect)
		if err != nil {
			return nil, err
		}
		sel, err := BuildSelect(selNode)
		if err != nil {
			return nil, err
		}
		source := &ast.SelectSource{Select: sel}
		src, upsert = source, &source.Upsert
	}

	if u := c.optional(cst.RuleUpsert); u != nil {
		built, err := buildUpsert(u)
		if err != nil {
			return nil, err
		}
		*upsert = built
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return src, nil
}

// buildUpsert builds ON CONFLICT [(target) [WHERE]] DO NOTHING | DO UPDATE SET ... [WHERE].
func buildUpsert(n *cst.Node) (*ast.Upsert, error) {
	c := newCursor(n)
	u := &ast.Upsert{}

	if target := c.optional(cst.RuleConflictTarget); target != nil {
		tc := newCursor(target)
		cols, err := tc.next(cst.RuleIndexedColumns)
		if err != nil {
			return nil, err
		}
		if u.Target, err = buildIndexedColumns(cols); err != nil {
			return nil, err
		}
		if u.TargetWhere, err = optionalWhere(tc); err != nil {
			return nil, err
		}
		if err := tc.done(); err != nil {
			return nil, err
		}
	}

	action, err := c.next(cst.RuleDoNothing, cst.RuleUpsertUpdate)
	if err != nil {
		return nil, err
	}
	if action.Rule == cst.RuleDoNothing {
		u.Action = &ast.DoNothing{}
	} else {
		ac := newCursor(action)
		set, err := ac.next(cst.RuleSetClauses)
		if err != nil {
			return nil, err
		}
		update := &ast.DoUpdate{}
		if update.Set, err = buildSetClauses(set); err != nil {
			return nil, err
		}
		if update.Where, err = optionalWhere(ac); err != nil {
			return nil, err
		}
		if err := ac.done(); err != nil {
			return nil, err
		}
		u.Action = update
	}
	return u, c.done()
}

func buildSetClauses(n *cst.Node) ([]ast.SetClause, error) {
	if err := expectRule(n, cst.RuleSetClauses); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleSetClause)
	}
	clauses := make([]ast.SetClause, 0, len(n.Children))
	for _, child := range n.Children {
		sc, err := buildSetClause(child)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, sc)
	}
	return clauses, nil
}

// buildSetClause builds col = expr or (col, ...) = expr.
func buildSetClause(n *cst.Node) (ast.SetClause, error) {
	if err := expectRule(n, cst.RuleSetClause); err != nil {
		return ast.SetClause{}, err
	}
	c := newCursor(n)
	target, err := c.next(cst.RuleIdent, cst.RuleIdents)
	if err != nil {
		return ast.SetClause{}, err
	}
	exprNode, err := c.next(cst.RuleExpr)
	if err != nil {
		return ast.SetClause{}, err
	}
	if err := c.done(); err != nil {
		return ast.SetClause{}, err
	}

	var sc ast.SetClause
	if target.Rule == cst.RuleIdents {
		sc.List = true
		if sc.Columns, err = buildIdents(target); err != nil {
			return ast.SetClause{}, err
		}
	} else {
		name, err := BuildIdent(target)
		if err != nil {
			return ast.SetClause{}, err
		}
		sc.Columns = []string{name}
	}
	if sc.Value, err = BuildExpr(exprNode); err != nil {
		return ast.SetClause{}, err
	}
	return sc, nil
}

// optionalReturning consumes a Returning child if present.
func optionalReturning(c *cursor) ([]ast.ReturningColumn, error) {
	n := c.optional(cst.RuleReturning)
	if n == nil {
		return nil, nil
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleReturningColumn)
	}
	cols := make([]ast.ReturningColumn, 0, len(n.Children))
	for _, child := range n.Children {
		if err := expectRule(child, cst.RuleReturningColumn); err != nil {
			return nil, err
		}
		star, e, alias, err := buildColumnOrStar(child)
		if err != nil {
			return nil, err
		}
		cols = append(cols, ast.ReturningColumn{Star: star, Expr: e, Alias: alias})
	}
	return cols, nil
}

// BuildUpdate builds UPDATE [OR resolution] table SET ... [FROM] [WHERE] [RETURNING].
func BuildUpdate(n *cst.Node) (*ast.UpdateStmt, error) {
	if err := expectRule(n, cst.RuleUpdate); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.UpdateStmt{}
	var err error

	if stmt.Conflict, err = optionalConflict(c); err != nil {
		return nil, err
	}
	table, err := c.next(cst.RuleQualifiedTable)
	if err != nil {
		return nil, err
	}
	if stmt.Table, err = BuildQualifiedTable(table); err != nil {
		return nil, err
	}
	set, err := c.next(cst.RuleSetClauses)
	if err != nil {
		return nil, err
	}
	if stmt.Set, err = buildSetClauses(set); err != nil {
		return nil, err
	}
	if from := c.optional(cst.RuleFromClause); from != nil {
		if stmt.From, err = BuildFromClause(from); err != nil {
			return nil, err
		}
	}
	if stmt.Where, err = optionalWhere(c); err != nil {
		return nil, err
	}
	if stmt.Returning, err = optionalReturning(c); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// BuildDelete builds DELETE FROM table [WHERE] [RETURNING].
func BuildDelete(n *cst.Node) (*ast.DeleteStmt, error) {
	if err := expectRule(n, cst.RuleDelete); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.DeleteStmt{}

	table, err := c.next(cst.RuleQualifiedTable)
	if err != nil {
		return nil, err
	}
	if stmt.Table, err = BuildQualifiedTable(table); err != nil {
		return nil, err
	}
	if stmt.Where, err = optionalWhere(c); err != nil {
		return nil, err
	}
	if stmt.Returning, err = optionalReturning(c); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}
