package sql

import (
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

var (
	dmlRules = []cst.Rule{cst.RuleSelect, cst.RuleInsert, cst.RuleUpdate, cst.RuleDelete}
	ddlRules = []cst.Rule{
		cst.RuleCreateTable, cst.RuleAlterTable, cst.RuleDropTable,
		cst.RuleCreateIndex, cst.RuleDropIndex, cst.RuleCreateView, cst.RuleDropView,
		cst.RuleCreateTrigger, cst.RuleDropTrigger,
	}
	tclRules = []cst.Rule{cst.RuleBegin, cst.RuleCommit, cst.RuleRollback, cst.RuleSavepoint, cst.RuleRelease}

	statementRules = append(append([]cst.Rule{}, dmlRules...), ddlRules...)
	topLevelRules  = append(append([]cst.Rule{}, statementRules...), tclRules...)
)

// BuildNode builds any top-level statement node, DML, DDL or TCL.
func BuildNode(n *cst.Node) (ast.Node, error) {
	if n == nil {
		return nil, malformed(nil, "nil statement node")
	}
	switch {
	case n.Rule.In(tclRules...):
		return BuildTransaction(n)
	case n.Rule.In(statementRules...):
		return BuildStatement(n)
	}
	return nil, mismatch(nil, n, topLevelRules...)
}

// BuildStatement dispatches a DML or DDL statement node to its builder.
func BuildStatement(n *cst.Node) (ast.Statement, error) {
	if n == nil {
		return nil, malformed(nil, "nil statement node")
	}
	switch n.Rule {
	case cst.RuleSelect:
		return BuildSelect(n)
	case cst.RuleInsert:
		return BuildInsert(n)
	case cst.RuleUpdate:
		return BuildUpdate(n)
	case cst.RuleDelete:
		return BuildDelete(n)
	case cst.RuleCreateTable:
		return BuildCreateTable(n)
	case cst.RuleAlterTable:
		return BuildAlterTable(n)
	case cst.RuleDropTable:
		return BuildDropTable(n)
	case cst.RuleCreateIndex:
		return BuildCreateIndex(n)
	case cst.RuleDropIndex:
		return BuildDropIndex(n)
	case cst.RuleCreateView:
		return BuildCreateView(n)
	case cst.RuleDropView:
		return BuildDropView(n)
	case cst.RuleCreateTrigger:
		return BuildCreateTrigger(n)
	case cst.RuleDropTrigger:
		return BuildDropTrigger(n)
	}
	return nil, mismatch(nil, n, statementRules...)
}

// buildDML builds one statement of a trigger body.
func buildDML(n *cst.Node) (ast.DML, error) {
	switch n.Rule {
	case cst.RuleSelect:
		return BuildSelect(n)
	case cst.RuleInsert:
		return BuildInsert(n)
	case cst.RuleUpdate:
		return BuildUpdate(n)
	case cst.RuleDelete:
		return BuildDelete(n)
	}
	return nil, mismatch(nil, n, dmlRules...)
}

// BuildSchemaObject builds name or schema.name.
func BuildSchemaObject(n *cst.Node) (ast.SchemaObject, error) {
	if err := expectRule(n, cst.RuleSchemaObject); err != nil {
		return ast.SchemaObject{}, err
	}
	c := newCursor(n)
	first, err := c.next(cst.RuleIdent)
	if err != nil {
		return ast.SchemaObject{}, err
	}
	second := c.optional(cst.RuleIdent)
	if err := c.done(); err != nil {
		return ast.SchemaObject{}, err
	}

	name, err := BuildIdent(first)
	if err != nil {
		return ast.SchemaObject{}, err
	}
	if second == nil {
		return ast.SchemaObject{Name: name}, nil
	}
	obj := ast.SchemaObject{Schema: name}
	if obj.Name, err = BuildIdent(second); err != nil {
		return ast.SchemaObject{}, err
	}
	return obj, nil
}

var conflictResolutions = map[cst.Rule]ast.ConflictResolution{
	cst.RuleConflictAbort:    ast.ConflictAbort,
	cst.RuleConflictFail:     ast.ConflictFail,
	cst.RuleConflictIgnore:   ast.ConflictIgnore,
	cst.RuleConflictReplace:  ast.ConflictReplace,
	cst.RuleConflictRollback: ast.ConflictRollback,
}

func buildConflictResolution(n *cst.Node) (ast.ConflictResolution, error) {
	if err := expectRule(n, cst.RuleConflictResolution); err != nil {
		return ast.ConflictAbort, err
	}
	c := newCursor(n)
	leaf, err := c.next(cst.RuleConflictAbort, cst.RuleConflictFail, cst.RuleConflictIgnore,
		cst.RuleConflictReplace, cst.RuleConflictRollback)
	if err != nil {
		return ast.ConflictAbort, err
	}
	if err := c.done(); err != nil {
		return ast.ConflictAbort, err
	}
	return conflictResolutions[leaf.Rule], nil
}

// optionalConflict consumes a ConflictResolution child if present; the
// default is ConflictAbort.
func optionalConflict(c *cursor) (ast.ConflictResolution, error) {
	if n := c.optional(cst.RuleConflictResolution); n != nil {
		return buildConflictResolution(n)
	}
	return ast.ConflictAbort, nil
}

// optionalAsc consumes an Asc or Desc leaf; without one the order is ascending.
func optionalAsc(c *cursor) bool {
	if n := c.optional(cst.RuleAsc, cst.RuleDesc); n != nil {
		return n.Rule == cst.RuleAsc
	}
	return true
}

// BuildIndexedColumn builds name [ASC|DESC].
func BuildIndexedColumn(n *cst.Node) (ast.IndexedColumn, error) {
	if err := expectRule(n, cst.RuleIndexedColumn); err != nil {
		return ast.IndexedColumn{}, err
	}
	c := newCursor(n)
	id, err := c.next(cst.RuleIdent)
	if err != nil {
		return ast.IndexedColumn{}, err
	}
	asc := optionalAsc(c)
	if err := c.done(); err != nil {
		return ast.IndexedColumn{}, err
	}
	name, err := BuildIdent(id)
	if err != nil {
		return ast.IndexedColumn{}, err
	}
	return ast.IndexedColumn{Name: name, Asc: asc}, nil
}

func buildIndexedColumns(n *cst.Node) ([]ast.IndexedColumn, error) {
	if err := expectRule(n, cst.RuleIndexedColumns); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, mismatch(n, nil, cst.RuleIndexedColumn)
	}
	cols := make([]ast.IndexedColumn, 0, len(n.Children))
	for _, child := range n.Children {
		col, err := BuildIndexedColumn(child)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// optionalWhere consumes a WhereClause child if present.
func optionalWhere(c *cursor) (ast.Expr, error) {
	if n := c.optional(cst.RuleWhereClause); n != nil {
		return buildExprChild(n, cst.RuleWhereClause)
	}
	return nil, nil
}

// optionalIdent consumes an Ident child if present and returns its
// normalized name, or "".
func optionalIdent(c *cursor) (string, error) {
	if n := c.optional(cst.RuleIdent); n != nil {
		return BuildIdent(n)
	}
	return "", nil
}

// optionalIdents consumes an Idents child if present.
func optionalIdents(c *cursor) ([]string, error) {
	if n := c.optional(cst.RuleIdents); n != nil {
		return buildIdents(n)
	}
	return nil, nil
}

// nextIdent consumes a required Ident child.
func nextIdent(c *cursor) (string, error) {
	n, err := c.next(cst.RuleIdent)
	if err != nil {
		return "", err
	}
	return BuildIdent(n)
}

// nextSchemaObject consumes a required SchemaObject child.
func nextSchemaObject(c *cursor) (ast.SchemaObject, error) {
	n, err := c.next(cst.RuleSchemaObject)
	if err != nil {
		return ast.SchemaObject{}, err
	}
	return BuildSchemaObject(n)
}
