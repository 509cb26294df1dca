package sql

import (
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// BuildCreateTable builds CREATE [TEMP] TABLE [IF NOT EXISTS] name body.
func BuildCreateTable(n *cst.Node) (*ast.CreateTableStmt, error) {
	if err := expectRule(n, cst.RuleCreateTable); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.CreateTableStmt{
		Temp:        c.optional(cst.RuleTemp) != nil,
		IfNotExists: c.optional(cst.RuleIfNotExists) != nil,
	}
	var err error
	if stmt.Table, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	body, err := c.next(cst.RuleCreateTableBody)
	if err != nil {
		return nil, err
	}
	if stmt.Body, err = BuildCreateTableBody(body); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

var tableOptions = map[cst.Rule]ast.TableOption{
	cst.RuleWithoutRowid: ast.WithoutRowid,
	cst.RuleStrict:       ast.Strict,
}

// BuildCreateTableBody builds AS select, or a column list with optional table
// constraints and table options.
func BuildCreateTableBody(n *cst.Node) (ast.CreateTableBody, error) {
	if err := expectRule(n, cst.RuleCreateTableBody); err != nil {
		return nil, err
	}
	c := newCursor(n)
	if sel := c.optional(cst.RuleSelect); sel != nil {
		if err := c.done(); err != nil {
			return nil, err
		}
		s, err := BuildSelect(sel)
		if err != nil {
			return nil, err
		}
		return &ast.AsSelect{Select: s}, nil
	}

	defs, err := c.next(cst.RuleSelect, cst.RuleColumnDefs)
	if err != nil {
		return nil, err
	}
	if len(defs.Children) == 0 {
		return nil, mismatch(defs, nil, cst.RuleColumnDef)
	}
	table := &ast.TableDefinition{}
	for _, child := range defs.Children {
		def, err := BuildColumnDef(child)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, def)
	}

	if constraints := c.optional(cst.RuleTableConstraints); constraints != nil {
		if len(constraints.Children) == 0 {
			return nil, mismatch(constraints, nil, cst.RuleTableConstraint)
		}
		for _, child := range constraints.Children {
			tc, err := BuildTableConstraint(child)
			if err != nil {
				return nil, err
			}
			table.Constraints = append(table.Constraints, tc)
		}
	}

	for c.peekIs(cst.RuleWithoutRowid, cst.RuleStrict) {
		table.Options = append(table.Options, tableOptions[c.optional(cst.RuleWithoutRowid, cst.RuleStrict).Rule])
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return table, nil
}

// BuildColumnDef builds name [type] [constraints]. A column without a type
// has a nil Type.
func BuildColumnDef(n *cst.Node) (ast.ColumnDef, error) {
	if err := expectRule(n, cst.RuleColumnDef); err != nil {
		return ast.ColumnDef{}, err
	}
	c := newCursor(n)
	var def ast.ColumnDef
	var err error
	if def.Name, err = nextIdent(c); err != nil {
		return ast.ColumnDef{}, err
	}
	if tn := c.optional(cst.RuleTypeName); tn != nil {
		if def.Type, err = BuildTypeName(tn); err != nil {
			return ast.ColumnDef{}, err
		}
	}
	if constraints := c.optional(cst.RuleColumnConstraints); constraints != nil {
		if len(constraints.Children) == 0 {
			return ast.ColumnDef{}, mismatch(constraints, nil, cst.RuleColumnConstraint)
		}
		for _, child := range constraints.Children {
			cc, err := BuildColumnConstraint(child)
			if err != nil {
				return ast.ColumnDef{}, err
			}
			def.Constraints = append(def.Constraints, cc)
		}
	}
	if err := c.done(); err != nil {
		return ast.ColumnDef{}, err
	}
	return def, nil
}

// BuildTypeName builds a type with an optional (size) or (precision, scale).
func BuildTypeName(n *cst.Node) (*ast.TypeName, error) {
	if err := expectRule(n, cst.RuleTypeName); err != nil {
		return nil, err
	}
	c := newCursor(n)
	ident, err := c.next(cst.RuleTypeIdent)
	if err != nil {
		return nil, err
	}
	tn := &ast.TypeName{Name: normalizeTypeName(ident.Text)}
	if first := c.optional(cst.RuleNumber); first != nil {
		if second := c.optional(cst.RuleNumber); second != nil {
			tn.Size = &ast.PrecisionScale{Precision: first.Text, Scale: second.Text}
		} else {
			tn.Size = &ast.MaxSize{Size: first.Text}
		}
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return tn, nil
}

var columnConstraintRules = []cst.Rule{
	cst.RulePrimaryKeyConstraint, cst.RuleNotNullConstraint, cst.RuleUniqueConstraint,
	cst.RuleCheckConstraint, cst.RuleDefaultConstraint,
}

// BuildColumnConstraint builds [CONSTRAINT name] followed by one constraint.
func BuildColumnConstraint(n *cst.Node) (ast.ColumnConstraint, error) {
	if err := expectRule(n, cst.RuleColumnConstraint); err != nil {
		return ast.ColumnConstraint{}, err
	}
	c := newCursor(n)
	var cc ast.ColumnConstraint
	var err error
	if cc.Name, err = optionalIdent(c); err != nil {
		return ast.ColumnConstraint{}, err
	}
	kind, err := c.next(columnConstraintRules...)
	if err != nil {
		return ast.ColumnConstraint{}, err
	}
	if err := c.done(); err != nil {
		return ast.ColumnConstraint{}, err
	}

	kc := newCursor(kind)
	switch kind.Rule {
	case cst.RulePrimaryKeyConstraint:
		pk := &ast.PrimaryKeyConstraint{Asc: optionalAsc(kc)}
		pk.AutoIncrement = kc.optional(cst.RuleAutoIncrement) != nil
		cc.Constraint = pk
	case cst.RuleNotNullConstraint:
		cc.Constraint = &ast.NotNullConstraint{}
	case cst.RuleUniqueConstraint:
		cc.Constraint = &ast.UniqueConstraint{}
	case cst.RuleCheckConstraint:
		e, err := kc.next(cst.RuleExpr)
		if err != nil {
			return ast.ColumnConstraint{}, err
		}
		check := &ast.CheckConstraint{}
		if check.Expr, err = BuildExpr(e); err != nil {
			return ast.ColumnConstraint{}, err
		}
		cc.Constraint = check
	case cst.RuleDefaultConstraint:
		lit, err := kc.next(cst.RuleLiteral)
		if err != nil {
			return ast.ColumnConstraint{}, err
		}
		def := &ast.DefaultConstraint{}
		if def.Value, err = BuildLiteral(lit); err != nil {
			return ast.ColumnConstraint{}, err
		}
		cc.Constraint = def
	}
	if err := kc.done(); err != nil {
		return ast.ColumnConstraint{}, err
	}
	return cc, nil
}

// BuildTableConstraint builds [CONSTRAINT name] (PRIMARY KEY | UNIQUE) (cols).
func BuildTableConstraint(n *cst.Node) (ast.TableConstraint, error) {
	if err := expectRule(n, cst.RuleTableConstraint); err != nil {
		return ast.TableConstraint{}, err
	}
	c := newCursor(n)
	var tc ast.TableConstraint
	var err error
	if tc.Name, err = optionalIdent(c); err != nil {
		return ast.TableConstraint{}, err
	}
	kind, err := c.next(cst.RuleTablePrimaryKey, cst.RuleTableUnique)
	if err != nil {
		return ast.TableConstraint{}, err
	}
	if err := c.done(); err != nil {
		return ast.TableConstraint{}, err
	}
	if kind.Rule == cst.RuleTableUnique {
		tc.Type = ast.TableUnique
	}

	kc := newCursor(kind)
	cols, err := kc.next(cst.RuleIndexedColumns)
	if err != nil {
		return ast.TableConstraint{}, err
	}
	if err := kc.done(); err != nil {
		return ast.TableConstraint{}, err
	}
	if tc.Columns, err = buildIndexedColumns(cols); err != nil {
		return ast.TableConstraint{}, err
	}
	return tc, nil
}

// BuildAlterTable builds ALTER TABLE name followed by one action.
func BuildAlterTable(n *cst.Node) (*ast.AlterTableStmt, error) {
	if err := expectRule(n, cst.RuleAlterTable); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.AlterTableStmt{}
	var err error
	if stmt.Table, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	action, err := c.next(cst.RuleRenameTable, cst.RuleRenameColumn, cst.RuleAddColumn, cst.RuleDropColumn)
	if err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}

	ac := newCursor(action)
	switch action.Rule {
	case cst.RuleRenameTable:
		to, err := nextIdent(ac)
		if err != nil {
			return nil, err
		}
		stmt.Action = &ast.RenameTable{To: to}
	case cst.RuleRenameColumn:
		from, err := nextIdent(ac)
		if err != nil {
			return nil, err
		}
		to, err := nextIdent(ac)
		if err != nil {
			return nil, err
		}
		stmt.Action = &ast.RenameColumn{From: from, To: to}
	case cst.RuleAddColumn:
		defNode, err := ac.next(cst.RuleColumnDef)
		if err != nil {
			return nil, err
		}
		def, err := BuildColumnDef(defNode)
		if err != nil {
			return nil, err
		}
		stmt.Action = &ast.AddColumn{Column: def}
	case cst.RuleDropColumn:
		name, err := nextIdent(ac)
		if err != nil {
			return nil, err
		}
		stmt.Action = &ast.DropColumn{Name: name}
	}
	if err := ac.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// buildDrop reads the [IF EXISTS] name shape shared by every DROP statement.
func buildDrop(n *cst.Node, rule cst.Rule) (bool, ast.SchemaObject, error) {
	if err := expectRule(n, rule); err != nil {
		return false, ast.SchemaObject{}, err
	}
	c := newCursor(n)
	ifExists := c.optional(cst.RuleIfExists) != nil
	obj, err := nextSchemaObject(c)
	if err != nil {
		return false, ast.SchemaObject{}, err
	}
	return ifExists, obj, c.done()
}

func BuildDropTable(n *cst.Node) (*ast.DropTableStmt, error) {
	ifExists, obj, err := buildDrop(n, cst.RuleDropTable)
	if err != nil {
		return nil, err
	}
	return &ast.DropTableStmt{IfExists: ifExists, Table: obj}, nil
}

func BuildDropIndex(n *cst.Node) (*ast.DropIndexStmt, error) {
	ifExists, obj, err := buildDrop(n, cst.RuleDropIndex)
	if err != nil {
		return nil, err
	}
	return &ast.DropIndexStmt{IfExists: ifExists, Index: obj}, nil
}

func BuildDropView(n *cst.Node) (*ast.DropViewStmt, error) {
	ifExists, obj, err := buildDrop(n, cst.RuleDropView)
	if err != nil {
		return nil, err
	}
	return &ast.DropViewStmt{IfExists: ifExists, View: obj}, nil
}

func BuildDropTrigger(n *cst.Node) (*ast.DropTriggerStmt, error) {
	ifExists, obj, err := buildDrop(n, cst.RuleDropTrigger)
	if err != nil {
		return nil, err
	}
	return &ast.DropTriggerStmt{IfExists: ifExists, Trigger: obj}, nil
}

// BuildCreateIndex builds CREATE [UNIQUE] INDEX [IF NOT EXISTS] name ON table (cols) [WHERE].
func BuildCreateIndex(n *cst.Node) (*ast.CreateIndexStmt, error) {
	if err := expectRule(n, cst.RuleCreateIndex); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.CreateIndexStmt{
		Unique:      c.optional(cst.RuleUnique) != nil,
		IfNotExists: c.optional(cst.RuleIfNotExists) != nil,
	}
	var err error
	if stmt.Index, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	if stmt.Table, err = nextIdent(c); err != nil {
		return nil, err
	}
	cols, err := c.next(cst.RuleIndexedColumns)
	if err != nil {
		return nil, err
	}
	if stmt.Columns, err = buildIndexedColumns(cols); err != nil {
		return nil, err
	}
	if stmt.Where, err = optionalWhere(c); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// BuildCreateView builds CREATE [TEMP] VIEW [IF NOT EXISTS] name [(cols)] AS select.
func BuildCreateView(n *cst.Node) (*ast.CreateViewStmt, error) {
	if err := expectRule(n, cst.RuleCreateView); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.CreateViewStmt{
		Temp:        c.optional(cst.RuleTemp) != nil,
		IfNotExists: c.optional(cst.RuleIfNotExists) != nil,
	}
	var err error
	if stmt.View, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	if stmt.Columns, err = optionalIdents(c); err != nil {
		return nil, err
	}
	sel, err := c.next(cst.RuleSelect)
	if err != nil {
		return nil, err
	}
	if stmt.Select, err = BuildSelect(sel); err != nil {
		return nil, err
	}
	if err := c.done(); err != nil {
		return nil, err
	}
	return stmt, nil
}

var triggerTimings = map[cst.Rule]ast.TriggerTiming{
	cst.RuleBefore:    ast.TriggerBefore,
	cst.RuleAfter:     ast.TriggerAfter,
	cst.RuleInsteadOf: ast.TriggerInsteadOf,
}

// BuildCreateTrigger builds a trigger definition. Timing defaults to BEFORE;
// the body holds at least one DML statement.
func BuildCreateTrigger(n *cst.Node) (*ast.CreateTriggerStmt, error) {
	if err := expectRule(n, cst.RuleCreateTrigger); err != nil {
		return nil, err
	}
	c := newCursor(n)
	stmt := &ast.CreateTriggerStmt{
		Temp:        c.optional(cst.RuleTemp) != nil,
		IfNotExists: c.optional(cst.RuleIfNotExists) != nil,
	}
	var err error
	if stmt.Trigger, err = nextSchemaObject(c); err != nil {
		return nil, err
	}
	if timing := c.optional(cst.RuleBefore, cst.RuleAfter, cst.RuleInsteadOf); timing != nil {
		stmt.Timing = triggerTimings[timing.Rule]
	}

	event, err := c.next(cst.RuleTriggerDelete, cst.RuleTriggerInsert, cst.RuleTriggerUpdate)
	if err != nil {
		return nil, err
	}
	switch event.Rule {
	case cst.RuleTriggerDelete:
		stmt.Event.Kind = ast.TriggerDelete
	case cst.RuleTriggerInsert:
		stmt.Event.Kind = ast.TriggerInsert
	default:
		stmt.Event.Kind = ast.TriggerUpdate
		ec := newCursor(event)
		if stmt.Event.Columns, err = optionalIdents(ec); err != nil {
			return nil, err
		}
		if err := ec.done(); err != nil {
			return nil, err
		}
	}

	if stmt.Table, err = nextIdent(c); err != nil {
		return nil, err
	}
	if when := c.optional(cst.RuleWhenClause); when != nil {
		if stmt.When, err = buildExprChild(when, cst.RuleWhenClause); err != nil {
			return nil, err
		}
	}

	body := c.rest()
	if len(body) == 0 {
		return nil, mismatch(n, nil, dmlRules...)
	}
	for _, child := range body {
		dml, err := buildDML(child)
		if err != nil {
			return nil, err
		}
		stmt.Body = append(stmt.Body, dml)
	}
	return stmt, nil
}
