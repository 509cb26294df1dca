package grammar

import "github.com/JayabrataBasu/sqlast/pkg/cst"

// parseCreate dispatches CREATE [TEMP] TABLE|VIEW|TRIGGER and CREATE [UNIQUE] INDEX.
func (p *Parser) parseCreate() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_CREATE); err != nil {
		return nil, err
	}

	var temp *cst.Node
	if p.check(TOKEN_TEMP) {
		temp = p.leaf(cst.RuleTemp)
	}

	switch {
	case p.check(TOKEN_TABLE):
		return p.parseCreateTable(start, temp)
	case p.check(TOKEN_VIEW):
		return p.parseCreateView(start, temp)
	case p.check(TOKEN_TRIGGER):
		return p.parseCreateTrigger(start, temp)
	case temp == nil && (p.check(TOKEN_UNIQUE) || p.check(TOKEN_INDEX)):
		return p.parseCreateIndex(start)
	}
	return nil, p.fail()
}

// parseCreateHead parses the shared "<kind> [IF NOT EXISTS] schema_object" part.
func (p *Parser) parseCreateHead(n *cst.Node, kind TokenType) error {
	if err := p.expect(kind); err != nil {
		return err
	}
	ine, err := p.parseIfExists(true)
	if err != nil {
		return err
	}
	if ine != nil {
		n.Add(ine)
	}
	obj, err := p.parseSchemaObject()
	if err != nil {
		return err
	}
	n.Add(obj)
	return nil
}

func (p *Parser) parseCreateTable(start int, temp *cst.Node) (*cst.Node, error) {
	n := cst.NewNode(cst.RuleCreateTable)
	if temp != nil {
		n.Add(temp)
	}
	if err := p.parseCreateHead(n, TOKEN_TABLE); err != nil {
		return nil, err
	}

	body, err := p.parseCreateTableBody()
	if err != nil {
		return nil, err
	}
	n.Add(body)
	return p.close(n, start), nil
}

// parseCreateTableBody parses AS select, or (column_defs [, table_constraints]) [options].
func (p *Parser) parseCreateTableBody() (*cst.Node, error) {
	bstart := p.cur.Pos
	body := cst.NewNode(cst.RuleCreateTableBody)
	if p.accept(TOKEN_AS) {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		body.Add(sel)
		return p.close(body, bstart), nil
	}

	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	defs := cst.NewNode(cst.RuleColumnDefs)
	dstart := p.cur.Pos
	var constraints *cst.Node
	for {
		def, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		defs.Add(def)
		dend := p.prevEnd
		if !p.accept(TOKEN_COMMA) {
			break
		}
		if p.startsTableConstraint() {
			defs.Close(p.src, dstart, dend)
			constraints, err = p.parseTableConstraints()
			if err != nil {
				return nil, err
			}
			break
		}
	}
	if constraints == nil {
		p.close(defs, dstart)
	}
	body.Add(defs)
	if constraints != nil {
		body.Add(constraints)
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}

	for {
		ostart := p.cur.Pos
		switch {
		case p.accept(TOKEN_WITHOUT):
			if err := p.expect(TOKEN_ROWID); err != nil {
				return nil, err
			}
			body.Add(p.span(cst.RuleWithoutRowid, ostart))
		case p.check(TOKEN_STRICT):
			body.Add(p.leaf(cst.RuleStrict))
		default:
			return p.close(body, bstart), nil
		}
		if !p.accept(TOKEN_COMMA) {
			return p.close(body, bstart), nil
		}
	}
}

func (p *Parser) startsTableConstraint() bool {
	switch p.cur.Type {
	case TOKEN_CONSTRAINT, TOKEN_PRIMARY, TOKEN_UNIQUE:
		return true
	}
	return false
}

// parseColumnDef parses name [type] [constraint...].
func (p *Parser) parseColumnDef() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleColumnDef)
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(name)

	if p.startsTypeName() {
		tn, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		n.Add(tn)
	}

	cstart := p.cur.Pos
	constraints := cst.NewNode(cst.RuleColumnConstraints)
	for p.startsColumnConstraint() {
		c, err := p.parseColumnConstraint()
		if err != nil {
			return nil, err
		}
		constraints.Add(c)
	}
	if len(constraints.Children) > 0 {
		n.Add(p.close(constraints, cstart))
	}
	return p.close(n, start), nil
}

func (p *Parser) startsTypeName() bool {
	if p.cur.Type == TOKEN_IDENT || p.cur.Type.IsContextual() {
		return true
	}
	p.exp.add(p.cur.Pos, "type name")
	return false
}

// parseTypeName parses word+ ['(' number [',' number] ')'].
func (p *Parser) parseTypeName() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleTypeName)
	if !p.startsTypeName() {
		return nil, p.fail()
	}
	for p.cur.Type == TOKEN_IDENT || p.cur.Type.IsContextual() {
		p.nextToken()
	}
	n.Add(p.span(cst.RuleTypeIdent, start))

	if p.accept(TOKEN_LPAREN) {
		if !p.check(TOKEN_NUMBER) {
			return nil, p.fail()
		}
		n.Add(p.leaf(cst.RuleNumber))
		if p.accept(TOKEN_COMMA) {
			if !p.check(TOKEN_NUMBER) {
				return nil, p.fail()
			}
			n.Add(p.leaf(cst.RuleNumber))
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}
	return p.close(n, start), nil
}

func (p *Parser) startsColumnConstraint() bool {
	switch p.cur.Type {
	case TOKEN_CONSTRAINT, TOKEN_PRIMARY, TOKEN_NOT, TOKEN_UNIQUE, TOKEN_CHECK, TOKEN_DEFAULT:
		return true
	}
	p.exp.add(p.cur.Pos, "column constraint")
	return false
}

// parseColumnConstraint parses [CONSTRAINT name] followed by one of
// PRIMARY KEY, NOT NULL, UNIQUE, CHECK (expr) or DEFAULT literal.
func (p *Parser) parseColumnConstraint() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleColumnConstraint)
	if p.accept(TOKEN_CONSTRAINT) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(name)
	}

	kstart := p.cur.Pos
	switch {
	case p.accept(TOKEN_PRIMARY):
		if err := p.expect(TOKEN_KEY); err != nil {
			return nil, err
		}
		pk := cst.NewNode(cst.RulePrimaryKeyConstraint)
		if dir := p.parseDirection(); dir != nil {
			pk.Add(dir)
		}
		if err := p.skipConflictClause(); err != nil {
			return nil, err
		}
		if p.check(TOKEN_AUTOINCREMENT) {
			pk.Add(p.leaf(cst.RuleAutoIncrement))
		}
		n.Add(p.close(pk, kstart))
	case p.accept(TOKEN_NOT):
		if err := p.expect(TOKEN_NULL); err != nil {
			return nil, err
		}
		nn := p.close(cst.NewNode(cst.RuleNotNullConstraint), kstart)
		if err := p.skipConflictClause(); err != nil {
			return nil, err
		}
		n.Add(nn)
	case p.accept(TOKEN_UNIQUE):
		u := p.close(cst.NewNode(cst.RuleUniqueConstraint), kstart)
		if err := p.skipConflictClause(); err != nil {
			return nil, err
		}
		n.Add(u)
	case p.accept(TOKEN_CHECK):
		if err := p.expect(TOKEN_LPAREN); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		check := cst.NewNode(cst.RuleCheckConstraint)
		check.Add(e)
		n.Add(p.close(check, kstart))
	case p.accept(TOKEN_DEFAULT):
		lit, err := p.parseLiteral(true)
		if err != nil {
			return nil, err
		}
		def := cst.NewNode(cst.RuleDefaultConstraint)
		def.Add(lit)
		n.Add(p.close(def, kstart))
	default:
		return nil, p.fail("PRIMARY", "NOT", "UNIQUE", "CHECK", "DEFAULT")
	}
	return p.close(n, start), nil
}

func (p *Parser) parseTableConstraints() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleTableConstraints)
	for {
		c, err := p.parseTableConstraint()
		if err != nil {
			return nil, err
		}
		n.Add(c)
		if !p.curTokenIs(TOKEN_COMMA) {
			break
		}
		p.nextToken()
	}
	return p.close(n, start), nil
}

// parseTableConstraint parses [CONSTRAINT name] (PRIMARY KEY | UNIQUE) (cols) [ON CONFLICT resolution].
func (p *Parser) parseTableConstraint() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleTableConstraint)
	if p.accept(TOKEN_CONSTRAINT) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(name)
	}

	kstart := p.cur.Pos
	var kind *cst.Node
	switch {
	case p.accept(TOKEN_PRIMARY):
		if err := p.expect(TOKEN_KEY); err != nil {
			return nil, err
		}
		kind = cst.NewNode(cst.RuleTablePrimaryKey)
	case p.accept(TOKEN_UNIQUE):
		kind = cst.NewNode(cst.RuleTableUnique)
	default:
		return nil, p.fail()
	}
	cols, err := p.parseIndexedColumns()
	if err != nil {
		return nil, err
	}
	kind.Add(cols)
	n.Add(p.close(kind, kstart))
	if err := p.skipConflictClause(); err != nil {
		return nil, err
	}
	return p.close(n, start), nil
}

// parseAlterTable parses ALTER TABLE name followed by RENAME TO, RENAME [COLUMN],
// ADD [COLUMN] or DROP [COLUMN].
func (p *Parser) parseAlterTable() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleAlterTable)
	if err := p.keywords(TOKEN_ALTER, TOKEN_TABLE); err != nil {
		return nil, err
	}
	obj, err := p.parseSchemaObject()
	if err != nil {
		return nil, err
	}
	n.Add(obj)

	astart := p.cur.Pos
	var action *cst.Node
	switch {
	case p.accept(TOKEN_RENAME):
		if p.accept(TOKEN_TO) {
			action = cst.NewNode(cst.RuleRenameTable)
			to, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			action.Add(to)
			break
		}
		p.skipColumnKeyword(TOKEN_TO)
		action = cst.NewNode(cst.RuleRenameColumn)
		from, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_TO); err != nil {
			return nil, err
		}
		to, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		action.Add(from, to)
	case p.accept(TOKEN_ADD):
		p.skipColumnKeyword(TOKEN_EOF)
		action = cst.NewNode(cst.RuleAddColumn)
		def, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		action.Add(def)
	case p.accept(TOKEN_DROP):
		p.skipColumnKeyword(TOKEN_EOF)
		action = cst.NewNode(cst.RuleDropColumn)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		action.Add(name)
	default:
		return nil, p.fail()
	}
	n.Add(p.close(action, astart))
	return p.close(n, start), nil
}

// skipColumnKeyword consumes an optional COLUMN keyword unless it is itself
// the column name, i.e. followed by stop or by something other than a name.
func (p *Parser) skipColumnKeyword(stop TokenType) {
	if !p.curTokenIs(TOKEN_COLUMN) || p.peekTokenIs(stop) {
		return
	}
	switch {
	case p.peek.Type == TOKEN_IDENT, p.peek.Type == TOKEN_QUOTED_IDENT, p.peek.Type.IsContextual():
		p.nextToken()
	}
}

var dropRules = map[TokenType]cst.Rule{
	TOKEN_TABLE:   cst.RuleDropTable,
	TOKEN_INDEX:   cst.RuleDropIndex,
	TOKEN_VIEW:    cst.RuleDropView,
	TOKEN_TRIGGER: cst.RuleDropTrigger,
}

// parseDrop parses DROP TABLE|INDEX|VIEW|TRIGGER [IF EXISTS] name.
func (p *Parser) parseDrop() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_DROP); err != nil {
		return nil, err
	}
	rule, ok := dropRules[p.cur.Type]
	if !ok {
		return nil, p.fail("TABLE", "INDEX", "VIEW", "TRIGGER")
	}
	p.nextToken()
	n := cst.NewNode(rule)
	ie, err := p.parseIfExists(false)
	if err != nil {
		return nil, err
	}
	if ie != nil {
		n.Add(ie)
	}
	obj, err := p.parseSchemaObject()
	if err != nil {
		return nil, err
	}
	n.Add(obj)
	return p.close(n, start), nil
}

// parseCreateIndex parses [UNIQUE] INDEX [IF NOT EXISTS] name ON table (cols) [WHERE expr].
func (p *Parser) parseCreateIndex(start int) (*cst.Node, error) {
	n := cst.NewNode(cst.RuleCreateIndex)
	if p.check(TOKEN_UNIQUE) {
		n.Add(p.leaf(cst.RuleUnique))
	}
	if err := p.parseCreateHead(n, TOKEN_INDEX); err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_ON); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(table)
	cols, err := p.parseIndexedColumns()
	if err != nil {
		return nil, err
	}
	n.Add(cols)
	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	if where != nil {
		n.Add(where)
	}
	return p.close(n, start), nil
}

// parseCreateView parses [TEMP] VIEW [IF NOT EXISTS] name [(cols)] AS select.
func (p *Parser) parseCreateView(start int, temp *cst.Node) (*cst.Node, error) {
	n := cst.NewNode(cst.RuleCreateView)
	if temp != nil {
		n.Add(temp)
	}
	if err := p.parseCreateHead(n, TOKEN_VIEW); err != nil {
		return nil, err
	}
	if p.check(TOKEN_LPAREN) {
		cols, err := p.parseIdents(true)
		if err != nil {
			return nil, err
		}
		n.Add(cols)
	}
	if err := p.expect(TOKEN_AS); err != nil {
		return nil, err
	}
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	n.Add(sel)
	return p.close(n, start), nil
}

// parseCreateTrigger parses:
//
//	[TEMP] TRIGGER [IF NOT EXISTS] name [BEFORE|AFTER|INSTEAD OF]
//	DELETE|INSERT|UPDATE [OF cols] ON table [FOR EACH ROW] [WHEN expr]
//	BEGIN (dml ';')+ END
func (p *Parser) parseCreateTrigger(start int, temp *cst.Node) (*cst.Node, error) {
	n := cst.NewNode(cst.RuleCreateTrigger)
	if temp != nil {
		n.Add(temp)
	}
	if err := p.parseCreateHead(n, TOKEN_TRIGGER); err != nil {
		return nil, err
	}

	tstart := p.cur.Pos
	switch {
	case p.check(TOKEN_BEFORE):
		n.Add(p.leaf(cst.RuleBefore))
	case p.check(TOKEN_AFTER):
		n.Add(p.leaf(cst.RuleAfter))
	case p.accept(TOKEN_INSTEAD):
		if err := p.expect(TOKEN_OF); err != nil {
			return nil, err
		}
		n.Add(p.span(cst.RuleInsteadOf, tstart))
	}

	estart := p.cur.Pos
	switch {
	case p.check(TOKEN_DELETE):
		n.Add(p.leaf(cst.RuleTriggerDelete))
	case p.check(TOKEN_INSERT):
		n.Add(p.leaf(cst.RuleTriggerInsert))
	case p.accept(TOKEN_UPDATE):
		upd := cst.NewNode(cst.RuleTriggerUpdate)
		if p.accept(TOKEN_OF) {
			cols, err := p.parseIdents(false)
			if err != nil {
				return nil, err
			}
			upd.Add(cols)
		}
		n.Add(p.close(upd, estart))
	default:
		return nil, p.fail()
	}

	if err := p.expect(TOKEN_ON); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(table)

	if p.accept(TOKEN_FOR) {
		if err := p.keywords(TOKEN_EACH, TOKEN_ROW); err != nil {
			return nil, err
		}
	}
	when, err := p.parseKeywordExpr(TOKEN_WHEN, cst.RuleWhenClause)
	if err != nil {
		return nil, err
	}
	if when != nil {
		n.Add(when)
	}

	if err := p.expect(TOKEN_BEGIN); err != nil {
		return nil, err
	}
	for {
		var stmt *cst.Node
		var err error
		switch {
		case p.check(TOKEN_SELECT), p.check(TOKEN_VALUES):
			stmt, err = p.parseSelect()
		case p.check(TOKEN_INSERT), p.check(TOKEN_REPLACE):
			stmt, err = p.parseInsert()
		case p.check(TOKEN_UPDATE):
			stmt, err = p.parseUpdate()
		case p.check(TOKEN_DELETE):
			stmt, err = p.parseDelete()
		default:
			if len(n.Children) > 0 && n.Children[len(n.Children)-1].Rule.In(cst.RuleSelect, cst.RuleInsert, cst.RuleUpdate, cst.RuleDelete) && p.accept(TOKEN_END) {
				return p.close(n, start), nil
			}
			return nil, p.fail()
		}
		if err != nil {
			return nil, err
		}
		n.Add(stmt)
		if err := p.expect(TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
	}
}

// parseBegin parses BEGIN [DEFERRED|IMMEDIATE|EXCLUSIVE] [TRANSACTION].
func (p *Parser) parseBegin() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleBegin)
	if err := p.expect(TOKEN_BEGIN); err != nil {
		return nil, err
	}
	switch {
	case p.check(TOKEN_DEFERRED):
		n.Add(p.leaf(cst.RuleDeferred))
	case p.check(TOKEN_IMMEDIATE):
		n.Add(p.leaf(cst.RuleImmediate))
	case p.check(TOKEN_EXCLUSIVE):
		n.Add(p.leaf(cst.RuleExclusive))
	}
	p.accept(TOKEN_TRANSACTION)
	return p.close(n, start), nil
}

// parseCommit parses COMMIT [TRANSACTION] or END [TRANSACTION].
func (p *Parser) parseCommit() (*cst.Node, error) {
	start := p.cur.Pos
	if !p.accept(TOKEN_COMMIT) && !p.accept(TOKEN_END) {
		return nil, p.fail()
	}
	p.accept(TOKEN_TRANSACTION)
	return p.close(cst.NewNode(cst.RuleCommit), start), nil
}

// parseRollback parses ROLLBACK [TRANSACTION] [TO [SAVEPOINT] name].
func (p *Parser) parseRollback() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleRollback)
	if err := p.expect(TOKEN_ROLLBACK); err != nil {
		return nil, err
	}
	p.accept(TOKEN_TRANSACTION)
	if p.accept(TOKEN_TO) {
		p.accept(TOKEN_SAVEPOINT)
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(name)
	}
	return p.close(n, start), nil
}

// parseSavepoint parses SAVEPOINT name.
func (p *Parser) parseSavepoint() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleSavepoint)
	if err := p.expect(TOKEN_SAVEPOINT); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(name)
	return p.close(n, start), nil
}

// parseRelease parses RELEASE [SAVEPOINT] name.
func (p *Parser) parseRelease() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleRelease)
	if err := p.expect(TOKEN_RELEASE); err != nil {
		return nil, err
	}
	p.accept(TOKEN_SAVEPOINT)
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(name)
	return p.close(n, start), nil
}
