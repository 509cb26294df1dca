package grammar

import (
	"fmt"

	"github.com/JayabrataBasu/sqlast/pkg/cst"
)

// Parser is a recursive-descent recognizer producing CST nodes.
type Parser struct {
	src     string
	lexer   *Lexer
	cur     Token
	peek    Token
	prevEnd int // end offset of the last consumed token
	exp     expectations
}

// NewParser creates a new parser for the input SQL.
func NewParser(input string) *Parser {
	p := &Parser{src: input, lexer: NewLexer(input)}
	// Read two tokens to initialize cur and peek
	p.nextToken()
	p.nextToken()
	p.prevEnd = 0
	return p
}

// Parse splits src into ';'-separated statements and returns one CST node per
// statement, in input order. A trailing ';' is optional and empty statements
// are skipped.
func Parse(src string) ([]*cst.Node, error) {
	return NewParser(src).ParseStatements()
}

// ParseRule parses the whole of src as a single instance of rule.
func ParseRule(rule cst.Rule, src string) (*cst.Node, error) {
	p := NewParser(src)
	fn, ok := ruleEntryPoints[rule]
	if !ok {
		return nil, fmt.Errorf("grammar: %s is not an entry rule", rule)
	}
	n, err := fn(p)
	if err != nil {
		return nil, err
	}
	if n.Rule != rule {
		return nil, p.failAt(n.Span.Start, rule.String())
	}
	if isStatementRule(rule) {
		p.accept(TOKEN_SEMICOLON)
	}
	if !p.check(TOKEN_EOF) {
		return nil, p.fail()
	}
	return n, nil
}

var ruleEntryPoints map[cst.Rule]func(*Parser) (*cst.Node, error)

func init() {
	ruleEntryPoints = map[cst.Rule]func(*Parser) (*cst.Node, error){
		cst.RuleExpr:             (*Parser).parseExpr,
		cst.RuleLiteral:          func(p *Parser) (*cst.Node, error) { return p.parseLiteral(true) },
		cst.RuleIdent:            (*Parser).parseIdent,
		cst.RuleSchemaObject:     (*Parser).parseSchemaObject,
		cst.RuleTypeName:         (*Parser).parseTypeName,
		cst.RuleColumnDef:        (*Parser).parseColumnDef,
		cst.RuleCreateTableBody:  (*Parser).parseCreateTableBody,
		cst.RuleColumnConstraint: (*Parser).parseColumnConstraint,
		cst.RuleTableConstraint:  (*Parser).parseTableConstraint,
		cst.RuleIndexedColumn:    (*Parser).parseIndexedColumn,
		cst.RuleOrderingTerm:     (*Parser).parseOrderingTerm,
		cst.RuleResultColumn:     (*Parser).parseResultColumn,
		cst.RuleQualifiedTable:   (*Parser).parseQualifiedTable,
		cst.RuleJoinOperator: func(p *Parser) (*cst.Node, error) {
			n, err := p.parseJoinOperator()
			if err == nil && n == nil {
				err = p.fail()
			}
			return n, err
		},
	}
	for _, r := range statementRules {
		ruleEntryPoints[r] = (*Parser).parseStatement
	}
}

var statementRules = []cst.Rule{
	cst.RuleSelect, cst.RuleInsert, cst.RuleUpdate, cst.RuleDelete,
	cst.RuleCreateTable, cst.RuleCreateIndex, cst.RuleCreateView, cst.RuleCreateTrigger,
	cst.RuleAlterTable, cst.RuleDropTable, cst.RuleDropIndex, cst.RuleDropView, cst.RuleDropTrigger,
	cst.RuleBegin, cst.RuleCommit, cst.RuleRollback, cst.RuleSavepoint, cst.RuleRelease,
}

func isStatementRule(r cst.Rule) bool {
	return r.In(statementRules...)
}

// ParseStatements parses the remaining input as a statement list.
func (p *Parser) ParseStatements() ([]*cst.Node, error) {
	var stmts []*cst.Node
	for {
		for p.curTokenIs(TOKEN_SEMICOLON) {
			p.nextToken()
		}
		if p.curTokenIs(TOKEN_EOF) {
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.accept(TOKEN_SEMICOLON) {
			continue
		}
		if p.check(TOKEN_EOF) {
			return stmts, nil
		}
		return nil, p.fail()
	}
}

func (p *Parser) parseStatement() (*cst.Node, error) {
	switch p.cur.Type {
	case TOKEN_SELECT, TOKEN_VALUES:
		return p.parseSelect()
	case TOKEN_INSERT, TOKEN_REPLACE:
		return p.parseInsert()
	case TOKEN_UPDATE:
		return p.parseUpdate()
	case TOKEN_DELETE:
		return p.parseDelete()
	case TOKEN_CREATE:
		return p.parseCreate()
	case TOKEN_ALTER:
		return p.parseAlterTable()
	case TOKEN_DROP:
		return p.parseDrop()
	case TOKEN_BEGIN:
		return p.parseBegin()
	case TOKEN_COMMIT, TOKEN_END:
		return p.parseCommit()
	case TOKEN_ROLLBACK:
		return p.parseRollback()
	case TOKEN_SAVEPOINT:
		return p.parseSavepoint()
	case TOKEN_RELEASE:
		return p.parseRelease()
	}
	return nil, p.fail("SELECT", "VALUES", "INSERT", "REPLACE", "UPDATE", "DELETE",
		"CREATE", "ALTER", "DROP", "BEGIN", "COMMIT", "END", "ROLLBACK", "SAVEPOINT", "RELEASE")
}

func (p *Parser) nextToken() {
	p.prevEnd = p.cur.End()
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) curTokenIs(t TokenType) bool {
	return p.cur.Type == t
}

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peek.Type == t
}

// check is curTokenIs that also records t as an expected alternative.
func (p *Parser) check(t TokenType) bool {
	if p.cur.Type == t {
		return true
	}
	p.exp.add(p.cur.Pos, t.String())
	return false
}

// accept consumes the current token if it has type t.
func (p *Parser) accept(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) expect(t TokenType) error {
	if p.accept(t) {
		return nil
	}
	return p.fail()
}

// fail builds a SyntaxError at the current token from the alternatives
// recorded there plus any extra names given.
func (p *Parser) fail(expected ...string) error {
	return p.failAt(p.cur.Pos, expected...)
}

func (p *Parser) failAt(pos int, expected ...string) error {
	for _, e := range expected {
		p.exp.add(pos, e)
	}
	line, col := lineColumn(p.src, pos)
	found := describe(p.cur)
	if pos != p.cur.Pos {
		found = "input"
	}
	return &SyntaxError{
		Pos:      pos,
		Line:     line,
		Column:   col,
		Found:    found,
		Expected: p.exp.list(pos),
	}
}

// leaf consumes the current token as a leaf node.
func (p *Parser) leaf(rule cst.Rule) *cst.Node {
	tok := p.cur
	p.nextToken()
	return cst.NewLeaf(rule, tok.Literal, cst.Span{Start: tok.Pos, End: tok.End()})
}

// span makes a leaf covering every token consumed since start.
func (p *Parser) span(rule cst.Rule, start int) *cst.Node {
	return cst.NewLeaf(rule, p.src[start:p.prevEnd], cst.Span{Start: start, End: p.prevEnd})
}

func (p *Parser) close(n *cst.Node, start int) *cst.Node {
	return n.Close(p.src, start, p.prevEnd)
}

// keywords consumes a fixed keyword sequence, failing at the first mismatch.
func (p *Parser) keywords(types ...TokenType) error {
	for _, t := range types {
		if err := p.expect(t); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) isIdent() bool {
	switch {
	case p.cur.Type == TOKEN_IDENT, p.cur.Type == TOKEN_QUOTED_IDENT:
		return true
	case p.cur.Type.IsContextual():
		return true
	}
	p.exp.add(p.cur.Pos, "identifier")
	return false
}

func (p *Parser) parseIdent() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleIdent)
	switch {
	case p.cur.Type == TOKEN_QUOTED_IDENT:
		n.Add(p.leaf(cst.RuleIdentQuoted))
	case p.isIdent():
		n.Add(p.leaf(cst.RuleIdentBare))
	default:
		return nil, p.fail()
	}
	return p.close(n, start), nil
}

// parseIdents parses ident (',' ident)*, optionally wrapped in parentheses.
func (p *Parser) parseIdents(parens bool) (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleIdents)
	if parens {
		if err := p.expect(TOKEN_LPAREN); err != nil {
			return nil, err
		}
	}
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(id)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if parens {
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}
	return p.close(n, start), nil
}

// parseAlias parses [AS] alias. Without AS only a plain or quoted identifier
// is taken, so keywords that follow a table or column are left alone.
func (p *Parser) parseAlias() (*cst.Node, error) {
	if p.accept(TOKEN_AS) {
		return p.parseIdent()
	}
	if p.check(TOKEN_IDENT) || p.curTokenIs(TOKEN_QUOTED_IDENT) {
		return p.parseIdent()
	}
	return nil, nil
}

func (p *Parser) parseSchemaObject() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleSchemaObject)
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(id)
	if p.accept(TOKEN_DOT) {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		n.Add(id)
	}
	return p.close(n, start), nil
}

var conflictRules = map[TokenType]cst.Rule{
	TOKEN_ABORT:    cst.RuleConflictAbort,
	TOKEN_FAIL:     cst.RuleConflictFail,
	TOKEN_IGNORE:   cst.RuleConflictIgnore,
	TOKEN_REPLACE:  cst.RuleConflictReplace,
	TOKEN_ROLLBACK: cst.RuleConflictRollback,
}

func (p *Parser) parseConflictResolution() (*cst.Node, error) {
	start := p.cur.Pos
	rule, ok := conflictRules[p.cur.Type]
	if !ok {
		return nil, p.fail("ABORT", "FAIL", "IGNORE", "REPLACE", "ROLLBACK")
	}
	n := cst.NewNode(cst.RuleConflictResolution)
	n.Add(p.leaf(rule))
	return p.close(n, start), nil
}

// skipConflictClause accepts and discards ON CONFLICT <resolution>.
func (p *Parser) skipConflictClause() error {
	if !p.curTokenIs(TOKEN_ON) {
		p.exp.add(p.cur.Pos, TOKEN_ON.String())
		return nil
	}
	if err := p.keywords(TOKEN_ON, TOKEN_CONFLICT); err != nil {
		return err
	}
	_, err := p.parseConflictResolution()
	return err
}

// parseIfExists parses IF [NOT] EXISTS into a single flag leaf, or returns nil.
func (p *Parser) parseIfExists(not bool) (*cst.Node, error) {
	start := p.cur.Pos
	if !p.accept(TOKEN_IF) {
		return nil, nil
	}
	rule := cst.RuleIfExists
	if not {
		if err := p.expect(TOKEN_NOT); err != nil {
			return nil, err
		}
		rule = cst.RuleIfNotExists
	}
	if err := p.expect(TOKEN_EXISTS); err != nil {
		return nil, err
	}
	return p.span(rule, start), nil
}

// parseWhere parses an optional WHERE expr clause, or returns nil.
func (p *Parser) parseWhere() (*cst.Node, error) {
	return p.parseKeywordExpr(TOKEN_WHERE, cst.RuleWhereClause)
}

// parseKeywordExpr parses "<keyword> expr" into a node of the given rule.
func (p *Parser) parseKeywordExpr(kw TokenType, rule cst.Rule) (*cst.Node, error) {
	start := p.cur.Pos
	if !p.accept(kw) {
		return nil, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	n := cst.NewNode(rule)
	n.Add(e)
	return p.close(n, start), nil
}

// parseIndexedColumns parses '(' indexed_column (',' indexed_column)* ')'.
func (p *Parser) parseIndexedColumns() (*cst.Node, error) {
	start := p.cur.Pos
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	n := cst.NewNode(cst.RuleIndexedColumns)
	for {
		c, err := p.parseIndexedColumn()
		if err != nil {
			return nil, err
		}
		n.Add(c)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return p.close(n, start), nil
}

func (p *Parser) parseIndexedColumn() (*cst.Node, error) {
	start := p.cur.Pos
	n := cst.NewNode(cst.RuleIndexedColumn)
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n.Add(id)
	if dir := p.parseDirection(); dir != nil {
		n.Add(dir)
	}
	return p.close(n, start), nil
}

// parseDirection parses an optional ASC or DESC leaf.
func (p *Parser) parseDirection() *cst.Node {
	if p.check(TOKEN_ASC) {
		return p.leaf(cst.RuleAsc)
	}
	if p.check(TOKEN_DESC) {
		return p.leaf(cst.RuleDesc)
	}
	return nil
}
