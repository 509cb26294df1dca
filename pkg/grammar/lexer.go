// Package grammar turns SQL text into a concrete syntax tree.
//
// The lexer and the recursive-descent recognizer in this package are the
// only place where SQL surface syntax is known. Their output is a tree of
// cst.Node values tagged with cst.Rule, one top-level node per statement.
package grammar

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_IDENT        // bare identifiers
	TOKEN_QUOTED_IDENT // "ident", `ident` or [ident]
	TOKEN_NUMBER       // 123, 1.5, .5, 1e10
	TOKEN_STRING       // 'hello'
	TOKEN_BLOB         // x'0a1b'

	// Operators and delimiters
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_DOT       // .
	TOKEN_STAR      // *
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_SLASH     // /
	TOKEN_PERCENT   // %
	TOKEN_EQ        // = or ==
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_LE        // <=
	TOKEN_GT        // >
	TOKEN_GE        // >=
	TOKEN_LSHIFT    // <<
	TOKEN_RSHIFT    // >>
	TOKEN_AMP       // &
	TOKEN_PIPE      // |
	TOKEN_CONCAT    // ||
	TOKEN_TILDE     // ~

	// Reserved keywords
	TOKEN_SELECT
	TOKEN_FROM
	TOKEN_WHERE
	TOKEN_INSERT
	TOKEN_INTO
	TOKEN_VALUES
	TOKEN_UPDATE
	TOKEN_SET
	TOKEN_DELETE
	TOKEN_CREATE
	TOKEN_TABLE
	TOKEN_DROP
	TOKEN_ALTER
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT
	TOKEN_IS
	TOKEN_NULL
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_PRIMARY
	TOKEN_UNIQUE
	TOKEN_CHECK
	TOKEN_DEFAULT
	TOKEN_CONSTRAINT
	TOKEN_INDEX
	TOKEN_VIEW
	TOKEN_TRIGGER
	TOKEN_ON
	TOKEN_USING
	TOKEN_AS
	TOKEN_IF
	TOKEN_EXISTS
	TOKEN_TO
	TOKEN_ORDER
	TOKEN_BY
	TOKEN_ASC
	TOKEN_DESC
	TOKEN_LIMIT
	TOKEN_OFFSET
	TOKEN_GROUP
	TOKEN_HAVING
	TOKEN_DISTINCT
	TOKEN_ALL
	TOKEN_UNION
	TOKEN_INTERSECT
	TOKEN_EXCEPT
	TOKEN_JOIN
	TOKEN_INNER
	TOKEN_LEFT
	TOKEN_RIGHT
	TOKEN_FULL
	TOKEN_CROSS
	TOKEN_OUTER
	TOKEN_NATURAL
	TOKEN_REPLACE
	TOKEN_RETURNING
	TOKEN_WHEN
	TOKEN_BEGIN
	TOKEN_COMMIT
	TOKEN_END
	TOKEN_ROLLBACK
	TOKEN_SAVEPOINT
	TOKEN_RELEASE

	// Contextual keywords: recognised where the grammar expects them and
	// usable as identifiers everywhere else.
	TOKEN_KEY
	TOKEN_AUTOINCREMENT
	TOKEN_WITHOUT
	TOKEN_ROWID
	TOKEN_STRICT
	TOKEN_NULLS
	TOKEN_FIRST
	TOKEN_LAST
	TOKEN_TEMP
	TOKEN_CONFLICT
	TOKEN_DO
	TOKEN_NOTHING
	TOKEN_ABORT
	TOKEN_FAIL
	TOKEN_IGNORE
	TOKEN_INDEXED
	TOKEN_DEFERRED
	TOKEN_IMMEDIATE
	TOKEN_EXCLUSIVE
	TOKEN_TRANSACTION
	TOKEN_BEFORE
	TOKEN_AFTER
	TOKEN_INSTEAD
	TOKEN_OF
	TOKEN_FOR
	TOKEN_EACH
	TOKEN_ROW
	TOKEN_RENAME
	TOKEN_ADD
	TOKEN_COLUMN

	tokenCount
)

var keywords = map[string]TokenType{
	"SELECT":     TOKEN_SELECT,
	"FROM":       TOKEN_FROM,
	"WHERE":      TOKEN_WHERE,
	"INSERT":     TOKEN_INSERT,
	"INTO":       TOKEN_INTO,
	"VALUES":     TOKEN_VALUES,
	"UPDATE":     TOKEN_UPDATE,
	"SET":        TOKEN_SET,
	"DELETE":     TOKEN_DELETE,
	"CREATE":     TOKEN_CREATE,
	"TABLE":      TOKEN_TABLE,
	"DROP":       TOKEN_DROP,
	"ALTER":      TOKEN_ALTER,
	"AND":        TOKEN_AND,
	"OR":         TOKEN_OR,
	"NOT":        TOKEN_NOT,
	"IS":         TOKEN_IS,
	"NULL":       TOKEN_NULL,
	"TRUE":       TOKEN_TRUE,
	"FALSE":      TOKEN_FALSE,
	"PRIMARY":    TOKEN_PRIMARY,
	"UNIQUE":     TOKEN_UNIQUE,
	"CHECK":      TOKEN_CHECK,
	"DEFAULT":    TOKEN_DEFAULT,
	"CONSTRAINT": TOKEN_CONSTRAINT,
	"INDEX":      TOKEN_INDEX,
	"VIEW":       TOKEN_VIEW,
	"TRIGGER":    TOKEN_TRIGGER,
	"ON":         TOKEN_ON,
	"USING":      TOKEN_USING,
	"AS":         TOKEN_AS,
	"IF":         TOKEN_IF,
	"EXISTS":     TOKEN_EXISTS,
	"TO":         TOKEN_TO,
	"ORDER":      TOKEN_ORDER,
	"BY":         TOKEN_BY,
	"ASC":        TOKEN_ASC,
	"DESC":       TOKEN_DESC,
	"LIMIT":      TOKEN_LIMIT,
	"OFFSET":     TOKEN_OFFSET,
	"GROUP":      TOKEN_GROUP,
	"HAVING":     TOKEN_HAVING,
	"DISTINCT":   TOKEN_DISTINCT,
	"ALL":        TOKEN_ALL,
	"UNION":      TOKEN_UNION,
	"INTERSECT":  TOKEN_INTERSECT,
	"EXCEPT":     TOKEN_EXCEPT,
	"JOIN":       TOKEN_JOIN,
	"INNER":      TOKEN_INNER,
	"LEFT":       TOKEN_LEFT,
	"RIGHT":      TOKEN_RIGHT,
	"FULL":       TOKEN_FULL,
	"CROSS":      TOKEN_CROSS,
	"OUTER":      TOKEN_OUTER,
	"NATURAL":    TOKEN_NATURAL,
	"REPLACE":    TOKEN_REPLACE,
	"RETURNING":  TOKEN_RETURNING,
	"WHEN":       TOKEN_WHEN,
	"BEGIN":      TOKEN_BEGIN,
	"COMMIT":     TOKEN_COMMIT,
	"END":        TOKEN_END,
	"ROLLBACK":   TOKEN_ROLLBACK,
	"SAVEPOINT":  TOKEN_SAVEPOINT,
	"RELEASE":    TOKEN_RELEASE,

	"KEY":           TOKEN_KEY,
	"AUTOINCREMENT": TOKEN_AUTOINCREMENT,
	"WITHOUT":       TOKEN_WITHOUT,
	"ROWID":         TOKEN_ROWID,
	"STRICT":        TOKEN_STRICT,
	"NULLS":         TOKEN_NULLS,
	"FIRST":         TOKEN_FIRST,
	"LAST":          TOKEN_LAST,
	"TEMP":          TOKEN_TEMP,
	"TEMPORARY":     TOKEN_TEMP,
	"CONFLICT":      TOKEN_CONFLICT,
	"DO":            TOKEN_DO,
	"NOTHING":       TOKEN_NOTHING,
	"ABORT":         TOKEN_ABORT,
	"FAIL":          TOKEN_FAIL,
	"IGNORE":        TOKEN_IGNORE,
	"INDEXED":       TOKEN_INDEXED,
	"DEFERRED":      TOKEN_DEFERRED,
	"IMMEDIATE":     TOKEN_IMMEDIATE,
	"EXCLUSIVE":     TOKEN_EXCLUSIVE,
	"TRANSACTION":   TOKEN_TRANSACTION,
	"BEFORE":        TOKEN_BEFORE,
	"AFTER":         TOKEN_AFTER,
	"INSTEAD":       TOKEN_INSTEAD,
	"OF":            TOKEN_OF,
	"FOR":           TOKEN_FOR,
	"EACH":          TOKEN_EACH,
	"ROW":           TOKEN_ROW,
	"RENAME":        TOKEN_RENAME,
	"ADD":           TOKEN_ADD,
	"COLUMN":        TOKEN_COLUMN,
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:          "end of input",
	TOKEN_ILLEGAL:      "illegal character",
	TOKEN_IDENT:        "identifier",
	TOKEN_QUOTED_IDENT: "quoted identifier",
	TOKEN_NUMBER:       "number",
	TOKEN_STRING:       "string",
	TOKEN_BLOB:         "blob",
	TOKEN_COMMA:        "','",
	TOKEN_SEMICOLON:    "';'",
	TOKEN_LPAREN:       "'('",
	TOKEN_RPAREN:       "')'",
	TOKEN_DOT:          "'.'",
	TOKEN_STAR:         "'*'",
	TOKEN_PLUS:         "'+'",
	TOKEN_MINUS:        "'-'",
	TOKEN_SLASH:        "'/'",
	TOKEN_PERCENT:      "'%'",
	TOKEN_EQ:           "'='",
	TOKEN_NE:           "'!='",
	TOKEN_LT:           "'<'",
	TOKEN_LE:           "'<='",
	TOKEN_GT:           "'>'",
	TOKEN_GE:           "'>='",
	TOKEN_LSHIFT:       "'<<'",
	TOKEN_RSHIFT:       "'>>'",
	TOKEN_AMP:          "'&'",
	TOKEN_PIPE:         "'|'",
	TOKEN_CONCAT:       "'||'",
	TOKEN_TILDE:        "'~'",
}

func init() {
	for word, t := range keywords {
		if _, ok := tokenNames[t]; !ok {
			tokenNames[t] = word
		}
	}
	// TEMP and TEMPORARY share a token; report the short spelling.
	tokenNames[TOKEN_TEMP] = "TEMP"
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "token"
}

// IsContextual reports whether t is a keyword that may also be used as an identifier.
func (t TokenType) IsContextual() bool {
	return t >= TOKEN_KEY && t < tokenCount
}

// Token represents a lexical token. Literal is the exact source text,
// quotes and prefixes included.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Literal)
}

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // current position
	readPos int  // next position to read
	ch      byte // current character
}

// NewLexer creates a new Lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// skipWhitespace skips blanks as well as -- line and /* block */ comments.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !l.atEnd() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if !l.atEnd() {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	if l.atEnd() {
		return Token{Type: TOKEN_EOF, Pos: len(l.input)}
	}

	single := func(t TokenType) Token {
		l.readChar()
		return Token{Type: t, Literal: l.input[start:l.pos], Pos: start}
	}
	double := func(t TokenType) Token {
		l.readChar()
		l.readChar()
		return Token{Type: t, Literal: l.input[start:l.pos], Pos: start}
	}

	switch l.ch {
	case ',':
		return single(TOKEN_COMMA)
	case ';':
		return single(TOKEN_SEMICOLON)
	case '(':
		return single(TOKEN_LPAREN)
	case ')':
		return single(TOKEN_RPAREN)
	case '*':
		return single(TOKEN_STAR)
	case '+':
		return single(TOKEN_PLUS)
	case '-':
		return single(TOKEN_MINUS)
	case '/':
		return single(TOKEN_SLASH)
	case '%':
		return single(TOKEN_PERCENT)
	case '~':
		return single(TOKEN_TILDE)
	case '&':
		return single(TOKEN_AMP)
	case '|':
		if l.peekChar() == '|' {
			return double(TOKEN_CONCAT)
		}
		return single(TOKEN_PIPE)
	case '=':
		if l.peekChar() == '=' {
			return double(TOKEN_EQ)
		}
		return single(TOKEN_EQ)
	case '!':
		if l.peekChar() == '=' {
			return double(TOKEN_NE)
		}
		return single(TOKEN_ILLEGAL)
	case '<':
		switch l.peekChar() {
		case '=':
			return double(TOKEN_LE)
		case '>':
			return double(TOKEN_NE)
		case '<':
			return double(TOKEN_LSHIFT)
		}
		return single(TOKEN_LT)
	case '>':
		switch l.peekChar() {
		case '=':
			return double(TOKEN_GE)
		case '>':
			return double(TOKEN_RSHIFT)
		}
		return single(TOKEN_GT)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return single(TOKEN_DOT)
	case '\'':
		return l.readQuoted(TOKEN_STRING, '\'')
	case '"':
		return l.readQuoted(TOKEN_QUOTED_IDENT, '"')
	case '`':
		return l.readQuoted(TOKEN_QUOTED_IDENT, '`')
	case '[':
		return l.readQuoted(TOKEN_QUOTED_IDENT, ']')
	}

	if (l.ch == 'x' || l.ch == 'X') && l.peekChar() == '\'' {
		return l.readBlob()
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isLetter(l.ch) {
		lit := l.readIdentifier()
		return Token{Type: lookupKeyword(lit), Literal: lit, Pos: start}
	}
	return single(TOKEN_ILLEGAL)
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '$' {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads digits [ '.' digits ] [ e [+-] digits ], or the same
// starting at '.'. An exponent marker without digits is left for the next token.
func (l *Lexer) readNumber() Token {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		digitAt := l.readPos
		if next == '+' || next == '-' {
			digitAt++
		}
		if digitAt < len(l.input) && isDigit(l.input[digitAt]) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return Token{Type: TOKEN_NUMBER, Literal: l.input[pos:l.pos], Pos: pos}
}

// readQuoted reads a delimited token. A doubled closing delimiter is an
// escaped delimiter and does not end the token. An unterminated token is ILLEGAL.
func (l *Lexer) readQuoted(t TokenType, closing byte) Token {
	pos := l.pos
	l.readChar() // consume opening delimiter
	for {
		if l.atEnd() {
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[pos:l.pos], Pos: pos}
		}
		if l.ch == closing {
			if l.peekChar() == closing && closing != ']' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return Token{Type: t, Literal: l.input[pos:l.pos], Pos: pos}
		}
		l.readChar()
	}
}

func (l *Lexer) readBlob() Token {
	pos := l.pos
	l.readChar() // x
	l.readChar() // '
	for isHexDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '\'' {
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[pos:l.pos], Pos: pos}
	}
	l.readChar()
	return Token{Type: TOKEN_BLOB, Literal: l.input[pos:l.pos], Pos: pos}
}

// Tokenize returns every token of input up to and including EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TOKEN_EOF {
			return toks
		}
	}
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func lookupKeyword(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return TOKEN_IDENT
}
