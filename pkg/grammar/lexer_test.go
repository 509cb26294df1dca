package grammar

import "testing"

// TestLexer verifies the tokenizer works correctly.
func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "simple select",
			input:    "SELECT * FROM users",
			expected: []TokenType{TOKEN_SELECT, TOKEN_STAR, TOKEN_FROM, TOKEN_IDENT, TOKEN_EOF},
		},
		{
			name:     "insert statement",
			input:    "INSERT INTO users VALUES (1, 'alice', x'0A')",
			expected: []TokenType{TOKEN_INSERT, TOKEN_INTO, TOKEN_IDENT, TOKEN_VALUES, TOKEN_LPAREN, TOKEN_NUMBER, TOKEN_COMMA, TOKEN_STRING, TOKEN_COMMA, TOKEN_BLOB, TOKEN_RPAREN, TOKEN_EOF},
		},
		{
			name:     "comparison operators",
			input:    "a > 1 AND b < 2 OR c >= 3 AND d <= 4 AND e <> 5 AND f != 6 AND g == 7",
			expected: []TokenType{TOKEN_IDENT, TOKEN_GT, TOKEN_NUMBER, TOKEN_AND, TOKEN_IDENT, TOKEN_LT, TOKEN_NUMBER, TOKEN_OR, TOKEN_IDENT, TOKEN_GE, TOKEN_NUMBER, TOKEN_AND, TOKEN_IDENT, TOKEN_LE, TOKEN_NUMBER, TOKEN_AND, TOKEN_IDENT, TOKEN_NE, TOKEN_NUMBER, TOKEN_AND, TOKEN_IDENT, TOKEN_NE, TOKEN_NUMBER, TOKEN_AND, TOKEN_IDENT, TOKEN_EQ, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "bitwise and concat",
			input:    "a << 1 >> 2 & b | c || d ~ e",
			expected: []TokenType{TOKEN_IDENT, TOKEN_LSHIFT, TOKEN_NUMBER, TOKEN_RSHIFT, TOKEN_NUMBER, TOKEN_AMP, TOKEN_IDENT, TOKEN_PIPE, TOKEN_IDENT, TOKEN_CONCAT, TOKEN_IDENT, TOKEN_TILDE, TOKEN_IDENT, TOKEN_EOF},
		},
		{
			name:     "quoted identifiers",
			input:    "\"a b\" `c` [d e]",
			expected: []TokenType{TOKEN_QUOTED_IDENT, TOKEN_QUOTED_IDENT, TOKEN_QUOTED_IDENT, TOKEN_EOF},
		},
		{
			name:     "comments",
			input:    "SELECT -- trailing\n1 /* block */ ;",
			expected: []TokenType{TOKEN_SELECT, TOKEN_NUMBER, TOKEN_SEMICOLON, TOKEN_EOF},
		},
		{
			name:     "contextual keywords",
			input:    "begin immediate transaction",
			expected: []TokenType{TOKEN_BEGIN, TOKEN_IMMEDIATE, TOKEN_TRANSACTION, TOKEN_EOF},
		},
		{
			name:     "unterminated string",
			input:    "'abc",
			expected: []TokenType{TOKEN_ILLEGAL},
		},
		{
			name:     "bad blob",
			input:    "x'0G'",
			expected: []TokenType{TOKEN_ILLEGAL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			var tokens []TokenType
			for {
				tok := lexer.NextToken()
				tokens = append(tokens, tok.Type)
				if tok.Type == TOKEN_EOF || tok.Type == TOKEN_ILLEGAL {
					break
				}
			}
			if len(tokens) != len(tt.expected) {
				t.Errorf("token count mismatch: got %d, expected %d", len(tokens), len(tt.expected))
				t.Errorf("got tokens: %v", tokens)
				t.Errorf("expected: %v", tt.expected)
				return
			}
			for i, tok := range tokens {
				if tok != tt.expected[i] {
					t.Errorf("token[%d] = %v, expected %v", i, tok, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		lits  []string
	}{
		{"123", []string{"123"}},
		{"123.", []string{"123."}},
		{".5", []string{".5"}},
		{"1.5e-3", []string{"1.5e-3"}},
		{"1E5", []string{"1E5"}},
		// An exponent marker without digits starts the next token.
		{"1e", []string{"1", "e"}},
		{"1ex", []string{"1", "ex"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := Tokenize(tt.input)
			if len(toks) != len(tt.lits)+1 {
				t.Fatalf("Tokenize(%q) = %v", tt.input, toks)
			}
			for i, lit := range tt.lits {
				if toks[i].Literal != lit {
					t.Errorf("token[%d] = %q, want %q", i, toks[i].Literal, lit)
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks := Tokenize("SELECT  'it''s'")
	if toks[1].Type != TOKEN_STRING || toks[1].Literal != "'it''s'" {
		t.Fatalf("token = %+v", toks[1])
	}
	if toks[1].Pos != 8 || toks[1].End() != 15 {
		t.Errorf("span = [%d,%d), want [8,15)", toks[1].Pos, toks[1].End())
	}
	if eof := toks[2]; eof.Type != TOKEN_EOF || eof.Pos != 15 {
		t.Errorf("eof = %+v", eof)
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, word := range []string{"select", "SELECT", "SeLeCt"} {
		if got := lookupKeyword(word); got != TOKEN_SELECT {
			t.Errorf("lookupKeyword(%q) = %v", word, got)
		}
	}
	if got := lookupKeyword("selection"); got != TOKEN_IDENT {
		t.Errorf("lookupKeyword(selection) = %v", got)
	}
	if !TOKEN_KEY.IsContextual() || TOKEN_SELECT.IsContextual() {
		t.Error("IsContextual mismatch")
	}
}
