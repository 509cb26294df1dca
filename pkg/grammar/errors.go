package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// SyntaxError reports input that matches no grammar alternative.
// Pos is a byte offset; Line and Column are 1-based (Column counts bytes).
type SyntaxError struct {
	Pos      int
	Line     int
	Column   int
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at line %d, column %d: unexpected %s", e.Line, e.Column, e.Found)
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(joinAlternatives(e.Expected))
	}
	return b.String()
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 1:
		return alts[0]
	case 2:
		return alts[0] + " or " + alts[1]
	}
	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}

// expectations collects the alternatives tried at the furthest token reached.
type expectations struct {
	pos  int
	set  map[string]struct{}
	used bool
}

func (x *expectations) add(pos int, name string) {
	if !x.used || pos > x.pos {
		x.pos = pos
		x.set = make(map[string]struct{})
		x.used = true
	}
	if pos == x.pos {
		x.set[name] = struct{}{}
	}
}

func (x *expectations) list(pos int) []string {
	if !x.used || x.pos != pos {
		return nil
	}
	out := make([]string, 0, len(x.set))
	for name := range x.set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(src string, pos int) (int, int) {
	if pos > len(src) {
		pos = len(src)
	}
	line, col := 1, 1
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("illegal input %q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// NewSyntaxError builds a SyntaxError at byte offset pos of src, for callers
// that reject input the statement grammar itself accepts.
func NewSyntaxError(src string, pos int, found string, expected ...string) *SyntaxError {
	line, col := lineColumn(src, pos)
	return &SyntaxError{Pos: pos, Line: line, Column: col, Found: found, Expected: expected}
}
