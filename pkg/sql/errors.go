package sql

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/JayabrataBasu/sqlast/pkg/cst"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

// ErrorKind tells the two parse failure classes apart.
type ErrorKind int

const (
	// KindSyntax means the input text matched no grammar alternative.
	KindSyntax ErrorKind = iota
	// KindStructural means a CST node did not have the shape its builder
	// expects. It points at a grammar/builder mismatch, not at bad input.
	KindStructural
)

func (k ErrorKind) String() string {
	if k == KindStructural {
		return "structural"
	}
	return "syntax"
}

// ParseError is returned by every Parse entry point. Err is either a
// *grammar.SyntaxError or a *StructuralError (carrying a stack trace);
// errors.As reaches both.
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format prints the wrapped error's stack trace for %+v.
func (e *ParseError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v", e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// StructuralError reports a CST node whose children do not match the shape
// the builder for Rule expects.
type StructuralError struct {
	Rule     cst.Rule   // rule being built
	Found    cst.Rule   // offending child, RuleUnknown when a child was missing
	Expected []cst.Rule // acceptable rules at that point, if known
	Span     cst.Span
	Detail   string
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "structural error building %s at [%d,%d)", e.Rule, e.Span.Start, e.Span.End)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
		return b.String()
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, r := range e.Expected {
			names[i] = r.String()
		}
		fmt.Fprintf(&b, ": expected %s", strings.Join(names, " | "))
	}
	if e.Found == cst.RuleUnknown {
		b.WriteString(", found nothing")
	} else {
		fmt.Fprintf(&b, ", found %s", e.Found)
	}
	return b.String()
}

// mismatch builds a stack-carrying StructuralError for an unexpected child
// (or a missing one when found is nil) of parent.
func mismatch(parent, found *cst.Node, expected ...cst.Rule) error {
	e := &StructuralError{Expected: expected}
	if parent != nil {
		e.Rule = parent.Rule
		e.Span = parent.Span
	}
	if found != nil {
		e.Found = found.Rule
		e.Span = found.Span
	}
	return errors.WithStack(e)
}

// malformed builds a stack-carrying StructuralError with a free-form detail.
func malformed(n *cst.Node, format string, args ...interface{}) error {
	e := &StructuralError{Detail: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Rule = n.Rule
		e.Span = n.Span
	}
	return errors.WithStack(e)
}

// wrapError classifies err into a *ParseError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var se *grammar.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Kind: KindSyntax, Err: err}
	}
	return &ParseError{Kind: KindStructural, Err: err}
}
