package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

// Diagnose prints err for src. Syntax errors also get the offending source
// line with a caret under the failing column.
func Diagnose(w io.Writer, src string, err error, colorize bool) {
	red := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)
	if colorize {
		red.EnableColor()
		dim.EnableColor()
	} else {
		red.DisableColor()
		dim.DisableColor()
	}

	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		fmt.Fprintf(w, "%s %v\n", red.Sprint("error:"), err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", red.Sprint("error:"), se.Error())

	line := sourceLine(src, se.Line)
	fmt.Fprintf(w, "%s%s\n", dim.Sprintf("%4d | ", se.Line), line)
	fmt.Fprintf(w, "%s%s%s\n", dim.Sprint("     | "), caretPad(line, se.Column), red.Sprint("^"))
}

// sourceLine returns the 1-based line n of src without its newline.
func sourceLine(src string, n int) string {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// caretPad returns the indentation that puts a caret under byte column col,
// keeping tabs so the caret lines up with the echoed source.
func caretPad(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
