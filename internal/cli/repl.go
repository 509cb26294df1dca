// Package cli provides the interactive shell for sqlast.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/JayabrataBasu/sqlast/internal/config"
	"github.com/JayabrataBasu/sqlast/internal/logger"
	"github.com/JayabrataBasu/sqlast/internal/render"
	"github.com/JayabrataBasu/sqlast/pkg/ast"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
	"github.com/JayabrataBasu/sqlast/pkg/sql"
)

// REPL reads SQL, parses it and prints the resulting tree.
type REPL struct {
	config *config.Config
	log    *logger.Logger
	out    io.Writer
	format string
}

// NewREPL creates a new REPL instance
func NewREPL(cfg *config.Config, log *logger.Logger) *REPL {
	return &REPL{
		config: cfg,
		log:    log.Named("repl"),
		out:    os.Stdout,
		format: cfg.Output.Format,
	}
}

// Run starts the REPL loop
func (r *REPL) Run() error {
	prompt := r.config.REPL.Prompt
	continuation := strings.Repeat(" ", max(len(prompt)-3, 0)) + "-> "

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     r.config.REPL.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()
	r.out = rl.Stdout()

	r.printWelcome()

	var buf strings.Builder
	for {
		if buf.Len() > 0 {
			rl.SetPrompt(continuation)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buf.Len() > 0 {
				buf.Reset()
				fmt.Fprintln(r.out, "^C")
			}
			continue
		} else if err == io.EOF {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)
		input := buf.String()

		// Backslash commands run immediately; SQL waits for a closing semicolon.
		if !strings.HasPrefix(input, "\\") && !strings.HasSuffix(input, ";") {
			continue
		}
		buf.Reset()
		if r.processCommand(input) == commandExit {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

type commandResult int

const (
	commandOK commandResult = iota
	commandExit
	commandError
)

func (r *REPL) processCommand(input string) commandResult {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "\\") {
		return r.handleBackslashCommand(input)
	}

	switch strings.ToUpper(strings.TrimSuffix(input, ";")) {
	case "EXIT", "QUIT":
		return commandExit
	case "HELP":
		r.printHelp()
		return commandOK
	}
	return r.evalSQL(input)
}

// evalSQL parses a script and prints its statements in the current format.
func (r *REPL) evalSQL(input string) commandResult {
	start := time.Now()
	nodes, err := sql.ParseScript(input)
	if err != nil {
		r.log.Debug("parse failed", "error", err)
		Diagnose(r.out, input, err, r.config.Output.Color)
		return commandError
	}
	r.log.Debug("parsed", "statements", len(nodes), "elapsed", time.Since(start))

	if err := render.Statements(r.out, r.format, nodes); err != nil {
		fmt.Fprintf(r.out, "render error: %v\n", err)
		return commandError
	}
	r.printSummary(nodes)
	return commandOK
}

func (r *REPL) printSummary(nodes []ast.Node) {
	kinds := make([]string, len(nodes))
	for i, n := range nodes {
		kinds[i] = ast.StatementKind(n)
	}
	fmt.Fprintf(r.out, "(%d statement(s): %s)\n", len(nodes), strings.Join(kinds, ", "))
}

func (r *REPL) handleBackslashCommand(input string) commandResult {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return commandOK
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch strings.ToLower(parts[0]) {
	case "\\q", "\\quit", "\\exit":
		return commandExit

	case "\\?", "\\help":
		r.printHelp()
		return commandOK

	case "\\format":
		switch strings.ToLower(rest) {
		case render.FormatYAML, render.FormatJSON:
			r.format = strings.ToLower(rest)
			fmt.Fprintf(r.out, "Output format is now %s\n", r.format)
			return commandOK
		case "":
			fmt.Fprintf(r.out, "Output format: %s\n", r.format)
			return commandOK
		}
		fmt.Fprintln(r.out, "Usage: \\format yaml|json")
		return commandError

	case "\\expr":
		if rest == "" {
			fmt.Fprintln(r.out, "Usage: \\expr <expression>")
			return commandError
		}
		e, err := sql.ParseExpr(strings.TrimSuffix(rest, ";"))
		if err != nil {
			Diagnose(r.out, rest, err, r.config.Output.Color)
			return commandError
		}
		if err := render.Encode(r.out, r.format, render.Tree(e)); err != nil {
			fmt.Fprintf(r.out, "render error: %v\n", err)
			return commandError
		}
		return commandOK

	case "\\cst":
		if rest == "" {
			fmt.Fprintln(r.out, "Usage: \\cst <statements>")
			return commandError
		}
		nodes, err := grammar.Parse(rest)
		if err != nil {
			Diagnose(r.out, rest, err, r.config.Output.Color)
			return commandError
		}
		for _, n := range nodes {
			fmt.Fprintln(r.out, n.String())
		}
		return commandOK

	case "\\config":
		r.printConfig()
		return commandOK

	case "\\clear":
		fmt.Fprint(r.out, "\033[H\033[2J") // ANSI clear screen
		return commandOK

	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(r.out, "Type \\? for help")
		return commandError
	}
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, `sqlast interactive shell
Statements end with ; and may span several lines.
Type HELP; or \? for available commands`)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
sqlast Commands
===============

Any DML, DDL or transaction statement ending with ; is parsed and its
syntax tree printed, e.g.
  SELECT id FROM users WHERE age > 30;
  CREATE INDEX idx ON users (name DESC);
  BEGIN IMMEDIATE; COMMIT;

Backslash Commands:
  \expr <expression>               Parse a single expression
  \cst <statements>                Show the concrete syntax tree
  \format [yaml|json]              Show or set the output format
  \config                          Show configuration
  \clear                           Clear screen
  \?, \help                        Show this help
  \q, \quit                        Exit

Other:
  EXIT; or QUIT;                   Exit the shell
  HELP;                            Show this help`)
}

func (r *REPL) printConfig() {
	fmt.Fprintln(r.out, "\nCurrent Configuration")
	fmt.Fprintln(r.out, "=====================")
	fmt.Fprintf(r.out, "Parse:\n")
	fmt.Fprintf(r.out, "  Workers:          %d\n", r.config.Parse.Workers)
	fmt.Fprintf(r.out, "\nOutput:\n")
	fmt.Fprintf(r.out, "  Format:           %s\n", r.format)
	fmt.Fprintf(r.out, "  Color:            %t\n", r.config.Output.Color)
	fmt.Fprintf(r.out, "\nREPL:\n")
	fmt.Fprintf(r.out, "  History File:     %s\n", r.config.REPL.HistoryFile)
	fmt.Fprintf(r.out, "\nLogging:\n")
	fmt.Fprintf(r.out, "  Level:            %s\n", r.config.Log.Level)
	fmt.Fprintf(r.out, "  Format:           %s\n", r.config.Log.Format)
	fmt.Fprintf(r.out, "  Output:           %s\n", r.config.Log.Output)
	fmt.Fprintln(r.out)
}

// newCompleter creates an auto-completer for the REPL
func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("SELECT"),
		readline.PcItem("VALUES"),
		readline.PcItem("INSERT", readline.PcItem("INTO"), readline.PcItem("OR")),
		readline.PcItem("REPLACE", readline.PcItem("INTO")),
		readline.PcItem("UPDATE"),
		readline.PcItem("DELETE", readline.PcItem("FROM")),
		readline.PcItem("CREATE",
			readline.PcItem("TABLE"),
			readline.PcItem("TEMP"),
			readline.PcItem("UNIQUE", readline.PcItem("INDEX")),
			readline.PcItem("INDEX"),
			readline.PcItem("VIEW"),
			readline.PcItem("TRIGGER"),
		),
		readline.PcItem("ALTER", readline.PcItem("TABLE")),
		readline.PcItem("DROP",
			readline.PcItem("TABLE"),
			readline.PcItem("INDEX"),
			readline.PcItem("VIEW"),
			readline.PcItem("TRIGGER"),
		),
		readline.PcItem("BEGIN",
			readline.PcItem("DEFERRED"),
			readline.PcItem("IMMEDIATE"),
			readline.PcItem("EXCLUSIVE"),
		),
		readline.PcItem("COMMIT"),
		readline.PcItem("END"),
		readline.PcItem("ROLLBACK", readline.PcItem("TO")),
		readline.PcItem("SAVEPOINT"),
		readline.PcItem("RELEASE"),
		readline.PcItem("HELP"),
		readline.PcItem("EXIT"),
		readline.PcItem("QUIT"),
		readline.PcItem("\\expr"),
		readline.PcItem("\\cst"),
		readline.PcItem("\\format", readline.PcItem("yaml"), readline.PcItem("json")),
		readline.PcItem("\\config"),
		readline.PcItem("\\clear"),
		readline.PcItem("\\help"),
		readline.PcItem("\\q"),
	)
}
