package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JayabrataBasu/sqlast/internal/config"
	"github.com/JayabrataBasu/sqlast/internal/logger"
	"github.com/JayabrataBasu/sqlast/pkg/grammar"
)

func newTestREPL(format string) (*REPL, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Output.Color = false
	var buf bytes.Buffer
	return &REPL{config: cfg, log: logger.NewNop(), out: &buf, format: format}, &buf
}

func TestProcessCommand(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		input    string
		result   commandResult
		contains []string
	}{
		{
			name:     "yaml statements",
			format:   "yaml",
			input:    "BEGIN; COMMIT;",
			result:   commandOK,
			contains: []string{"BeginStmt", "CommitStmt", "(2 statement(s): BEGIN, COMMIT)"},
		},
		{
			name:     "json statement",
			format:   "json",
			input:    "DROP TABLE IF EXISTS t;",
			result:   commandOK,
			contains: []string{`"@type": "DropTableStmt"`, `"IfExists": true`},
		},
		{
			name:     "syntax error",
			format:   "yaml",
			input:    "SELECT FROM t;",
			result:   commandError,
			contains: []string{"error: syntax error at line 1", "^"},
		},
		{
			name:     "expression",
			format:   "yaml",
			input:    `\expr 1 + 2 * 3`,
			result:   commandOK,
			contains: []string{"BinaryExpr", "Integer"},
		},
		{
			name:     "concrete tree",
			format:   "yaml",
			input:    `\cst SAVEPOINT s`,
			result:   commandOK,
			contains: []string{"(savepoint"},
		},
		{
			name:     "show format",
			format:   "json",
			input:    `\format`,
			result:   commandOK,
			contains: []string{"Output format: json"},
		},
		{
			name:     "bad format",
			format:   "yaml",
			input:    `\format xml`,
			result:   commandError,
			contains: []string{"Usage: \\format yaml|json"},
		},
		{
			name:     "help",
			format:   "yaml",
			input:    "HELP;",
			result:   commandOK,
			contains: []string{"Backslash Commands"},
		},
		{
			name:     "config",
			format:   "yaml",
			input:    `\config`,
			result:   commandOK,
			contains: []string{"Current Configuration", "Format:           yaml"},
		},
		{
			name:     "unknown command",
			format:   "yaml",
			input:    `\dt`,
			result:   commandError,
			contains: []string{"Unknown command: \\dt"},
		},
		{name: "quit", format: "yaml", input: `\q`, result: commandExit},
		{name: "exit statement", format: "yaml", input: "exit;", result: commandExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestREPL(tt.format)
			if got := r.processCommand(tt.input); got != tt.result {
				t.Errorf("processCommand(%q) = %d, want %d\n%s", tt.input, got, tt.result, out.String())
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output missing %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestFormatSwitchPersists(t *testing.T) {
	r, out := newTestREPL("yaml")
	if got := r.processCommand(`\format JSON`); got != commandOK {
		t.Fatalf("\\format JSON = %d", got)
	}
	out.Reset()
	r.processCommand("COMMIT;")
	if !strings.Contains(out.String(), `"@type": "CommitStmt"`) {
		t.Errorf("expected json output after switching format:\n%s", out.String())
	}
}

func TestDiagnose(t *testing.T) {
	src := "SELECT 1;\n\tSELECT FROM t"
	pos := strings.Index(src, "FROM")
	err := grammar.NewSyntaxError(src, pos, `"FROM"`, "expression")

	var buf bytes.Buffer
	Diagnose(&buf, src, err, false)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "error: syntax error at line 2, column 9") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "   2 | \tSELECT FROM t" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "     | \t       ^" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestDiagnoseOtherErrors(t *testing.T) {
	var buf bytes.Buffer
	Diagnose(&buf, "", errString("boom"), false)
	if buf.String() != "error: boom\n" {
		t.Errorf("Diagnose = %q", buf.String())
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestSourceLine(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "a"},
		{2, "b"},
		{3, ""},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := sourceLine("a\r\nb\n", tt.n); got != tt.want {
			t.Errorf("sourceLine(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestREPLLogsUnderItsName(t *testing.T) {
	var logs bytes.Buffer
	log, err := logger.NewWithWriter("debug", "json", &logs)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	cfg := config.Default()
	cfg.Output.Color = false

	r := NewREPL(cfg, log)
	var out bytes.Buffer
	r.out = &out
	if got := r.processCommand("COMMIT;"); got != commandOK {
		t.Fatalf("processCommand = %d\n%s", got, out.String())
	}
	for _, field := range []string{`"logger":"repl"`, `"msg":"parsed"`, `"statements":1`} {
		if !strings.Contains(logs.String(), field) {
			t.Errorf("log missing %s: %s", field, logs.String())
		}
	}
}
