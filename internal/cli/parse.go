package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JayabrataBasu/sqlast/internal/config"
	"github.com/JayabrataBasu/sqlast/internal/logger"
	"github.com/JayabrataBasu/sqlast/internal/render"
	"github.com/JayabrataBasu/sqlast/pkg/sql"
)

// ReadSource reads a script from path, or from stdin when path is "-".
func ReadSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// RunParse parses src on cfg.Parse.Workers goroutines and writes the
// statements to w in format. name only labels log entries.
func RunParse(ctx context.Context, w io.Writer, cfg *config.Config, log *logger.Logger, name, src, format string) error {
	log = log.Named("parse").With("file", name)

	start := time.Now()
	nodes, err := sql.ParseParallel(ctx, src, cfg.Parse.Workers)
	if err != nil {
		log.Warn("Parse failed", "error", err)
		return err
	}
	log.Info("Parsed script",
		"statements", len(nodes),
		"bytes", len(src),
		"elapsed", time.Since(start),
	)
	return render.Statements(w, format, nodes)
}

// RunExpr parses src as one expression and writes its tree to w.
func RunExpr(w io.Writer, src, format string) error {
	e, err := sql.ParseExpr(src)
	if err != nil {
		return err
	}
	return render.Encode(w, format, render.Tree(e))
}
