// sqlast - SQL to abstract syntax tree parser
// Main entry point for the command line tool

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/JayabrataBasu/sqlast/internal/cli"
	"github.com/JayabrataBasu/sqlast/internal/config"
	"github.com/JayabrataBasu/sqlast/internal/logger"
)

var (
	version   = "0.1.0"
	buildDate = "dev"
	cfgFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sqlast",
		Short: "sqlast - parse SQL into syntax trees",
		Long: `sqlast parses SQLite-dialect DML, DDL and transaction statements
into a typed abstract syntax tree and prints it as YAML or JSON.

Start the interactive shell:
  sqlast

Parse a script:
  sqlast parse schema.sql
  cat schema.sql | sqlast parse --format json -`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(newParseCmd())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	})

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sqlast %s (built %s)\n", version, buildDate)
		},
	})

	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.Execute(); err != nil {
		if err != errReported {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// errReported is returned once a parse error has been printed with its
// source context.
var errReported = errors.New("parse failed")

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logger: %w", err)
	}
	return cfg, log, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debug("Starting sqlast shell", "version", version)

	repl := cli.NewREPL(cfg, log)
	if err := repl.Run(); err != nil {
		log.Error("REPL error", "error", err)
		return err
	}
	return nil
}

func newParseCmd() *cobra.Command {
	var (
		format  string
		workers int
		expr    bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file|-]...",
		Short: "Parse SQL files and print their syntax trees",
		Long: `Parse each file (or stdin for "-" or no argument) and print the
statements it contains. With --expr each argument is parsed as a single
expression instead of a file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cmd.Flags().Changed("format") {
				cfg.Output.Format = strings.ToLower(format)
			}
			if cmd.Flags().Changed("workers") {
				cfg.Parse.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			if expr {
				for _, src := range args {
					if err := cli.RunExpr(out, src, cfg.Output.Format); err != nil {
						cli.Diagnose(errOut, src, err, cfg.Output.Color)
						return errReported
					}
				}
				return nil
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			for _, path := range args {
				src, err := cli.ReadSource(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := cli.RunParse(ctx, out, cfg, log, path, src, cfg.Output.Format); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					cli.Diagnose(errOut, src, err, cfg.Output.Color)
					return errReported
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml|json)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "statements built concurrently (0 = GOMAXPROCS)")
	cmd.Flags().BoolVarP(&expr, "expr", "e", false, "parse arguments as expressions")
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sqlast.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
