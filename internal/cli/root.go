package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/romanus/internal/config"
	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/ctxlog"
	"github.com/roach88/romanus/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Debug   bool
	Format  string // "json" | "text"
	DBPath  string // conversion history database, empty to disable
	Workers int

	Integer string
	Roman   string
	Bare    bool
	Strict  bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the romanus CLI.
//
// Unset flags fall back to ROMANUS_* environment variables (see
// internal/config).
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "romanus",
		Short: "romanus - Roman numeral converter",
		Long: `Convert between integers (1-3999) and Roman numerals.

Examples:
  romanus --integer 1142
  romanus --roman mcxlii
  romanus -b -r XLVIII
  romanus --format json --integer 3999`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // main prints errors that commands have not reported
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(opts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "debugging output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "record conversions in this SQLite database")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "reject non-canonical numerals such as IXI")

	// Conversion flags
	cmd.Flags().StringVarP(&opts.Integer, "integer", "i", "", "convert the given integer value to a Roman numeral")
	cmd.Flags().StringVarP(&opts.Roman, "roman", "r", "", "convert the given Roman numeral to an integer value")
	cmd.Flags().BoolVarP(&opts.Bare, "bare", "b", false, "only output the result")
	cmd.MarkFlagsMutuallyExclusive("integer", "roman")
	cmd.MarkFlagsOneRequired("integer", "roman")

	// Add subcommands
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))

	return cmd
}

// prepare merges environment config into unset flags, validates them and
// installs the logger on the command context.
func prepare(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid environment", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	if !flags.Changed("debug") && cfg.Debug {
		opts.Debug = true
	}
	if !flags.Changed("db") {
		opts.DBPath = cfg.DBPath
	}
	opts.Workers = cfg.Workers

	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	logger := ctxlog.New(cmd.ErrOrStderr(), opts.Debug)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxlog.WithLogger(ctx, logger))
	logger.Debug("options resolved", "command", cmd.Name(), "format", opts.Format, "db", opts.DBPath)
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		Bare:      opts.Bare,
	}
}

// ConversionResult is the JSON payload of a single conversion.
type ConversionResult struct {
	Direction convert.Direction `json:"direction"`
	Input     string            `json:"input"`
	Output    string            `json:"output"`
}

func runConvert(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := ctxlog.FromContext(cmd.Context())

	req := convert.Request{Direction: convert.ToInteger, Input: opts.Roman}
	if cmd.Flags().Changed("integer") {
		req = convert.Request{Direction: convert.ToRoman, Input: opts.Integer}
	}
	logger.Debug("converting", "direction", req.Direction, "input", req.Input)

	out := convert.Do(req, convert.Options{Strict: opts.Strict})
	if err := recordOutcomes(cmd.Context(), opts, []convert.Outcome{out}); err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return reportedError(ExitCommandError, err.Error())
	}

	if out.Err != nil {
		logger.Debug("conversion failed", "error", out.Err)
		_ = formatter.Error(errorCode(out.Err), out.Err.Error(), req)
		if convert.IsInputError(out.Err) {
			return reportedError(ExitCommandError, out.Err.Error())
		}
		return reportedError(ExitFailure, out.Err.Error())
	}

	return formatter.Result(out.Output, ConversionResult{
		Direction: req.Direction,
		Input:     req.Input,
		Output:    out.Output,
	})
}

// recordOutcomes appends outs to the history database when one is configured.
func recordOutcomes(ctx context.Context, opts *RootOptions, outs []convert.Outcome) error {
	if opts.DBPath == "" {
		return nil
	}
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	if err := store.NewRecorder(st).RecordAll(ctx, outs); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("recorded conversions", "count", len(outs), "db", opts.DBPath)
	return nil
}
