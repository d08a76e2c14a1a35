package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Direction string
	Failed    bool
	Limit     int
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Records []store.Record `json:"records"`
	Total   int            `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Long: `List conversions recorded in the history database, oldest first.

The database is given with --db or ROMANUS_DB.

Examples:
  romanus history --db ./romanus.db
  romanus history --db ./romanus.db --direction to_integer --failed
  romanus history --db ./romanus.db --limit 10 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Direction, "direction", "", "only show to_roman or to_integer conversions")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "only show failed conversions")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "maximum number of records (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if opts.DBPath == "" {
		return NewExitError(ExitCommandError, "no history database: set --db or ROMANUS_DB")
	}
	if _, err := os.Stat(opts.DBPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DBPath))
	}
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must not be negative")
	}

	filter := store.Filter{FailedOnly: opts.Failed, Limit: opts.Limit}
	if opts.Direction != "" {
		dir, err := convert.ParseDirection(opts.Direction)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --direction", err)
		}
		filter.Direction = dir
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	records, err := st.ListRecords(cmd.Context(), filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}
	total, err := st.CountRecords(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count history", err)
	}

	if opts.Format == "json" {
		return encodeIndented(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   HistoryResult{Records: records, Total: total},
		})
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tDIRECTION\tINPUT\tRESULT")
	for _, rec := range records {
		outcome := rec.Output
		if rec.ErrorKind != "" {
			outcome = "ERROR: " + rec.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.Seq, rec.Direction, rec.Input, outcome)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d of %d conversion(s)\n", len(records), total)
	return nil
}
