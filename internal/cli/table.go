package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/romanus/internal/numeral"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	From uint32
	To   uint32
	Lang string
}

// TableRow is one line of the chart.
type TableRow struct {
	Value   uint32 `json:"value"`
	Numeral string `json:"numeral"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print a chart of values and numerals",
		Long: `Print every value in [--from, --to] next to its Roman numeral.

Values are printed with the digit grouping of --lang (a BCP 47 tag).

Examples:
  romanus table --to 20
  romanus table --from 1990 --to 2000
  romanus table --from 1000 --to 1010 --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, cmd)
		},
	}

	cmd.Flags().Uint32Var(&opts.From, "from", numeral.MinValue, "first value")
	cmd.Flags().Uint32Var(&opts.To, "to", 50, "last value")
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "language used to group digits")

	return cmd
}

func runTable(opts *TableOptions, cmd *cobra.Command) error {
	if opts.From > opts.To {
		return NewExitError(ExitCommandError, fmt.Sprintf("--from %d is after --to %d", opts.From, opts.To))
	}
	tag, err := language.Parse(opts.Lang)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --lang", err)
	}

	rows, err := buildTable(opts.From, opts.To)
	if err != nil {
		formatter := newFormatter(opts.RootOptions, cmd)
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return reportedError(ExitFailure, err.Error())
	}

	if opts.Format == "json" {
		return encodeIndented(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: rows})
	}

	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, row := range rows {
		p.Fprintf(tw, "%d\t%s\n", row.Value, row.Numeral)
	}
	return tw.Flush()
}

// buildTable encodes every value in [from, to]. Both bounds are checked
// before anything is allocated.
func buildTable(from, to uint32) ([]TableRow, error) {
	for _, v := range []uint32{from, to} {
		if _, err := numeral.Encode(v); err != nil {
			return nil, err
		}
	}

	rows := make([]TableRow, 0, to-from+1)
	for v := from; ; v++ {
		s, err := numeral.Encode(v)
		if err != nil {
			return nil, err
		}
		rows = append(rows, TableRow{Value: v, Numeral: s})
		if v == to {
			break
		}
	}
	return rows, nil
}
