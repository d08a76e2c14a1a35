package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/ctxlog"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	YAML    bool
	Workers int
}

// BatchItem is the JSON form of one batch conversion.
type BatchItem struct {
	Direction convert.Direction `json:"direction"`
	Input     string            `json:"input"`
	Output    string            `json:"output,omitempty"`
	Error     *CLIError         `json:"error,omitempty"`
}

// BatchResult holds all batch conversions.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Convert many values at once",
		Long: `Convert one value per line from a file, or from stdin when the file
is omitted or "-". Lines starting with a digit or sign are converted to
numerals, everything else is decoded. Blank lines and lines starting with
# are skipped.

With --yaml the input is a YAML list of {direction, input} objects; a
missing direction is detected the same way as for plain lines.

Exit codes:
  0 - Every conversion succeeded
  1 - One or more conversions failed
  2 - Command error (unreadable input, etc.)

Examples:
  romanus batch years.txt
  printf '12\nXLII\n' | romanus batch --bare
  romanus batch --yaml requests.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runBatch(opts, path, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "input is a YAML list of requests")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "parallel conversions (default ROMANUS_WORKERS or 4)")
	cmd.Flags().BoolVarP(&opts.Bare, "bare", "b", false, "only output the results")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	logger := ctxlog.FromContext(ctx)

	data, err := readBatchInput(path, cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return reportedError(ExitCommandError, err.Error())
	}

	var reqs []convert.Request
	if opts.YAML {
		reqs, err = parseYAMLRequests(data)
	} else {
		reqs, err = parseLineRequests(data)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return reportedError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("Read %d request(s) from %s", len(reqs), path)

	workers := opts.Workers
	if workers < 1 {
		workers = opts.RootOptions.Workers
	}
	outcomes, err := convert.Batch(ctx, reqs, workers, convert.Options{Strict: opts.Strict})
	if err != nil {
		return WrapExitError(ExitCommandError, "batch interrupted", err)
	}

	if err := recordOutcomes(ctx, opts.RootOptions, outcomes); err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return reportedError(ExitCommandError, err.Error())
	}

	result := BatchResult{Items: make([]BatchItem, 0, len(outcomes))}
	for _, out := range outcomes {
		item := BatchItem{Direction: out.Request.Direction, Input: out.Request.Input, Output: out.Output}
		if out.Err != nil {
			item.Error = &CLIError{Code: errorCode(out.Err), Message: out.Err.Error()}
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}
	logger.Debug("batch converted", "succeeded", result.Succeeded, "failed", result.Failed)

	if opts.Format == "json" {
		if err := outputBatchJSON(formatter, result); err != nil {
			return err
		}
	} else {
		for _, item := range result.Items {
			if item.Error != nil {
				_ = formatter.Error(item.Error.Code, item.Error.Message, nil)
				continue
			}
			if err := formatter.Result(item.Output, nil); err != nil {
				return err
			}
		}
	}

	if result.Failed > 0 {
		return reportedError(ExitFailure, fmt.Sprintf("%d conversion(s) failed", result.Failed))
	}
	return nil
}

func readBatchInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return data, nil
}

// parseLineRequests turns each non-blank, non-comment line into a request.
// Lines keep their surrounding whitespace; the numeral decoder trims it.
func parseLineRequests(data []byte) ([]convert.Request, error) {
	var reqs []convert.Request
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		reqs = append(reqs, convert.Request{Direction: convert.Detect(trimmed), Input: trimmed})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan input: %w", err)
	}
	return reqs, nil
}

func parseYAMLRequests(data []byte) ([]convert.Request, error) {
	var raw []struct {
		Direction string `yaml:"direction"`
		Input     string `yaml:"input"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	reqs := make([]convert.Request, 0, len(raw))
	for i, r := range raw {
		dir := convert.Detect(r.Input)
		if r.Direction != "" {
			d, err := convert.ParseDirection(r.Direction)
			if err != nil {
				return nil, fmt.Errorf("requests[%d]: %w", i, err)
			}
			dir = d
		}
		reqs = append(reqs, convert.Request{Direction: dir, Input: r.Input})
	}
	return reqs, nil
}

func outputBatchJSON(formatter *OutputFormatter, result BatchResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_BATCH_FAILED",
			Message: fmt.Sprintf("%d conversion(s) failed", result.Failed),
		}
	}
	return encodeIndented(formatter.Writer, response)
}
