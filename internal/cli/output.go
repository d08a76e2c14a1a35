package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/numeral"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Conversion rejected, scenario failed
	ExitCommandError = 2 // Command error (bad flags, missing files, store failures)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the command already printed the error through
	// its OutputFormatter, so main must not print it again.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// reportedError is an ExitError whose message has already been printed.
func reportedError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message, Reported: true}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from cobra's flag and argument
// handling, so they map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// Error codes used in JSON output.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeInvalidInput  = "E_INVALID_INPUT"
	ErrCodeValueTooSmall = "E_VALUE_TOO_SMALL"
	ErrCodeValueTooLarge = "E_VALUE_TOO_LARGE"
	ErrCodeEmptyString   = "E_EMPTY_STRING"
	ErrCodeUnparsable    = "E_UNPARSABLE"
	ErrCodeStore         = "E_STORE"
)

// errorCode maps a conversion error to its JSON error code.
func errorCode(err error) string {
	if convert.IsInputError(err) {
		return ErrCodeInvalidInput
	}
	switch numeral.KindOf(err) {
	case numeral.KindValueTooSmall:
		return ErrCodeValueTooSmall
	case numeral.KindValueTooLarge:
		return ErrCodeValueTooLarge
	case numeral.KindEmptyString:
		return ErrCodeEmptyString
	case numeral.KindUnparsable:
		return ErrCodeUnparsable
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
//
// In text mode results go to Writer as "RESULT: <value>" (or the bare value)
// and errors go to ErrWriter as "ERROR: <message>". In JSON mode both are a
// CLIResponse on Writer.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Error and diagnostic output (defaults to Writer)
	Verbose   bool
	Bare      bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E_UNPARSABLE", "E001", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Result outputs a conversion result. value is the text-mode payload, data
// the JSON payload.
func (f *OutputFormatter) Result(value string, data any) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	if f.Bare {
		_, err := fmt.Fprintln(f.Writer, value)
		return err
	}
	_, err := fmt.Fprintf(f.Writer, "RESULT: %s\n", value)
	return err
}

// Success writes data as an "ok" CLIResponse. Text output goes through
// Result.
func (f *OutputFormatter) Success(data any) error {
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "ok",
		Data:   data,
	})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Bare only affects results; errors always carry the label.
	w := f.GetErrWriter()
	fmt.Fprintf(w, "ERROR: %s\n", message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Verbose output always goes to ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// encodeIndented writes v as indented JSON, the form used by the
// multi-item commands (batch, test, history, table).
func encodeIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
