package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/romanus/internal/convert"
	"github.com/roach88/romanus/internal/numeral"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitFailure, "test error")
	assert.Equal(t, "test error", err.Error())
	assert.Equal(t, ExitFailure, err.Code)
	assert.Nil(t, err.Unwrap())
}

func TestWrapExitError(t *testing.T) {
	inner := errors.New("inner error")
	err := WrapExitError(ExitCommandError, "outer", inner)
	assert.Equal(t, "outer: inner error", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit failure", NewExitError(ExitFailure, "x"), ExitFailure},
		{"exit command error", NewExitError(ExitCommandError, "x"), ExitCommandError},
		{"wrapped exit error", fmt.Errorf("ctx: %w", NewExitError(ExitFailure, "x")), ExitFailure},
		{"plain error", errors.New("unknown flag: --nope"), ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestIsReported(t *testing.T) {
	assert.True(t, IsReported(reportedError(ExitFailure, "printed")))
	assert.False(t, IsReported(NewExitError(ExitFailure, "not printed")))
	assert.False(t, IsReported(errors.New("plain")))
	assert.False(t, IsReported(nil))
}

func TestErrorCode(t *testing.T) {
	_, tooSmall := numeral.Encode(0)
	_, tooLarge := numeral.Encode(4000)
	_, empty := numeral.Decode("")
	_, unparsable := numeral.Decode("VV")
	_, badInt := convert.ParseInteger("x")

	assert.Equal(t, ErrCodeValueTooSmall, errorCode(tooSmall))
	assert.Equal(t, ErrCodeValueTooLarge, errorCode(tooLarge))
	assert.Equal(t, ErrCodeEmptyString, errorCode(empty))
	assert.Equal(t, ErrCodeUnparsable, errorCode(unparsable))
	assert.Equal(t, ErrCodeInvalidInput, errorCode(badInt))
	assert.Equal(t, ErrCodeGeneric, errorCode(errors.New("other")))
}

func TestOutputFormatterResultText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Result("XLII", nil))
	assert.Equal(t, "RESULT: XLII\n", buf.String())
}

func TestOutputFormatterResultBare(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Bare: true}

	require.NoError(t, f.Result("42", nil))
	assert.Equal(t, "42\n", buf.String())
}

func TestOutputFormatterErrorBareKeepsLabel(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Bare: true}

	require.NoError(t, f.Error(ErrCodeUnparsable, "IM is not a valid Roman numeral", nil))
	assert.Empty(t, out.String())
	assert.Equal(t, "ERROR: IM is not a valid Roman numeral\n", errOut.String())
}

func TestOutputFormatterSuccessIsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"value": 42}))
	assert.JSONEq(t, `{"status":"ok","data":{"value":42}}`, buf.String())
}

func TestOutputFormatterResultJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Result("XLII", map[string]string{"output": "XLII"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"output": "XLII"}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatterErrorText(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: true}

	require.NoError(t, f.Error(ErrCodeUnparsable, "VV is not a valid Roman numeral", "VV"))
	assert.Empty(t, out.String())
	assert.Equal(t, "ERROR: VV is not a valid Roman numeral\nDetails: VV\n", errOut.String())
}

func TestOutputFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error(ErrCodeEmptyString, "No Roman numeral provided", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeEmptyString, resp.Error.Code)
	assert.Equal(t, "No Roman numeral provided", resp.Error.Message)
}

func TestOutputFormatterVerboseLog(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}
	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())
}
