package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/romanus/internal/convert"
)

func TestBatchFromStdin(t *testing.T) {
	clearEnv(t)

	input := "# years\n1142\n\nmcmxl\n  48  \n"
	stdout, stderr, err := execute(t, input, "batch")

	require.NoError(t, err)
	assert.Equal(t, "RESULT: MCXLII\nRESULT: 1940\nRESULT: XLVIII\n", stdout)
	assert.Empty(t, stderr)
}

func TestBatchFromFileWithFailures(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "inputs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n4000\nIIII\nX\n"), 0644))

	stdout, stderr, err := execute(t, "", "batch", path, "--workers", "2")

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Equal(t, "RESULT: I\nRESULT: 10\n", stdout)
	assert.Equal(t, "ERROR: 4000 is too large\nERROR: IIII is not a valid Roman numeral\n", stderr)
}

func TestBatchMissingFile(t *testing.T) {
	clearEnv(t)

	_, stderr, err := execute(t, "", "batch", filepath.Join(t.TempDir(), "nope.txt"))

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "failed to read batch file")
}

func TestBatchBareKeepsErrorLabel(t *testing.T) {
	clearEnv(t)

	stdout, stderr, err := execute(t, "7\nIM\n0\n", "batch", "--bare")

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "VII\n", stdout)
	assert.Equal(t, "ERROR: IM is not a valid Roman numeral\nERROR: 0 is too small\n", stderr)
}

func TestBatchYAML(t *testing.T) {
	clearEnv(t)

	input := `
- direction: to_roman
  input: "2024"
- input: xiv
- direction: to_integer
  input: ""
`
	stdout, _, err := execute(t, input, "batch", "--yaml", "--format", "json")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   BatchResult `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Succeeded)
	assert.Equal(t, 1, resp.Data.Failed)

	require.Len(t, resp.Data.Items, 3)
	assert.Equal(t, BatchItem{Direction: convert.ToRoman, Input: "2024", Output: "MMXXIV"}, resp.Data.Items[0])
	assert.Equal(t, BatchItem{Direction: convert.ToInteger, Input: "xiv", Output: "14"}, resp.Data.Items[1])
	require.NotNil(t, resp.Data.Items[2].Error)
	assert.Equal(t, ErrCodeEmptyString, resp.Data.Items[2].Error.Code)
}

func TestBatchYAMLRejectsUnknownFields(t *testing.T) {
	clearEnv(t)

	_, stderr, err := execute(t, "- input: X\n  value: 10\n", "batch", "--yaml")

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "failed to parse YAML")
}

func TestBatchYAMLRejectsBadDirection(t *testing.T) {
	clearEnv(t)

	_, stderr, err := execute(t, "- direction: sideways\n  input: X\n", "batch", "--yaml")

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "requests[0]")
}

func TestBatchStrict(t *testing.T) {
	clearEnv(t)

	stdout, stderr, err := execute(t, "IXI\nCMD\n", "batch", "--strict")

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, stdout)
	assert.Equal(t, "ERROR: IXI is not a valid Roman numeral\nERROR: CMD is not a valid Roman numeral\n", stderr)
}

func TestBatchRecordsHistory(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, "1\n2\n3\n", "--db", dbPath, "batch")
	require.NoError(t, err)

	stdout, _, err := execute(t, "", "--db", dbPath, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 of 3 conversion(s)")
}

func TestParseLineRequests(t *testing.T) {
	reqs, err := parseLineRequests([]byte("12\n # comment\n\n XLII \n-3\n"))
	require.NoError(t, err)
	assert.Equal(t, []convert.Request{
		{Direction: convert.ToRoman, Input: "12"},
		{Direction: convert.ToInteger, Input: "XLII"},
		{Direction: convert.ToRoman, Input: "-3"},
	}, reqs)
}

func TestParseYAMLRequestsEmpty(t *testing.T) {
	reqs, err := parseYAMLRequests(nil)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}
