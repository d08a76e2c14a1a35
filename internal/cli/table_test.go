package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGolden(t *testing.T) {
	clearEnv(t)

	stdout, _, err := execute(t, "", "table", "--to", "12")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "table_1_12", []byte(stdout))
}

func TestTableGrouping(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		lang string
		want string
	}{
		{"en", "1,990  MCMXC\n1,991  MCMXCI\n"},
		{"de", "1.990  MCMXC\n1.991  MCMXCI\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			stdout, _, err := execute(t, "", "table", "--from", "1990", "--to", "1991", "--lang", tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestTableJSON(t *testing.T) {
	clearEnv(t)

	stdout, _, err := execute(t, "", "table", "--from", "3998", "--to", "3999", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []TableRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, []TableRow{{3998, "MMMCMXCVIII"}, {3999, "MMMCMXCIX"}}, resp.Data)
}

func TestTableOutOfRange(t *testing.T) {
	clearEnv(t)

	_, stderr, err := execute(t, "", "table", "--from", "3990", "--to", "4000")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "ERROR: 4000 is too large\n", stderr)

	_, stderr, err = execute(t, "", "table", "--from", "0", "--to", "3")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "ERROR: 0 is too small\n", stderr)
}

func TestTableInvalidRange(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, "", "table", "--from", "10", "--to", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "", "table", "--lang", "not a tag!")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBuildTable(t *testing.T) {
	rows, err := buildTable(3999, 3999)
	require.NoError(t, err)
	assert.Equal(t, []TableRow{{3999, "MMMCMXCIX"}}, rows)
}
