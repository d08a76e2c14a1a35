package harness

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/romanus/internal/numeral"
	"github.com/roach88/romanus/internal/store"
)

//go:embed schema.cue
var schemaCUE string

// KindInvalidInput names integer input that is not an unsigned number.
// It sits beside the numeral error kinds in scenario files.
const KindInvalidInput = store.KindInvalidInput

// Scenario is a named list of conversion cases.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Strict decodes numerals with numeral.DecodeStrict.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`

	// Cases run in order.
	Cases []Case `yaml:"cases" json:"cases"`
}

// Case is one conversion with its expected outcome.
type Case struct {
	// Integer is converted to a numeral. Kept as text so malformed input
	// ("-5", "ten") can be exercised.
	Integer *Scalar `yaml:"integer,omitempty" json:"integer,omitempty"`

	// Roman is converted to an integer.
	Roman *Scalar `yaml:"roman,omitempty" json:"roman,omitempty"`

	// Expect is the expected output.
	Expect *Scalar `yaml:"expect,omitempty" json:"expect,omitempty"`

	// Error is the expected error kind name.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Scalar is a YAML/JSON scalar kept as its literal text, so both `1` and
// `"1"` read as "1".
type Scalar string

// S returns a pointer to a Scalar, for building scenarios in Go.
func S(v string) *Scalar {
	s := Scalar(v)
	return &s
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", trimmed)
	}
	*s = Scalar(n.String())
	return nil
}

// LoadScenario reads and parses a scenario file. The format is chosen by
// extension: .yaml/.yml or .cue. Returns an error if the file doesn't exist,
// is malformed, contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		scenario, err = parseYAML(data)
	case ".cue":
		scenario, err = parseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

func parseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// parseCUE checks the file against #Scenario, then decodes it through its
// JSON export so Scalar handling matches the YAML path.
func parseCUE(data []byte, path string) (*Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CUE: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("scenario does not match schema: %w", err)
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export CUE scenario: %w", err)
	}

	var scenario Scenario
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("decode CUE scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i := range s.Cases {
		if err := validateCase(i, &s.Cases[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateCase(index int, c *Case) error {
	switch {
	case c.Integer == nil && c.Roman == nil:
		return fmt.Errorf("cases[%d]: one of integer or roman is required", index)
	case c.Integer != nil && c.Roman != nil:
		return fmt.Errorf("cases[%d]: integer and roman are mutually exclusive", index)
	}

	switch {
	case c.Expect == nil && c.Error == "":
		return fmt.Errorf("cases[%d]: one of expect or error is required", index)
	case c.Expect != nil && c.Error != "":
		return fmt.Errorf("cases[%d]: expect and error are mutually exclusive", index)
	}

	if c.Error != "" && c.Error != KindInvalidInput {
		if _, err := numeral.ParseErrorKind(c.Error); err != nil {
			return fmt.Errorf("cases[%d]: %w", index, err)
		}
	}

	return nil
}
