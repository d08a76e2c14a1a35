// Package convert dispatches conversion requests to the numeral package.
//
// It is shared by the CLI, the batch command and the scenario harness so all
// three parse integer input and report failures the same way.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/romanus/internal/numeral"
)

// Direction selects which way a request converts.
type Direction string

const (
	// ToRoman converts an integer to a numeral.
	ToRoman Direction = "to_roman"
	// ToInteger converts a numeral to an integer.
	ToInteger Direction = "to_integer"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case ToRoman, ToInteger:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be %s or %s", s, ToRoman, ToInteger)
	}
}

// Request is a single conversion.
type Request struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Input     string    `json:"input" yaml:"input"`
}

// Outcome is the result of a Request. Exactly one of Output and Err is set.
type Outcome struct {
	Request Request
	Output  string
	Err     error
}

// OK reports whether the conversion succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// InputError reports integer input that is not an unsigned 32-bit number.
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%q is not an unsigned integer", e.Input)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ParseInteger parses s as an unsigned 32-bit integer, ignoring surrounding
// whitespace.
func ParseInteger(s string) (uint32, error) {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, &InputError{Input: trimmed, Err: err}
	}
	return uint32(v), nil
}

// Options adjusts conversion behaviour.
type Options struct {
	// Strict rejects non-canonical numerals such as "IXI".
	Strict bool
}

// Do performs req.
func Do(req Request, opts Options) Outcome {
	out := Outcome{Request: req}
	switch req.Direction {
	case ToRoman:
		v, err := ParseInteger(req.Input)
		if err != nil {
			out.Err = err
			return out
		}
		out.Output, out.Err = numeral.Encode(v)
	case ToInteger:
		decode := numeral.Decode
		if opts.Strict {
			decode = numeral.DecodeStrict
		}
		v, err := decode(req.Input)
		if err != nil {
			out.Err = err
			return out
		}
		out.Output = strconv.FormatUint(uint64(v), 10)
	default:
		out.Err = fmt.Errorf("invalid direction %q", req.Direction)
	}
	return out
}

// Detect guesses the direction of a bare input line. Input starting with a
// digit or sign is an integer to encode; anything else is decoded.
func Detect(input string) Direction {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ToInteger
	}
	switch c := trimmed[0]; {
	case c >= '0' && c <= '9', c == '-', c == '+':
		return ToRoman
	default:
		return ToInteger
	}
}
