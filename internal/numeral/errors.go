package numeral

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the reason a conversion failed.
type ErrorKind int

const (
	// KindValueTooSmall indicates an integer below MinValue.
	KindValueTooSmall ErrorKind = iota + 1
	// KindValueTooLarge indicates an integer above MaxValue.
	KindValueTooLarge
	// KindEmptyString indicates a numeral that is empty after trimming.
	KindEmptyString
	// KindUnparsable indicates text that is not a valid Roman numeral.
	KindUnparsable
)

// String returns the kind's name as used in scenario files and JSON output.
func (k ErrorKind) String() string {
	switch k {
	case KindValueTooSmall:
		return "ValueTooSmall"
	case KindValueTooLarge:
		return "ValueTooLarge"
	case KindEmptyString:
		return "EmptyString"
	case KindUnparsable:
		return "Unparsable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseErrorKind maps a kind name back to its ErrorKind.
func ParseErrorKind(name string) (ErrorKind, error) {
	for _, k := range []ErrorKind{KindValueTooSmall, KindValueTooLarge, KindEmptyString, KindUnparsable} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", name)
}

// Error is returned by Encode and Decode.
//
// Value is set for the ValueTooSmall and ValueTooLarge kinds, Text for
// Unparsable. EmptyString carries no payload.
type Error struct {
	Kind  ErrorKind
	Value uint32
	Text  string
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrValueTooSmall = &Error{Kind: KindValueTooSmall}
	ErrValueTooLarge = &Error{Kind: KindValueTooLarge}
	ErrEmptyString   = &Error{Kind: KindEmptyString}
	ErrUnparsable    = &Error{Kind: KindUnparsable}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindValueTooSmall:
		return fmt.Sprintf("%d is too small", e.Value)
	case KindValueTooLarge:
		return fmt.Sprintf("%d is too large", e.Value)
	case KindEmptyString:
		return "No Roman numeral provided"
	case KindUnparsable:
		return fmt.Sprintf("%s is not a valid Roman numeral", e.Text)
	default:
		return e.Kind.String()
	}
}

// Is matches on Kind only, so sentinels compare equal to any payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind == kind
	}
	return false
}

// KindOf returns the kind of the *Error wrapped by err, or 0.
func KindOf(err error) ErrorKind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return 0
}
