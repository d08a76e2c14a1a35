package numeral

import "strings"

// Decode converts a Roman numeral to its integer value.
//
// Input is case-insensitive and surrounding whitespace is ignored. Whitespace
// inside the numeral is rejected.
func Decode(text string) (uint32, error) {
	normalized := Normalize(text)
	if err := checkFormat(normalized); err != nil {
		return 0, err
	}

	sum, ok := decompose(normalized)
	if !ok {
		return 0, &Error{Kind: KindUnparsable, Text: normalized}
	}
	return sum, nil
}

// Valid reports whether text decodes without error.
func Valid(text string) bool {
	_, err := Decode(text)
	return err == nil
}

// Normalize trims surrounding whitespace and upper-cases ASCII letters.
// Non-ASCII letters are left untouched so they fail the format check.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(text))
}

func checkFormat(normalized string) error {
	if normalized == "" {
		return &Error{Kind: KindEmptyString}
	}
	for i := 0; i < len(normalized); i++ {
		switch normalized[i] {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return &Error{Kind: KindUnparsable, Text: normalized}
		}
	}
	return nil
}

// decompose walks the table once. idx only moves forward; a matched atom is
// retried until its run reaches MaxRun. Reports false if input is left over.
func decompose(text string) (uint32, bool) {
	var sum uint32
	rest := text
	idx, run := 0, 0
	for idx < len(atoms) {
		a := atoms[idx]
		if !strings.HasPrefix(rest, a.Symbol) {
			idx++
			run = 0
			continue
		}
		sum += a.Value
		rest = rest[len(a.Symbol):]
		run++
		if run >= a.MaxRun {
			idx++
			run = 0
		}
	}
	return sum, rest == ""
}
