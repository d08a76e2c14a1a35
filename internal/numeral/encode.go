package numeral

import "strings"

// Encode converts value to its canonical upper-case Roman numeral.
//
// Returns a KindValueTooSmall error for values below MinValue and a
// KindValueTooLarge error for values above MaxValue.
func Encode(value uint32) (string, error) {
	if value < MinValue {
		return "", &Error{Kind: KindValueTooSmall, Value: value}
	}
	if value > MaxValue {
		return "", &Error{Kind: KindValueTooLarge, Value: value}
	}

	var b strings.Builder
	remaining := value
	for remaining > 0 {
		a := largestAtom(remaining)
		b.WriteString(a.Symbol)
		remaining -= a.Value
	}
	return b.String(), nil
}

// largestAtom returns the first atom not exceeding v. The table ends with
// 1, so any v > 0 finds a match.
func largestAtom(v uint32) Atom {
	for _, a := range atoms {
		if a.Value <= v {
			return a
		}
	}
	return atoms[len(atoms)-1]
}
