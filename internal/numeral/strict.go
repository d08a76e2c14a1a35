package numeral

// DecodeStrict is Decode restricted to canonical numerals.
//
// Decode accepts a few non-canonical sequences that the table walk can still
// consume, such as "IXI" (10) or "CMD" (1400). DecodeStrict rejects anything
// that Encode would not produce for the decoded value.
func DecodeStrict(text string) (uint32, error) {
	v, err := Decode(text)
	if err != nil {
		return 0, err
	}
	normalized := Normalize(text)
	canonical, err := Encode(v)
	if err != nil || canonical != normalized {
		return 0, &Error{Kind: KindUnparsable, Text: normalized}
	}
	return v, nil
}
