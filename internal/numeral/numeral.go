package numeral

import "fmt"

// Numeral is an integer that reads and writes itself as a Roman numeral.
//
// It implements encoding.TextMarshaler and encoding.TextUnmarshaler, so it can
// be embedded in JSON and YAML documents.
type Numeral uint32

// String returns the numeral form, or "Numeral(n)" when n is out of range.
func (n Numeral) String() string {
	s, err := Encode(uint32(n))
	if err != nil {
		return fmt.Sprintf("Numeral(%d)", uint32(n))
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (n Numeral) MarshalText() ([]byte, error) {
	s, err := Encode(uint32(n))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Numeral) UnmarshalText(text []byte) error {
	v, err := Decode(string(text))
	if err != nil {
		return err
	}
	*n = Numeral(v)
	return nil
}
