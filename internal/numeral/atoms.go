package numeral

// Conversion bounds.
const (
	MinValue uint32 = 1
	MaxValue uint32 = 3999
)

// Atom is one entry of the symbol table.
type Atom struct {
	Value  uint32
	Symbol string
	// MaxRun is how many times the atom may appear back to back.
	MaxRun int
}

// Repeatable reports whether the atom may appear more than once in a row,
// that is whether MaxRun exceeds one. This is the decoder's run bound, so it
// is true only for M, C, X and I. D and L are single-use here even though
// they are sometimes listed as repeatable letters; a run such as DD or LL is
// rejected by Decode.
func (a Atom) Repeatable() bool {
	return a.MaxRun > 1
}

// atoms is ordered strictly descending by value. Never mutated.
var atoms = [...]Atom{
	{Value: 1000, Symbol: "M", MaxRun: 3},
	{Value: 900, Symbol: "CM", MaxRun: 1},
	{Value: 500, Symbol: "D", MaxRun: 1},
	{Value: 400, Symbol: "CD", MaxRun: 1},
	{Value: 100, Symbol: "C", MaxRun: 3},
	{Value: 90, Symbol: "XC", MaxRun: 1},
	{Value: 50, Symbol: "L", MaxRun: 1},
	{Value: 40, Symbol: "XL", MaxRun: 1},
	{Value: 10, Symbol: "X", MaxRun: 3},
	{Value: 9, Symbol: "IX", MaxRun: 1},
	{Value: 5, Symbol: "V", MaxRun: 1},
	{Value: 4, Symbol: "IV", MaxRun: 1},
	{Value: 1, Symbol: "I", MaxRun: 3},
}

// Atoms returns a copy of the symbol table, highest value first.
func Atoms() []Atom {
	out := make([]Atom, len(atoms))
	copy(out, atoms[:])
	return out
}
