// Package numeral converts between unsigned integers and Roman numerals.
//
// Both directions share a fixed table of thirteen atoms ordered from 1000
// down to 1, including the subtractive pairs (CM, CD, XC, XL, IX, IV).
//
// # Encoding
//
// Encode walks the table greedily, always taking the largest atom that still
// fits the remainder. The result is the canonical (shortest) numeral.
//
//	s, err := numeral.Encode(1142) // "MCXLII"
//
// # Decoding
//
// Decode trims surrounding whitespace, upper-cases the input, checks that only
// the seven symbol letters are present and then decomposes the text in a single
// forward pass over the table. The atom pointer never moves backwards, so
// out-of-order input such as "IM" cannot be consumed completely and is rejected.
// M, C, X and I may repeat up to three times; every other atom at most once.
//
//	n, err := numeral.Decode(" mcmxl\n") // 1940
//
// # Errors
//
// All failures are *Error values carrying a Kind:
//
//   - KindValueTooSmall: Encode input below MinValue
//   - KindValueTooLarge: Encode input above MaxValue
//   - KindEmptyString: Decode input empty after trimming
//   - KindUnparsable: Decode input with foreign characters or a bad sequence
//
// Use errors.Is with the sentinel values (ErrValueTooSmall, ...) or IsKind to
// test for a specific kind through wrapping.
package numeral
