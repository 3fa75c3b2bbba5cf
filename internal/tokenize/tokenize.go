// Package tokenize implements the delimiter-driven tokenizer the Mover uses
// to turn a body line's payload into a token sequence for move detection. See
// SPEC_FULL.md §4.5.
//
// Character, word, and word+operator tokenizers are latent per spec.md §9
// ("Tokenizer variants") but not exposed here: only the delimiter-driven
// tokenizer is consulted by the Mover, and nothing else in this module needs
// the others.
package tokenize

import "unicode"

// delimiters are kept as their own tokens rather than folded into adjacent
// runs.
const delimiters = "?:()+*-=<>"

func isDelimiter(r rune) bool {
	for _, d := range delimiters {
		if r == d {
			return true
		}
	}
	return false
}

// Tokens splits payload on whitespace and around the delimiter set
// "? : ( ) + * - = < >", keeping delimiters as their own tokens. Empty token
// runs are dropped. The result is deterministic and preserves input order.
func Tokens(payload string) []string {
	var tokens []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range payload {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isDelimiter(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return tokens
}
