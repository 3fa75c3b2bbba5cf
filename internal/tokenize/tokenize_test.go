package tokenize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokens_Simple(t *testing.T) {
	require.Equal(t, []string{"hello", "world"}, Tokens("hello world"))
}

func TestTokens_Delimiters(t *testing.T) {
	// Comma is not in the delimiter set, so it stays attached to the token
	// that precedes it; parens and the space are what split this apart.
	require.Equal(t, []string{"foo", "(", "a,", "b", ")"}, Tokens("foo(a, b)"))
}

func TestTokens_DelimitersAreSeparateEvenAdjacent(t *testing.T) {
	require.Equal(t, []string{"a", "=", "b", "+", "c"}, Tokens("a=b+c"))
}

func TestTokens_Empty(t *testing.T) {
	require.Nil(t, Tokens(""))
	require.Nil(t, Tokens("   "))
}
