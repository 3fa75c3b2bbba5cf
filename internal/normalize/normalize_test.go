package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLine_StripsNewline(t *testing.T) {
	s, err := Line("hello\n")
	require.NoError(t, err)
	require.Equal(t, "hello", s.Plain())
}

func TestLine_ExpandsTabs(t *testing.T) {
	s, err := Line("a\tb\n")
	require.NoError(t, err)
	require.Equal(t, "a       b", s.Plain())
}

func TestLine_ExpandsTabsAfterANSI(t *testing.T) {
	s, err := Line("\x1b[31ma\tb\x1b[0m\n")
	require.NoError(t, err)
	require.Equal(t, "a       b", s.Plain())
}

func TestLine_NonSGRFallsBackToPlain(t *testing.T) {
	s, err := Line("\x1b[?25lhidden\n")
	require.NoError(t, err)
	require.Equal(t, "hidden", s.Plain())
	require.Empty(t, s.Tags())
}

func TestLine_PreservesSGRTags(t *testing.T) {
	s, err := Line("\x1b[1mbold\x1b[0m\n")
	require.NoError(t, err)
	require.Equal(t, "bold", s.Plain())
	require.Len(t, s.Tags(), 1)
}
