package styledstring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseANSI_Plain(t *testing.T) {
	s, err := ParseANSI("hello world")
	require.NoError(t, err)
	require.Equal(t, "hello world", s.Plain())
	require.Empty(t, s.Tags())
}

func TestParseANSI_BoldAndColor(t *testing.T) {
	s, err := ParseANSI("\x1b[1;31mhello\x1b[0m world")
	require.NoError(t, err)
	require.Equal(t, "hello world", s.Plain())

	tags := s.Tags()
	require.Len(t, tags, 2)
	require.Equal(t, Tag{Start: 0, End: 5, Name: TagBold, Value: ""}, tags[0])
	require.Equal(t, Tag{Start: 0, End: 5, Name: TagFG, Value: "31"}, tags[1])
}

func TestParseANSI_IndexedColor(t *testing.T) {
	s, err := ParseANSI("\x1b[48;5;8mhi\x1b[0m")
	require.NoError(t, err)
	require.Equal(t, "hi", s.Plain())
	tags := s.Tags()
	require.Len(t, tags, 1)
	require.Equal(t, Tag{Start: 0, End: 2, Name: TagBGIndex, Value: "8"}, tags[0])
}

func TestParseANSI_NonSGRFallsBack(t *testing.T) {
	_, err := ParseANSI("\x1b[?25lhidden cursor")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNonSGR))
}

func TestParseANSI_UnterminatedIsFatal(t *testing.T) {
	_, err := ParseANSI("\x1b[1")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNonSGR))
}

func TestRenderANSI_RoundTrips(t *testing.T) {
	orig := "\x1b[1;31mhello\x1b[0m world"
	s, err := ParseANSI(orig)
	require.NoError(t, err)

	rendered := s.RenderANSI()
	s2, err := ParseANSI(rendered)
	require.NoError(t, err)
	require.Equal(t, s.Plain(), s2.Plain())
	require.Equal(t, s.Tags(), s2.Tags())
}

func TestSubstring(t *testing.T) {
	s, err := ParseANSI("\x1b[1mfoobar\x1b[0m")
	require.NoError(t, err)

	sub := s.Substring(3, 6)
	require.Equal(t, "bar", sub.Plain())
	require.Equal(t, []Tag{{Start: 0, End: 3, Name: TagBold, Value: ""}}, sub.Tags())
}

func TestConcat(t *testing.T) {
	a := New("foo").ApplyTag(0, 3, TagBold, "")
	b := New("bar").ApplyTag(0, 3, TagFG, "32")

	c := Concat(a, b)
	require.Equal(t, "foobar", c.Plain())
	require.Equal(t, []Tag{
		{Start: 0, End: 3, Name: TagBold, Value: ""},
		{Start: 3, End: 6, Name: TagFG, Value: "32"},
	}, c.Tags())
}

func TestApplyTagAndNextBoundary(t *testing.T) {
	s := New("hello world").ApplyTag(6, 11, TagBold, "")

	pos, ok := s.NextBoundary(0, TagBold, true)
	require.True(t, ok)
	require.Equal(t, 6, pos)

	pos, ok = s.NextBoundary(6, TagBold, false)
	require.False(t, ok)
	require.Equal(t, 11, pos)

	_, ok = s.NextBoundary(11, TagBold, true)
	require.False(t, ok)
}
