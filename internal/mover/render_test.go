package mover

import (
	"strings"
	"testing"

	"github.com/moveanno/moveanno/internal/diffrecord"
	"github.com/moveanno/moveanno/internal/styledstring"
	"github.com/moveanno/moveanno/internal/worddiff"
	"github.com/stretchr/testify/require"
)

func matchWithRefs(removedText, addedText string, distance int) Match {
	removed := bodyRec(diffrecord.BodyRemoved, removedText)
	added := bodyRec(diffrecord.BodyAdded, addedText)
	removed.Info.Diff.Ref = &diffrecord.Ref{}
	added.Info.Diff.Ref = &diffrecord.Ref{}
	return Match{Removed: removed, Added: added, Distance: distance}
}

func TestRenderMatch_UnchangedUsesUnchangedLabel(t *testing.T) {
	m := matchWithRefs("-foo(a, b)", "+foo(a, b)", 0)
	pair := renderMatch(m)

	require.True(t, strings.Contains(pair.sourceSide.Text.Plain(), "(unchanged)"))
	require.True(t, strings.Contains(pair.destSide.Text.Plain(), "(unchanged)"))
}

func TestRenderMatch_ApproximateRendersWordDiff(t *testing.T) {
	m := matchWithRefs("-value = a + b", "+value = a + c", 1)
	pair := renderMatch(m)

	require.False(t, strings.Contains(pair.sourceSide.Text.Plain(), "(unchanged)"))
	require.True(t, strings.Contains(pair.sourceSide.Text.Plain(), "#→"))
	require.True(t, strings.Contains(pair.destSide.Text.Plain(), "#←"))
}

func TestRenderMatch_CommentSubtypeIsMoved(t *testing.T) {
	m := matchWithRefs("-a", "+a", 0)
	pair := renderMatch(m)
	require.Equal(t, diffrecord.CommentMoved, pair.sourceSide.Info.Diff.CommentSubtype)
	require.Equal(t, diffrecord.CommentMoved, pair.destSide.Info.Diff.CommentSubtype)
	require.Equal(t, diffrecord.KindComment, pair.sourceSide.Info.Diff.Kind)
}

func TestRenderPayloadDiff_TagsOnlyChangedWords(t *testing.T) {
	removed := "value = a + b"
	added := "value = a + c"
	spans := collectSpans(worddiff.DiffText(removed, added))
	rendered := renderPayloadDiff(spans, sideNew)

	var taggedBytes int
	for _, tag := range rendered.Tags() {
		if tag.Name == styledstring.TagBold {
			taggedBytes += tag.End - tag.Start
		}
	}
	require.Greater(t, taggedBytes, 0)
	require.Less(t, taggedBytes, len(rendered.Plain()))
}
