package pipeline

import (
	"strings"
	"testing"

	"github.com/moveanno/moveanno/internal/diffrecord"
	"github.com/stretchr/testify/require"
)

func lineSourceFromString(s string) LineSource {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	i := 0
	return func() (string, bool, error) {
		if i >= len(lines) {
			return "", false, nil
		}
		line := lines[i]
		i++
		return line, true, nil
	}
}

func TestPipeline_NonDiffTextPassesThroughAsOneGroup(t *testing.T) {
	r := New(lineSourceFromString("hello\nworld\n"), 0.3)
	groups, err := Drain(r)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, diffrecord.TopNonDiff, groups[0].Type)
	require.Len(t, groups[0].Items, 2)
}

func TestPipeline_SimpleDiffIsLinkedAndHasNoMoveAnnotations(t *testing.T) {
	diffText := strings.Join([]string{
		"diff --git a/x.go b/x.go",
		"--- a/x.go",
		"+++ b/x.go",
		"@@ -1,2 +1,2 @@",
		"-old line",
		"+new line",
		" context line",
		"",
	}, "\n")

	r := New(lineSourceFromString(diffText), 0.3)
	groups, err := Drain(r)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, diffrecord.TopDiff, groups[0].Type)
	require.Len(t, groups[0].Items, 7)

	for _, item := range groups[0].Items {
		if item.Info.Diff != nil && item.Info.Diff.Kind == diffrecord.KindBody {
			require.NotNil(t, item.Info.Diff.Ref)
		}
	}
}

func TestPipeline_MovedLineProducesAnnotations(t *testing.T) {
	diffText := strings.Join([]string{
		"diff --git a/x.go b/x.go",
		"--- a/x.go",
		"+++ b/x.go",
		"@@ -1,3 +1,3 @@",
		"-func helper(a, b int) int {",
		" unrelated context",
		"+func helper(a, b int) int {",
		"",
	}, "\n")

	r := New(lineSourceFromString(diffText), 0.3)
	groups, err := Drain(r)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	var commentCount int
	for _, item := range groups[0].Items {
		if item.Info.Diff != nil && item.Info.Diff.Kind == diffrecord.KindComment {
			commentCount++
			require.Equal(t, diffrecord.CommentMoved, item.Info.Diff.CommentSubtype)
		}
	}
	require.Equal(t, 2, commentCount)
}

func TestPipeline_ClassifierFatalErrorPropagates(t *testing.T) {
	diffText := strings.Join([]string{
		"diff --git a/x.go b/x.go",
		"--- a/x.go",
		"+++ b/x.go",
		"@@ -1 +1 @@",
		"?not a recognized prefix",
		"",
	}, "\n")

	r := New(lineSourceFromString(diffText), 0.3)
	_, err := Drain(r)
	require.Error(t, err)
}
