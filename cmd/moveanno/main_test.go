package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_AnnotatesMovedLine(t *testing.T) {
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

	var out bytes.Buffer
	err := Run(nil, strings.NewReader(diffText), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "func helper")
	require.Contains(t, out.String(), "#→")
	require.Contains(t, out.String(), "#←")
}

func TestRun_PlainTextPassesThrough(t *testing.T) {
	var out bytes.Buffer
	err := Run(nil, strings.NewReader("hello\nworld\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "hello\nworld\n", out.String())
}
