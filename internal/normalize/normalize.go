// Package normalize implements the pipeline's first stage: turning a raw text
// line into a styled string. See SPEC_FULL.md §4.1.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moveanno/moveanno/internal/styledstring"
)

const tabStop = 8

// Line strips a trailing newline from raw, expands tabs (ANSI-aware, stops
// every 8 columns over visible characters), and parses the result as an
// ANSI-styled string.
//
// If parsing fails because raw contains a non-SGR escape sequence
// (styledstring.ErrNonSGR), Line recovers by stripping all ANSI codes and
// re-wrapping the remainder as plain text. Any other parse failure is
// returned as a fatal error.
func Line(raw string) (styledstring.String, error) {
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")

	raw = expandTabs(raw)

	s, err := styledstring.ParseANSI(raw)
	if err == nil {
		return s, nil
	}
	if errors.Is(err, styledstring.ErrNonSGR) {
		return styledstring.New(stripANSI(raw)), nil
	}
	return styledstring.String{}, fmt.Errorf("normalize: %w", err)
}

// expandTabs replaces '\t' with spaces up to the next multiple of tabStop
// columns, counting only visible (non-escape-sequence) characters toward the
// column position.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	col := 0

	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			seqLen := ansiSequenceLength(s[i:])
			if seqLen == 0 {
				seqLen = 1
			}
			b.WriteString(s[i : i+seqLen])
			i += seqLen
			continue
		}
		if s[i] == '\t' {
			spaces := tabStop - (col % tabStop)
			for j := 0; j < spaces; j++ {
				b.WriteByte(' ')
			}
			col += spaces
			i++
			continue
		}
		b.WriteByte(s[i])
		col++
		i++
	}
	return b.String()
}

// stripANSI removes every recognizable ANSI escape sequence from s, including
// ones this package cannot otherwise interpret (e.g. cursor movement).
func stripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '\x1b' {
			b.WriteByte(s[i])
			i++
			continue
		}
		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			i++
			continue
		}
		i += seqLen
	}
	return b.String()
}

// ansiSequenceLength returns the byte length of the ANSI escape sequence
// starting at s[0], or 0 if s doesn't start with a recognizable one.
func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if b := s[i]; b >= 0x40 && b <= 0x7e {
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' {
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2
	}
}
