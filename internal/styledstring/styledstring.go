// Package styledstring implements the "styled string" data model: a plain-text
// string carrying a set of tag extents (fg, bg, fgindex, bgindex, bold) and the
// operations needed to parse it from ANSI SGR escapes, slice/concat it, apply
// new tags, and render it back to ANSI for a terminal.
//
// Positions (Tag.Start, Tag.End, and the arguments to Substring/ApplyTag) are
// byte offsets into the plain (escape-free) text, matching how the rest of this
// module addresses line content.
package styledstring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/moveanno/moveanno/internal/q/uni"
)

// Tag names recognized by this package.
const (
	TagFG      = "fg"
	TagBG      = "bg"
	TagFGIndex = "fgindex"
	TagBGIndex = "bgindex"
	TagBold    = "bold"
)

// Tag is a styling extent over [Start, End) of a String's plain text.
type Tag struct {
	Start int
	End   int
	Name  string
	Value string // SGR color code/index as a decimal string; empty for TagBold
}

// String is text plus an ordered set of style tags.
//
// The zero value is the empty styled string.
type String struct {
	text string
	tags []Tag // sorted by Start, then End
}

// Plain returns s's text with no style information.
func (s String) Plain() string { return s.text }

// Tags returns a copy of s's tag extents, sorted by Start then End.
func (s String) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of bytes in s's plain text.
func (s String) Len() int { return len(s.text) }

// New wraps plain text with no style tags.
func New(plain string) String { return String{text: plain} }

// ErrNonSGR indicates an ANSI escape sequence was encountered that is not an
// SGR ("Select Graphic Rendition", the color/bold family) sequence. Callers
// that want the Normalizer's documented fallback behavior (strip all ANSI and
// treat the line as plain) should check for this with errors.Is.
var ErrNonSGR = errors.New("styledstring: non-SGR escape sequence")

// ParseANSI parses raw, which may contain ANSI SGR escape sequences, into a
// String. Non-escape bytes are copied through verbatim; SGR sequences ("\x1b["
// ... "m") open, close, or reset style tags instead of appearing in the output
// text.
//
// If raw contains an escape sequence that is not an SGR sequence (including a
// bare ESC not followed by '[', or a CSI sequence whose final byte isn't 'm'),
// ParseANSI returns an error wrapping ErrNonSGR. Any other malformed escape
// (e.g. an unterminated CSI sequence) is a fatal parse error.
func ParseANSI(raw string) (String, error) {
	var plain strings.Builder
	plain.Grow(len(raw))

	type openTag struct {
		name  string
		value string
		start int
	}
	var open []openTag
	var closed []Tag

	closeTag := func(name string, end int) {
		for i := len(open) - 1; i >= 0; i-- {
			if open[i].name == name {
				if open[i].start < end {
					closed = append(closed, Tag{Start: open[i].start, End: end, Name: name, Value: open[i].value})
				}
				open = append(open[:i], open[i+1:]...)
				return
			}
		}
	}
	openTagFn := func(name, value string, pos int) {
		closeTag(name, pos) // replace any existing tag of this name
		open = append(open, openTag{name: name, value: value, start: pos})
	}
	resetAll := func(pos int) {
		for _, o := range open {
			if o.start < pos {
				closed = append(closed, Tag{Start: o.start, End: pos, Name: o.name, Value: o.value})
			}
		}
		open = nil
	}

	i := 0
	for i < len(raw) {
		if raw[i] != '\x1b' {
			i++
			continue
		}

		// Flush plain text preceding this escape.
		plain.WriteString(raw[:i])
		raw = raw[i:]
		i = 0

		if len(raw) < 2 || raw[1] != '[' {
			return String{}, fmt.Errorf("%w: escape is not a CSI sequence", ErrNonSGR)
		}

		end := 2
		for end < len(raw) && !isCSIFinalByte(raw[end]) {
			end++
		}
		if end >= len(raw) {
			return String{}, fmt.Errorf("styledstring: unterminated CSI sequence")
		}
		final := raw[end]
		if final != 'm' {
			return String{}, fmt.Errorf("%w: CSI sequence final byte %q is not SGR", ErrNonSGR, final)
		}

		params, ok := parseSGRParams(raw[2:end])
		if !ok {
			return String{}, fmt.Errorf("styledstring: malformed SGR parameters %q", raw[2:end])
		}

		pos := plain.Len()
		applySGRParams(params, pos, openTagFn, resetAll, closeTag)

		raw = raw[end+1:]
	}
	plain.WriteString(raw)

	resetAll(plain.Len())

	sort.SliceStable(closed, func(i, j int) bool {
		if closed[i].Start != closed[j].Start {
			return closed[i].Start < closed[j].Start
		}
		return closed[i].End < closed[j].End
	})

	return String{text: plain.String(), tags: closed}, nil
}

func isCSIFinalByte(b byte) bool { return b >= 0x40 && b <= 0x7e }

func parseSGRParams(content string) ([]int, bool) {
	if content == "" {
		return []int{0}, true
	}
	parts := strings.Split(content, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			out = append(out, 0)
			continue
		}
		n := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				return nil, false
			}
			n = n*10 + int(c-'0')
		}
		out = append(out, n)
	}
	return out, true
}

func applySGRParams(params []int, pos int, open func(name, value string, pos int), resetAll func(pos int), closeNamed func(name string, pos int)) {
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			resetAll(pos)
		case p == 1:
			open(TagBold, "", pos)
		case p == 22:
			closeNamed(TagBold, pos)
		case p == 39:
			closeNamed(TagFG, pos)
			closeNamed(TagFGIndex, pos)
		case p == 49:
			closeNamed(TagBG, pos)
			closeNamed(TagBGIndex, pos)
		case p >= 30 && p <= 37, p >= 90 && p <= 97:
			open(TagFG, fmt.Sprintf("%d", p), pos)
		case p >= 40 && p <= 47, p >= 100 && p <= 107:
			open(TagBG, fmt.Sprintf("%d", p), pos)
		case p == 38:
			if idx, next, ok := readIndexedColor(params, i); ok {
				open(TagFGIndex, fmt.Sprintf("%d", idx), pos)
				i = next
			}
		case p == 48:
			if idx, next, ok := readIndexedColor(params, i); ok {
				open(TagBGIndex, fmt.Sprintf("%d", idx), pos)
				i = next
			}
		}
	}
}

func readIndexedColor(params []int, idx int) (value int, next int, ok bool) {
	if idx+1 >= len(params) {
		return 0, idx, false
	}
	switch params[idx+1] {
	case 5: // 256-color index
		if idx+2 >= len(params) {
			return 0, idx, false
		}
		return params[idx+2], idx + 2, true
	case 2: // truecolor; not representable by our tag model, but consume it so
		// it doesn't get misparsed as unrelated params.
		if idx+4 >= len(params) {
			return 0, idx, false
		}
		return 0, idx + 4, false
	}
	return 0, idx, false
}

// RenderANSI renders s back to a string with ANSI SGR escape sequences
// reproducing its tags.
func (s String) RenderANSI() string {
	if len(s.tags) == 0 {
		return s.text
	}

	boundarySet := map[int]bool{0: true, len(s.text): true}
	for _, t := range s.tags {
		boundarySet[t.Start] = true
		boundarySet[t.End] = true
	}
	bounds := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		bounds = append(bounds, b)
	}
	sort.Ints(bounds)

	var b strings.Builder
	var prevActive []Tag
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		active := s.activeTagsAt(from)
		if !sameTagSet(active, prevActive) {
			if len(prevActive) > 0 {
				b.WriteString("\x1b[0m")
			}
			if len(active) > 0 {
				b.WriteString(sgrSequence(active))
			}
		}
		b.WriteString(s.text[from:to])
		prevActive = active
	}
	if len(prevActive) > 0 {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func (s String) activeTagsAt(pos int) []Tag {
	var out []Tag
	for _, t := range s.tags {
		if t.Start <= pos && pos < t.End {
			out = append(out, t)
		}
	}
	return out
}

func sameTagSet(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sgrSequence(active []Tag) string {
	var codes []string
	for _, t := range active {
		switch t.Name {
		case TagBold:
			codes = append(codes, "1")
		case TagFG:
			codes = append(codes, t.Value)
		case TagBG:
			codes = append(codes, t.Value)
		case TagFGIndex:
			codes = append(codes, "38", "5", t.Value)
		case TagBGIndex:
			codes = append(codes, "48", "5", t.Value)
		}
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// Substring returns the portion of s spanning byte offsets [start, end) of its
// plain text, with tags clipped and shifted accordingly.
func (s String) Substring(start, end int) String {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return String{}
	}

	out := String{text: s.text[start:end]}
	for _, t := range s.tags {
		ts, te := t.Start, t.End
		if ts < start {
			ts = start
		}
		if te > end {
			te = end
		}
		if ts >= te {
			continue
		}
		out.tags = append(out.tags, Tag{Start: ts - start, End: te - start, Name: t.Name, Value: t.Value})
	}
	sort.SliceStable(out.tags, func(i, j int) bool {
		if out.tags[i].Start != out.tags[j].Start {
			return out.tags[i].Start < out.tags[j].Start
		}
		return out.tags[i].End < out.tags[j].End
	})
	return out
}

// Concat returns parts joined in order, with each part's tags shifted to
// follow the text of the parts before it.
func Concat(parts ...String) String {
	var out String
	var b strings.Builder
	for _, p := range parts {
		offset := b.Len()
		b.WriteString(p.text)
		for _, t := range p.tags {
			out.tags = append(out.tags, Tag{Start: t.Start + offset, End: t.End + offset, Name: t.Name, Value: t.Value})
		}
	}
	out.text = b.String()
	return out
}

// ApplyTag returns a copy of s with a new tag {Start: start, End: end, Name:
// name, Value: value} added over [start, end). It does not merge with or
// remove any existing tag.
func (s String) ApplyTag(start, end int, name, value string) String {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return s
	}
	out := String{text: s.text, tags: make([]Tag, len(s.tags), len(s.tags)+1)}
	copy(out.tags, s.tags)
	out.tags = append(out.tags, Tag{Start: start, End: end, Name: name, Value: value})
	sort.SliceStable(out.tags, func(i, j int) bool {
		if out.tags[i].Start != out.tags[j].Start {
			return out.tags[i].Start < out.tags[j].Start
		}
		return out.tags[i].End < out.tags[j].End
	})
	return out
}

// NextBoundary scans forward from position from (inclusive) for the next
// position at which the presence of a tag named name changes to want (true
// means "becomes present", false means "becomes absent"). It returns the
// found position and true, or (len(s.text), false) if no such boundary exists
// before the end of the text.
func (s String) NextBoundary(from int, name string, want bool) (int, bool) {
	if from < 0 {
		from = 0
	}
	has := func(pos int) bool {
		for _, t := range s.tags {
			if t.Name == name && t.Start <= pos && pos < t.End {
				return true
			}
		}
		return false
	}
	for pos := from; pos < len(s.text); pos++ {
		if has(pos) == want {
			return pos, true
		}
	}
	return len(s.text), false
}

// Width returns the terminal column width of s's plain text, ignoring style
// tags (which don't occupy cells).
func (s String) Width() int {
	return uni.TextWidth(s.text, nil)
}

// MustPlain is a convenience for tests/CLI callers who trust raw has no ANSI
// escape sequences at all; it never fails because there's nothing to parse.
func MustPlain(raw string) String { return New(raw) }
