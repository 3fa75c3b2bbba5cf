package mover

import (
	"fmt"

	"github.com/moveanno/moveanno/internal/diffrecord"
	"github.com/moveanno/moveanno/internal/styledstring"
	"github.com/moveanno/moveanno/internal/worddiff"
)

// Annotation colors, all 256-color palette indices per the rendering rule:
// background index 8 + bold for the word-diff region, fallback foreground
// 8+7 (bright white), path-label foregrounds 8+1/8+2 on background 8+0.
const (
	annotationBG     = "8"  // 8+0: background for the whole annotation
	annotationWordFG = "15" // 8+7: bright white fallback for changed words
	pathToFG         = "9"  // 8+1: marks a forward ("moved to") path
	pathFromFG       = "10" // 8+2: marks a backward ("moved from") path
	unchangedFG      = "81" // sky blue, used only for the "(unchanged)" label
)

// side selects which half of a worddiff span pair an annotation renders.
type side int

const (
	sideOld side = iota
	sideNew
)

// collectSpans returns d's span list, synthesizing a single equal span when
// DiffText returned no spans (which happens only when both payloads are
// empty).
func collectSpans(d worddiff.Diff) []worddiff.DiffSpan {
	if len(d.Spans) == 0 {
		return []worddiff.DiffSpan{{Op: worddiff.OpEqual, OldText: d.OldText, NewText: d.NewText}}
	}
	return d.Spans
}

// renderPayloadDiff renders one side of a word-level payload diff, tagging
// changed words with the annotation's highlight colors. Unchanged words carry
// no tags; side selects whether delete (sideOld) or insert (sideNew) spans are
// the "changed" half.
func renderPayloadDiff(spans []worddiff.DiffSpan, which side) styledstring.String {
	var parts []styledstring.String
	for _, sp := range spans {
		var text string
		changed := false
		switch sp.Op {
		case worddiff.OpEqual:
			text = sp.OldText
		case worddiff.OpDelete:
			if which != sideOld {
				continue
			}
			text = sp.OldText
			changed = true
		case worddiff.OpInsert:
			if which != sideNew {
				continue
			}
			text = sp.NewText
			changed = true
		case worddiff.OpReplace:
			if which == sideOld {
				text = sp.OldText
			} else {
				text = sp.NewText
			}
			changed = true
		}
		if text == "" {
			continue
		}
		styled := styledstring.New(text)
		if changed {
			styled = styled.ApplyTag(0, len(text), styledstring.TagBGIndex, annotationBG)
			styled = styled.ApplyTag(0, len(text), styledstring.TagBold, "")
			styled = styled.ApplyTag(0, len(text), styledstring.TagFGIndex, annotationWordFG)
		}
		parts = append(parts, styled)
	}
	return styledstring.Concat(parts...)
}

// pathLabel renders a bold, colored "#→ path" style label (no trailing
// punctuation; buildAnnotation appends the colon and body).
func pathLabel(arrow, path, fg string) styledstring.String {
	text := fmt.Sprintf("%s %s", arrow, path)
	s := styledstring.New(text)
	s = s.ApplyTag(0, len(text), styledstring.TagBGIndex, annotationBG)
	s = s.ApplyTag(0, len(text), styledstring.TagBold, "")
	s = s.ApplyTag(0, len(text), styledstring.TagFGIndex, fg)
	return s
}

// unchangedBody renders the ": (unchanged)" body used when a moved pair's
// payloads are token-identical (distance 0).
func unchangedBody() styledstring.String {
	const text = ": (unchanged)"
	s := styledstring.New(text)
	s = s.ApplyTag(0, len(text), styledstring.TagBGIndex, annotationBG)
	s = s.ApplyTag(0, len(text), styledstring.TagFGIndex, unchangedFG)
	return s
}

// buildAnnotation renders one annotation: an arrow+path label, then either
// ": (unchanged)" or a second line repeating the sigil, a tab, and the
// word-level diff of the two payloads.
func buildAnnotation(arrow, path, pathFG string, which side, removedPayload, addedPayload string, distance int) styledstring.String {
	label := pathLabel(arrow, path, pathFG)
	if distance == 0 {
		return styledstring.Concat(label, unchangedBody())
	}
	spans := collectSpans(worddiff.DiffText(removedPayload, addedPayload))
	wordDiff := renderPayloadDiff(spans, which)
	lineBreak := styledstring.New(":\n" + arrow + "\t")
	return styledstring.Concat(label, lineBreak, wordDiff)
}

// annotationPair is the two synthesized comment records for one Match: one to
// splice after the removed line (pointing forward to where it went), one to
// splice after the added line (pointing back to where it came from).
type annotationPair struct {
	afterRemovedIndex int
	afterAddedIndex   int
	sourceSide        diffrecord.Record
	destSide          diffrecord.Record
}

func renderMatch(m Match) annotationPair {
	removedPayload := payloadOf(m.Removed)
	addedPayload := payloadOf(m.Added)

	toFile := ""
	if m.Removed.Info.Diff.Ref != nil {
		toFile = m.Removed.Info.Diff.Ref.ToFile()
	}
	fromFile := ""
	if m.Added.Info.Diff.Ref != nil {
		fromFile = m.Added.Info.Diff.Ref.FromFile()
	}

	sourceText := buildAnnotation("#→", toFile, pathToFG, sideNew, removedPayload, addedPayload, m.Distance)
	destText := buildAnnotation("#←", fromFile, pathFromFG, sideOld, removedPayload, addedPayload, m.Distance)

	mk := func(text styledstring.String, lineNumber int) diffrecord.Record {
		return diffrecord.Record{
			LineNumber: lineNumber,
			Text:       text,
			Info: diffrecord.Info{
				Type: diffrecord.TopDiff,
				Diff: &diffrecord.DiffInfo{
					Kind:           diffrecord.KindComment,
					CommentSubtype: diffrecord.CommentMoved,
				},
			},
		}
	}

	return annotationPair{
		afterRemovedIndex: m.RemovedIndex,
		afterAddedIndex:   m.AddedIndex,
		sourceSide:        mk(sourceText, m.Removed.LineNumber),
		destSide:          mk(destText, m.Added.LineNumber),
	}
}

// Splice inserts annotation records immediately after their anchor's original
// index, preserving the relative order of annotations that share an anchor
// and never reordering any pre-existing item.
func Splice(items []diffrecord.Record, matches []Match) []diffrecord.Record {
	if len(matches) == 0 {
		return items
	}

	after := make(map[int][]diffrecord.Record, len(matches)*2)
	for _, m := range matches {
		pair := renderMatch(m)
		after[pair.afterRemovedIndex] = append(after[pair.afterRemovedIndex], pair.sourceSide)
		after[pair.afterAddedIndex] = append(after[pair.afterAddedIndex], pair.destSide)
	}

	out := make([]diffrecord.Record, 0, len(items)+len(matches)*2)
	for i, rec := range items {
		out = append(out, rec)
		out = append(out, after[i]...)
	}
	return out
}

// Annotate runs the full Mover over one diff group and returns a new group
// with moved-line annotation records spliced in. Non-diff groups pass through
// unchanged.
func Annotate(group diffrecord.Group, threshold float64) diffrecord.Group {
	if group.Type != diffrecord.TopDiff {
		return group
	}
	matches := Detect(group.Items, threshold)
	return diffrecord.Group{Type: group.Type, Items: Splice(group.Items, matches)}
}
