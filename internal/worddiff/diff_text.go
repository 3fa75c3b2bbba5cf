package worddiff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText computes a word-level diff between oldText and newText, the
// payloads of a removed line and its matched added line. Both are expected
// to be a single line (no '\n'); the mover never calls this with multi-line
// text.
func DiffText(oldText, newText string) Diff {
	if oldText == newText {
		d := Diff{OldText: oldText, NewText: newText}
		if oldText != "" {
			d.Spans = []DiffSpan{{Op: OpEqual, OldText: oldText, NewText: newText}}
		}
		return d
	}

	dmp := diffmatchpatch.New()
	spans := diffsToSpans(dmp.DiffMain(oldText, newText, false))

	d := Diff{OldText: oldText, NewText: newText, Spans: spans}
	if err := d.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}
	return d
}

// diffsToSpans converts diffmatchpatch diffs to DiffSpan entries, merging
// runs and small sandwiched equals so a span boundary lands on a meaningful
// word-level change rather than a character-level one.
func diffsToSpans(diffs []diffmatchpatch.Diff) []DiffSpan {
	// Build initial spans, coalescing adjacent equals to reduce fragmentation:
	var spans []DiffSpan
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if len(spans) > 0 && spans[len(spans)-1].Op == OpEqual {
				spans[len(spans)-1].OldText += d.Text
				spans[len(spans)-1].NewText += d.Text
				continue
			}
			spans = append(spans, DiffSpan{Op: OpEqual, OldText: d.Text, NewText: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, DiffSpan{Op: OpDelete, OldText: d.Text, NewText: ""})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, DiffSpan{Op: OpInsert, OldText: "", NewText: d.Text})
		}
	}

	if len(spans) == 0 {
		return spans
	}

	// Iteratively collapse any non-equal run between equals into a single span:
	for {
		changed := false
		var normalized []DiffSpan
		for i := 0; i < len(spans); {
			s := spans[i]
			if s.Op == OpEqual {
				normalized = append(normalized, s)
				i++
				continue
			}
			// Collect a run of non-equal spans until next equal or end.
			j := i
			for j < len(spans) && spans[j].Op != OpEqual {
				j++
			}
			old, new := concatRun(spans[i:j])
			op, ok := opFor(old, new)
			if !ok {
				i = j
				continue
			}
			normalized = append(normalized, DiffSpan{Op: op, OldText: old, NewText: new})
			if j-i > 1 {
				changed = true
			}
			i = j
		}
		spans = normalized
		if !changed {
			break
		}
	}

	// Iteratively merge small equals sandwiched between non-equals:
	const maxSandwichedEqualLen = 8
	for {
		changed := false
		var normalized []DiffSpan
		appendWithCoalesce := func(s DiffSpan) {
			if len(normalized) > 0 && normalized[len(normalized)-1].Op != OpEqual && s.Op != OpEqual {
				old, new := concatRun([]DiffSpan{normalized[len(normalized)-1], s})
				op, _ := opFor(old, new)
				normalized[len(normalized)-1] = DiffSpan{Op: op, OldText: old, NewText: new}
				return
			}
			normalized = append(normalized, s)
		}
		for i := 0; i < len(spans); {
			if i+2 < len(spans) && spans[i].Op != OpEqual && spans[i+1].Op == OpEqual && spans[i+2].Op != OpEqual && len(spans[i+1].OldText) <= maxSandwichedEqualLen {
				old, new := concatRun(spans[i : i+3])
				op, _ := opFor(old, new)
				appendWithCoalesce(DiffSpan{Op: op, OldText: old, NewText: new})
				changed = true
				i += 3
				continue
			}
			appendWithCoalesce(spans[i])
			i++
		}
		spans = normalized
		if !changed {
			break
		}
	}
	return spans
}

// concatRun concatenates the old/new contributions of a run of spans.
func concatRun(run []DiffSpan) (old, new string) {
	for _, s := range run {
		switch s.Op {
		case OpDelete:
			old += s.OldText
		case OpInsert:
			new += s.NewText
		case OpReplace:
			old += s.OldText
			new += s.NewText
		case OpEqual:
			old += s.OldText
			new += s.NewText
		}
	}
	return old, new
}

// opFor returns the merged op for a combined old/new text pair, and false if
// the pair is empty on both sides (nothing to add).
func opFor(old, new string) (Op, bool) {
	switch {
	case old != "" && new != "":
		return OpReplace, true
	case old != "":
		return OpDelete, true
	case new != "":
		return OpInsert, true
	default:
		return OpEqual, false
	}
}
