// Package worddiff computes a word-level diff between two single lines of
// text.
//
// The mover package uses this to render the payload comparison inside a
// moved-line annotation: given the text of a removed line and the text of
// its matched added line, DiffText's Spans are the word-level diff that gets
// wrapped in styled-string tags.
//
// Representation: a Diff holds the complete OldText/NewText and an ordered
// slice of spans that, when concatenated, reconstruct both sides. Each span
// has an Op:
//   - OpEqual: unchanged text (OldText == NewText)
//   - OpInsert: text present only on the new side (OldText == "")
//   - OpDelete: text present only on the old side (NewText == "")
//   - OpReplace: text changed on both sides
//
// Granularity: the exact grouping of changes into spans is a policy choice
// of DiffText and may evolve; consumers should rely on the invariants above
// rather than any particular chunking.
//
// Getting a diff: use DiffText to compute one:
//
//	d := worddiff.DiffText(removedPayload, addedPayload)
//
// Spans never contain '\n'; inputs are expected to be a single line each.
package worddiff
