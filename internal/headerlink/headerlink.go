// Package headerlink implements the pipeline's Header-linker stage: within
// each diff Group, tracking the running file-header set and current hunk, and
// back-referencing every body record to them. See SPEC_FULL.md §4.4.
package headerlink

import "github.com/moveanno/moveanno/internal/diffrecord"

// Link walks items (the Items of one diff Group) left to right, attaching
// Info.Diff.Ref to every body record, and returns the updated slice. non-diff
// groups should not be passed to Link; it assumes every item's Info.Type is
// TopDiff.
func Link(items []diffrecord.Record) []diffrecord.Record {
	out := make([]diffrecord.Record, len(items))

	var header diffrecord.FileHeaderSet
	var ref *diffrecord.Ref
	prevWasFileHeader := false

	for i, rec := range items {
		isFileHeader := rec.Info.Diff != nil && rec.Info.Diff.Kind == diffrecord.KindFileHeader

		if isFileHeader && !prevWasFileHeader {
			header = diffrecord.FileHeaderSet{}
			ref = nil
		}

		if isFileHeader {
			rc := rec
			switch rec.Info.Diff.FileHeaderSubtype {
			case diffrecord.HeaderGit:
				header.Git = &rc
			case diffrecord.HeaderFrom:
				header.From = &rc
			case diffrecord.HeaderTo:
				header.To = &rc
				// generic: does not update header.
			}
			out[i] = rec
			prevWasFileHeader = true
			continue
		}

		prevWasFileHeader = false

		if rec.Info.Diff != nil && rec.Info.Diff.Kind == diffrecord.KindBody && rec.Info.Diff.BodySubtype == diffrecord.BodyHunkLines {
			rc := rec
			ref = &diffrecord.Ref{FileHeader: header, HunkLines: &rc}
		}

		// A "Binary files X and Y differ" line never has a preceding hunk (binary
		// diffs have no hunks at all). Snapshot a ref directly from the header so
		// the body-ref invariant still holds.
		if rec.Info.Diff != nil && rec.Info.Diff.Kind == diffrecord.KindBody && rec.Info.Diff.BodySubtype == diffrecord.BodyCommentBinary && ref == nil {
			ref = &diffrecord.Ref{FileHeader: header}
		}

		if rec.Info.Diff != nil && rec.Info.Diff.Kind == diffrecord.KindBody {
			rc := rec
			diffCopy := *rc.Info.Diff
			diffCopy.Ref = ref
			rc.Info.Diff = &diffCopy
			out[i] = rc
			continue
		}

		out[i] = rec
	}

	return out
}
