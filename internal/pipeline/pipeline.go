// Package pipeline composes the Normalizer, Enumerator, Classifier,
// Top-grouper, Header-linker, and Mover stages into one pull-based reader
// that turns raw diff text lines into annotated Groups. See SPEC_FULL.md §2,
// §5.
package pipeline

import (
	"fmt"

	"github.com/moveanno/moveanno/internal/classify"
	"github.com/moveanno/moveanno/internal/config"
	"github.com/moveanno/moveanno/internal/diffrecord"
	"github.com/moveanno/moveanno/internal/headerlink"
	"github.com/moveanno/moveanno/internal/mover"
	"github.com/moveanno/moveanno/internal/normalize"
	"github.com/moveanno/moveanno/internal/topgroup"
)

// LineSource pulls the next raw input line. ok is false at a clean end of
// input; err is non-nil only on an unrecoverable read failure.
type LineSource func() (line string, ok bool, err error)

// Reader is the composed pipeline: it reads raw lines from a LineSource and
// produces fully annotated Groups, one at a time, on demand.
type Reader struct {
	threshold float64
	groups    *topgroup.Reader
}

// New wires src through Normalizer -> Enumerator -> Classifier -> Top-grouper,
// deferring Header-linker and Mover to Next (they operate per-Group, not
// per-record). threshold is the Mover's similarity threshold T; pass
// config.Threshold() for the environment-driven default.
func New(src LineSource, threshold float64) *Reader {
	var lineNumber int
	var state classify.State

	nextRecord := func() (diffrecord.Record, bool, error) {
		raw, ok, err := src()
		if err != nil {
			return diffrecord.Record{}, false, fmt.Errorf("pipeline: reading input: %w", err)
		}
		if !ok {
			return diffrecord.Record{}, false, nil
		}

		lineNumber++
		text, err := normalize.Line(raw)
		if err != nil {
			return diffrecord.Record{}, false, fmt.Errorf("pipeline: line %d: %w", lineNumber, err)
		}

		rec := diffrecord.Record{LineNumber: lineNumber, Text: text}
		rec, err = classify.ClassifyRecord(&state, rec)
		if err != nil {
			return diffrecord.Record{}, false, fmt.Errorf("pipeline: line %d: %w", lineNumber, err)
		}
		return rec, true, nil
	}

	return &Reader{threshold: threshold, groups: topgroup.NewReader(nextRecord)}
}

// NewWithDefaultThreshold is a convenience for callers that want T read from
// the environment exactly once, as SPEC_FULL.md §5 requires.
func NewWithDefaultThreshold(src LineSource) *Reader {
	return New(src, config.Threshold())
}

// Next returns the next fully annotated Group, or ok==false at a clean end of
// input.
func (r *Reader) Next() (diffrecord.Group, bool, error) {
	group, ok, err := r.groups.Next()
	if err != nil || !ok {
		return diffrecord.Group{}, false, err
	}

	if group.Type == diffrecord.TopDiff {
		linked := headerlink.Link(group.Items)
		group = mover.Annotate(diffrecord.Group{Type: group.Type, Items: linked}, r.threshold)
	}

	return group, true, nil
}

// Drain reads every remaining Group from r. It is a convenience for small
// inputs and tests; long-running callers should prefer calling Next in a
// loop.
func Drain(r *Reader) ([]diffrecord.Group, error) {
	var groups []diffrecord.Group
	for {
		g, ok, err := r.Next()
		if err != nil {
			return groups, err
		}
		if !ok {
			return groups, nil
		}
		groups = append(groups, g)
	}
}
