// Package topgroup implements the pipeline's Top-grouper stage: collapsing
// consecutive records sharing the same top-level Info.Type into Groups. See
// SPEC_FULL.md §4.3.
package topgroup

import "github.com/moveanno/moveanno/internal/diffrecord"

// Group partitions records into a slice of maximal runs of consecutive
// records sharing the same Info.Type. Each returned Group is non-empty.
func Group(records []diffrecord.Record) []diffrecord.Group {
	if len(records) == 0 {
		return nil
	}

	var groups []diffrecord.Group
	cur := diffrecord.Group{Type: records[0].Info.Type, Items: []diffrecord.Record{records[0]}}

	for _, rec := range records[1:] {
		if rec.Info.Type == cur.Type {
			cur.Items = append(cur.Items, rec)
			continue
		}
		groups = append(groups, cur)
		cur = diffrecord.Group{Type: rec.Info.Type, Items: []diffrecord.Record{rec}}
	}
	groups = append(groups, cur)

	return groups
}

// Reader is a pull-based iterator producing Groups from an underlying record
// source, buffering exactly one lookahead record to detect group boundaries.
type Reader struct {
	next    func() (diffrecord.Record, bool, error)
	pending *diffrecord.Record
	done    bool
}

// NewReader wraps next, a pull-based record source (ok==false signals clean
// end of input), into a Group reader.
func NewReader(next func() (diffrecord.Record, bool, error)) *Reader {
	return &Reader{next: next}
}

// Next returns the next Group, or ok==false at clean end of input.
func (r *Reader) Next() (diffrecord.Group, bool, error) {
	if r.done {
		return diffrecord.Group{}, false, nil
	}

	first := r.pending
	r.pending = nil
	if first == nil {
		rec, ok, err := r.next()
		if err != nil {
			return diffrecord.Group{}, false, err
		}
		if !ok {
			r.done = true
			return diffrecord.Group{}, false, nil
		}
		first = &rec
	}

	g := diffrecord.Group{Type: first.Info.Type, Items: []diffrecord.Record{*first}}

	for {
		rec, ok, err := r.next()
		if err != nil {
			return diffrecord.Group{}, false, err
		}
		if !ok {
			r.done = true
			return g, true, nil
		}
		if rec.Info.Type != g.Type {
			r.pending = &rec
			return g, true, nil
		}
		g.Items = append(g.Items, rec)
	}
}
