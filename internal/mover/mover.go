// Package mover implements the pipeline's Mover stage: detecting moved lines
// within one diff Group via pairwise token-edit-distance matching, and
// splicing styled annotation records back into the group. See
// SPEC_FULL.md §4.6.
package mover

import (
	"math"

	"github.com/moveanno/moveanno/internal/diffrecord"
	"github.com/moveanno/moveanno/internal/simplelog"
	"github.com/moveanno/moveanno/internal/tokenize"
)

// Match is one retained candidate pairing a removed line with an added line.
type Match struct {
	Removed      diffrecord.Record
	RemovedIndex int // original index within the group's Items
	Added        diffrecord.Record
	AddedIndex   int
	Distance     int
	SES          []tokenOp // shortest edit script between the two token sequences; carried for downstream consumers, not consulted for filtering
}

type tokenizedEntry struct {
	record diffrecord.Record
	index  int
	tokens []string
}

// Detect runs steps 1-5 of the Mover (partition, tokenize, pairwise match,
// narrow, flatten) over one diff group's items and returns the retained
// matches, in the order described by SPEC_FULL.md §4.6 step 5: grouped by
// removed-item input order, ascending distance within each group.
func Detect(items []diffrecord.Record, threshold float64) []Match {
	var removedEntries, addedEntries []tokenizedEntry

	for i, rec := range items {
		if rec.Info.Diff == nil || rec.Info.Diff.Kind != diffrecord.KindBody {
			continue
		}
		switch rec.Info.Diff.BodySubtype {
		case diffrecord.BodyRemoved, diffrecord.BodyAdded:
		default:
			continue
		}

		payload := payloadOf(rec)
		toks := tokenize.Tokens(payload)
		if len(toks) == 0 {
			continue
		}

		entry := tokenizedEntry{record: rec, index: i, tokens: toks}
		if rec.Info.Diff.BodySubtype == diffrecord.BodyRemoved {
			removedEntries = append(removedEntries, entry)
		} else {
			addedEntries = append(addedEntries, entry)
		}
	}

	if len(removedEntries) == 0 || len(addedEntries) == 0 {
		return nil
	}

	dict := newTokenDict()

	var matches []Match
	for _, r := range removedEntries {
		type candidate struct {
			added    tokenizedEntry
			distance int
			ses      []tokenOp
		}
		var candidates []candidate

		for _, a := range addedEntries {
			maxDistance := int(math.Floor(threshold * float64(maxInt(len(r.tokens), len(a.tokens)))))
			distance, ses := tokenDistance(dict, r.tokens, a.tokens)
			if distance <= maxDistance {
				candidates = append(candidates, candidate{added: a, distance: distance, ses: ses})
			}
		}

		sortByDistance(candidates, func(c candidate) int { return c.distance })

		// Step 4: narrow to the zero-distance prefix, or the first two overall.
		zeroPrefixLen := 0
		for zeroPrefixLen < len(candidates) && candidates[zeroPrefixLen].distance == 0 {
			zeroPrefixLen++
		}

		var narrowed []candidate
		if zeroPrefixLen > 0 {
			narrowed = candidates[:zeroPrefixLen]
		} else if len(candidates) > 0 {
			n := 2
			if n > len(candidates) {
				n = len(candidates)
			}
			narrowed = candidates[:n]
		}

		for _, c := range narrowed {
			matches = append(matches, Match{
				Removed:      r.record,
				RemovedIndex: r.index,
				Added:        c.added.record,
				AddedIndex:   c.added.index,
				Distance:     c.distance,
				SES:          c.ses,
			})
		}

		simplelog.Log("mover: removed@%d candidates=%d retained=%d", r.index, len(candidates), len(narrowed))
	}

	return matches
}

// payloadOf returns the text of rec after its leading diff-prefix byte
// ('-', '+', ' ', or '\\').
func payloadOf(rec diffrecord.Record) string {
	plain := rec.Text.Plain()
	if len(plain) == 0 {
		return ""
	}
	return plain[1:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sortByDistance is a small stable insertion sort; candidate lists per removed
// line are short (bounded by the number of added lines in one diff group).
func sortByDistance[T any](s []T, key func(T) int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && key(s[j-1]) > key(s[j]); j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
