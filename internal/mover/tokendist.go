package mover

import "github.com/sergi/go-diff/diffmatchpatch"

// tokenDict maps distinct token strings to distinct runes, the same
// "lines-to-runes" compression dmp.DiffLinesToRunes applies to whole lines,
// applied here to tokens instead: it lets
// diffmatchpatch's rune-sequence diff/Levenshtein machinery operate on token
// sequences as if each token were a single character.
type tokenDict struct {
	index  map[string]rune
	tokens []string
}

func newTokenDict() *tokenDict {
	return &tokenDict{index: map[string]rune{}}
}

func (d *tokenDict) encode(toks []string) []rune {
	out := make([]rune, len(toks))
	for i, t := range toks {
		r, ok := d.index[t]
		if !ok {
			r = rune(len(d.tokens))
			d.index[t] = r
			d.tokens = append(d.tokens, t)
		}
		out[i] = r
	}
	return out
}

// tokenOp is one step of a shortest edit script over token sequences.
type tokenOp struct {
	Op     diffrecordOp
	Tokens []string
}

type diffrecordOp string

const (
	opEqual  diffrecordOp = "equal"
	opInsert diffrecordOp = "insert"
	opDelete diffrecordOp = "delete"
)

// tokenDistance returns the token-edit distance between removed and added
// (treating each token as an atomic unit) and the shortest edit script that
// achieves it, by mapping both sequences through dict and delegating to
// diffmatchpatch's rune-sequence diff and Levenshtein-distance routines.
func tokenDistance(dict *tokenDict, removed, added []string) (distance int, ses []tokenOp) {
	rRunes := dict.encode(removed)
	aRunes := dict.encode(added)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(rRunes, aRunes, false)
	diffs = dmp.DiffCleanupMerge(diffs)
	distance = dmp.DiffLevenshtein(diffs)

	ses = make([]tokenOp, 0, len(diffs))
	for _, d := range diffs {
		toks := make([]string, len([]rune(d.Text)))
		for i, r := range []rune(d.Text) {
			toks[i] = dict.tokens[int(r)]
		}
		var op diffrecordOp
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = opEqual
		case diffmatchpatch.DiffInsert:
			op = opInsert
		case diffmatchpatch.DiffDelete:
			op = opDelete
		}
		ses = append(ses, tokenOp{Op: op, Tokens: toks})
	}

	return distance, ses
}
