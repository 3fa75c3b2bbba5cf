// Package classify implements the pipeline's Classifier stage: attaching an
// Info tag to each enumerated record by applying an ordered set of regular
// expressions to a stateful scan of the color-stripped text. See
// SPEC_FULL.md §4.2.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moveanno/moveanno/internal/diffrecord"
)

var (
	reGitHeader = regexp.MustCompile(`^diff --git (a/.+?) (b/.+?)$`)
	reFromTo    = regexp.MustCompile(`^[-+]{3} `)
	reFrom      = regexp.MustCompile(`^--- (\S+)(\t.*)?$`)
	reTo        = regexp.MustCompile(`^\+\+\+ (\S+)(\t.*)?$`)
	reBinary    = regexp.MustCompile(`^Binary files (\S*) and (\S*)`)
)

// ErrUnreachable is returned, wrapped with the offending line's text, when a
// line inside a diff body has an unrecognized first character.
var ErrUnreachable = fmt.Errorf("classify: unreachable line inside diff body")

// State carries the two state bits the Classifier scan maintains across
// records within a single pass: diffStart ("we are inside a diff block") and
// inHeader ("we are still in its header region").
type State struct {
	diffStart bool
	inHeader  bool
}

// Classify attaches Info to a record for text, given and updating state. It
// returns an error (wrapping ErrUnreachable) only for an unrecognized
// diff-body line, per SPEC_FULL.md §4.2 rule 3.
func (st *State) Classify(text string) (diffrecord.Info, error) {
	// Rule 1.
	if m := reGitHeader.FindStringSubmatch(text); m != nil {
		st.diffStart = true
		st.inHeader = true
		return diffrecord.Info{
			Type: diffrecord.TopDiff,
			Diff: &diffrecord.DiffInfo{
				Kind:              diffrecord.KindFileHeader,
				FileHeaderSubtype: diffrecord.HeaderGit,
				FromFile:          m[1],
				ToFile:            m[2],
			},
		}, nil
	}

	// Rule 2.
	if st.inHeader || reFromTo.MatchString(text) {
		st.diffStart = true
		st.inHeader = true

		if m := reFrom.FindStringSubmatch(text); m != nil {
			return diffrecord.Info{
				Type: diffrecord.TopDiff,
				Diff: &diffrecord.DiffInfo{
					Kind:              diffrecord.KindFileHeader,
					FileHeaderSubtype: diffrecord.HeaderFrom,
					FromFile:          m[1],
				},
			}, nil
		}
		if m := reTo.FindStringSubmatch(text); m != nil {
			st.inHeader = false
			return diffrecord.Info{
				Type: diffrecord.TopDiff,
				Diff: &diffrecord.DiffInfo{
					Kind:              diffrecord.KindFileHeader,
					FileHeaderSubtype: diffrecord.HeaderTo,
					ToFile:            m[1],
				},
			}, nil
		}
		if m := reBinary.FindStringSubmatch(text); m != nil {
			st.inHeader = false
			return diffrecord.Info{
				Type: diffrecord.TopDiff,
				Diff: &diffrecord.DiffInfo{
					Kind:        diffrecord.KindBody,
					BodySubtype: diffrecord.BodyCommentBinary,
					FromFile:    m[1],
					ToFile:      m[2],
				},
			}, nil
		}
		return diffrecord.Info{
			Type: diffrecord.TopDiff,
			Diff: &diffrecord.DiffInfo{
				Kind:              diffrecord.KindFileHeader,
				FileHeaderSubtype: diffrecord.HeaderGeneric,
			},
		}, nil
	}

	// Rule 3.
	if st.diffStart && !st.inHeader && text != "" {
		switch {
		case strings.HasPrefix(text, "@@"):
			return diffrecord.Info{Type: diffrecord.TopDiff, Diff: &diffrecord.DiffInfo{Kind: diffrecord.KindBody, BodySubtype: diffrecord.BodyHunkLines}}, nil
		case text[0] == '-':
			return diffrecord.Info{Type: diffrecord.TopDiff, Diff: &diffrecord.DiffInfo{Kind: diffrecord.KindBody, BodySubtype: diffrecord.BodyRemoved}}, nil
		case text[0] == '+':
			return diffrecord.Info{Type: diffrecord.TopDiff, Diff: &diffrecord.DiffInfo{Kind: diffrecord.KindBody, BodySubtype: diffrecord.BodyAdded}}, nil
		case text[0] == ' ':
			return diffrecord.Info{Type: diffrecord.TopDiff, Diff: &diffrecord.DiffInfo{Kind: diffrecord.KindBody, BodySubtype: diffrecord.BodyContext}}, nil
		case text[0] == '\\':
			return diffrecord.Info{Type: diffrecord.TopDiff, Diff: &diffrecord.DiffInfo{Kind: diffrecord.KindBody, BodySubtype: diffrecord.BodyComment}}, nil
		default:
			return diffrecord.Info{}, fmt.Errorf("%w: %q", ErrUnreachable, text)
		}
	}

	// Rule 4.
	st.diffStart = false
	return diffrecord.Info{Type: diffrecord.TopNonDiff}, nil
}

// ClassifyRecord classifies rec.Text (color-stripped via Plain) and returns a
// copy of rec with Info attached.
func ClassifyRecord(st *State, rec diffrecord.Record) (diffrecord.Record, error) {
	info, err := st.Classify(rec.Text.Plain())
	if err != nil {
		return diffrecord.Record{}, err
	}
	rec.Info = info
	return rec, nil
}
