// Package diffrecord defines the data model shared by every pipeline stage:
// Record, its classification Info, Group, and the header/hunk back-reference
// Ref. See SPEC_FULL.md §3.
package diffrecord

import "github.com/moveanno/moveanno/internal/styledstring"

// TopType is the top-level classification used by the Top-grouper.
type TopType string

const (
	TopDiff    TopType = "diff"
	TopNonDiff TopType = "non-diff"
)

// DiffKind is the second-level classification within a diff-typed record.
type DiffKind string

const (
	KindFileHeader DiffKind = "file-header"
	KindBody       DiffKind = "body"
	KindComment    DiffKind = "comment" // synthesized by the Mover
)

// FileHeaderSubtype names the subtype of a file-header record.
type FileHeaderSubtype string

const (
	HeaderGit     FileHeaderSubtype = "git"
	HeaderFrom    FileHeaderSubtype = "from"
	HeaderTo      FileHeaderSubtype = "to"
	HeaderGeneric FileHeaderSubtype = "generic"
)

// BodySubtype names the subtype of a body record.
type BodySubtype string

const (
	BodyCommentBinary BodySubtype = "comment-binary"
	BodyHunkLines     BodySubtype = "hunk-lines"
	BodyAdded         BodySubtype = "added"
	BodyRemoved       BodySubtype = "removed"
	BodyContext       BodySubtype = "context"
	BodyComment       BodySubtype = "comment" // "\ No newline at end of file" marker
)

// CommentSubtype names the subtype of a synthesized comment record.
type CommentSubtype string

// CommentMoved is the only comment subtype currently produced, by the Mover.
const CommentMoved CommentSubtype = "moved"

// DiffInfo is the diff-specific portion of a record's classification.
//
// Which fields are meaningful depends on Kind:
//   - KindFileHeader: FileHeaderSubtype, and FromFile/ToFile per subtype.
//   - KindBody: BodySubtype; FromFile/ToFile populated only for BodyCommentBinary.
//   - KindComment: CommentSubtype.
type DiffInfo struct {
	Kind DiffKind

	FileHeaderSubtype FileHeaderSubtype
	BodySubtype       BodySubtype
	CommentSubtype    CommentSubtype

	FromFile string
	ToFile   string

	// Ref is the back-reference to the enclosing file-header set and hunk,
	// attached by the Header-linker. Populated for body records only.
	Ref *Ref
}

// Info is a record's full classification.
type Info struct {
	Type TopType
	Diff *DiffInfo // nil when Type == TopNonDiff
}

// Record is one line of input, after normalization, enumeration, and
// classification.
type Record struct {
	LineNumber int
	Text       styledstring.String
	Info       Info
}

// FileHeaderSet is the running set of file-header records seen since the last
// file-header run began.
type FileHeaderSet struct {
	Git  *Record
	From *Record
	To   *Record
}

// Ref is the header/hunk back-reference shared by every body record under one
// hunk.
type Ref struct {
	FileHeader FileHeaderSet
	HunkLines  *Record
}

// FromFile returns the enclosing from-file path, preferring the git extended
// header's path (which holds both sides) over a bare "---" header.
func (r *Ref) FromFile() string {
	if r == nil {
		return ""
	}
	if r.FileHeader.Git != nil {
		return r.FileHeader.Git.Info.Diff.FromFile
	}
	if r.FileHeader.From != nil {
		return r.FileHeader.From.Info.Diff.FromFile
	}
	return ""
}

// ToFile returns the enclosing to-file path, preferring the git extended
// header's path over a bare "+++" header.
func (r *Ref) ToFile() string {
	if r == nil {
		return ""
	}
	if r.FileHeader.Git != nil {
		return r.FileHeader.Git.Info.Diff.ToFile
	}
	if r.FileHeader.To != nil {
		return r.FileHeader.To.Info.Diff.ToFile
	}
	return ""
}

// Group is a maximal run of consecutive records sharing the same top-level Type.
type Group struct {
	Type  TopType
	Items []Record
}
