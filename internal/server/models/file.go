package models

import "time"

// FileKind is the kind of a stored file record.
type FileKind string

const (
	KindFolder    FileKind = "folder"
	KindPlainFile FileKind = "plainFile"
	KindImageFile FileKind = "imageFile"
)

// Valid reports whether k is one of the accepted kinds.
func (k FileKind) Valid() bool {
	switch k {
	case KindFolder, KindPlainFile, KindImageFile:
		return true
	}
	return false
}

// RootParentID marks a file at the top of its owner's hierarchy. It is a
// dedicated sentinel, never a real identifier: real parent identifiers are
// always UUID strings, and the root is stored as NULL. Clients see the root
// rendered as 0.
const RootParentID = ""

// File is a metadata record for an uploaded blob or folder.
//
// Invariants enforced at creation time:
//   - a folder never has a ContentRef;
//   - a non-root ParentID references an existing folder;
//   - OwnerID and ContentRef are immutable, only IsPublic may change.
type File struct {
	ID       string
	OwnerID  string
	Name     string
	Kind     FileKind
	ParentID string // RootParentID when at the top of the hierarchy
	IsPublic bool

	// ContentRef is the internal handle (path or object key) linking the
	// record to its bytes on the content volume. Empty for folders. Never
	// exposed to clients.
	ContentRef string

	// Seq is a store-assigned, monotonically increasing insertion number.
	// Listings order by Seq descending, which gives the deterministic
	// reverse-insertion order stable pagination relies on.
	Seq       int64
	CreatedAt time.Time
}

// PublicFile is the subset of File safe to return to a client. The content
// reference and insertion sequence are withheld. ParentID is rendered as 0
// for the root sentinel and as the parent's identifier otherwise.
type PublicFile struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"userId"`
	Name     string   `json:"name"`
	Kind     FileKind `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID any      `json:"parentId"`
}

// Public returns the client-facing projection of the file. This is the only
// read boundary transform; call sites never strip fields ad hoc.
func (f *File) Public() *PublicFile {
	var parent any = f.ParentID
	if f.ParentID == RootParentID {
		parent = 0
	}
	return &PublicFile{
		ID:       f.ID,
		OwnerID:  f.OwnerID,
		Name:     f.Name,
		Kind:     f.Kind,
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}
