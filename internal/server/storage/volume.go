// Package storage implements the content volume: the place uploaded bytes
// live, addressed by generated references. Metadata never commits before
// the volume write succeeds.
package storage

import "context"

// Volume stores immutable blobs under generated references. References are
// internal handles; they are recorded on file records but never exposed to
// clients. Size variants produced by the image worker live at
// "<ref>_<size>".
type Volume interface {
	// Save durably writes data under a fresh, collision-free reference and
	// returns that reference. Existing content is never overwritten.
	Save(ctx context.Context, data []byte) (string, error)

	// Load reads the blob at ref, or its size variant when sizeVariant is
	// non-empty. A missing blob (including a missing variant) yields
	// common.ErrNotFound.
	Load(ctx context.Context, ref, sizeVariant string) ([]byte, error)
}

func variantRef(ref, sizeVariant string) string {
	if sizeVariant == "" {
		return ref
	}
	return ref + "_" + sizeVariant
}
