// Package policy is the access-control decision point: pure predicates over
// an optional identity and a file record, no I/O.
//
// Callers must surface a denial exactly like a missing record (NotFound) so
// unauthorized callers cannot probe for the existence of private files.
package policy

import "github.com/dborovskis/filevault/internal/server/models"

// CanRead reports whether identity (nil when unauthenticated) may read the
// file's metadata or content.
func CanRead(identity *models.User, file *models.File) bool {
	if file.IsPublic {
		return true
	}
	return identity != nil && identity.ID == file.OwnerID
}

// CanMutate reports whether identity may change the file. Only the owner
// may, and only while authenticated.
func CanMutate(identity *models.User, file *models.File) bool {
	return identity != nil && identity.ID == file.OwnerID
}
