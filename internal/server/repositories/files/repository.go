package files

import (
	"context"

	"github.com/dborovskis/filevault/internal/server/models"
)

// Repository is the metadata-store surface for file records. The query
// shapes are deliberately narrow: find-by-id, find-by-owner-and-parent with
// order/limit/offset, insert, and a visibility update. Nothing else touches
// the files table.
type Repository interface {
	Insert(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	ListByOwnerAndParent(ctx context.Context, ownerID, parentID string, limit, offset int) ([]*models.File, error)
	UpdateVisibility(ctx context.Context, id string, public bool) error
	Count(ctx context.Context) (int64, error)
}
