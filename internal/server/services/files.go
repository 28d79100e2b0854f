// Package services contains the business logic: the upload pipeline, the
// hierarchy listing, visibility handling, and account operations. Transport
// stays out of this package; everything speaks models and sentinel errors.
package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"mime"
	"path/filepath"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/logging"
	"github.com/dborovskis/filevault/internal/server/models"
	"github.com/dborovskis/filevault/internal/server/policy"
	"github.com/dborovskis/filevault/internal/server/queue"
	"github.com/dborovskis/filevault/internal/server/repositories/repomanager"
	"github.com/dborovskis/filevault/internal/server/storage"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 20

// DefaultMimeType is served when the stored name has no known extension.
const DefaultMimeType = "application/octet-stream"

// FileService orchestrates all file operations over the metadata store, the
// content volume, and the derivative queue.
type FileService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	volume storage.Volume
	jobs   queue.Producer
	logger logging.Logger
}

func NewFileService(db *sql.DB, repos repomanager.RepositoryManager, volume storage.Volume,
	jobs queue.Producer, logger logging.Logger) *FileService {
	return &FileService{
		db:     db,
		repos:  repos,
		volume: volume,
		jobs:   jobs,
		logger: logger.With("component", "files"),
	}
}

// UploadRequest carries the raw inputs of an upload; Upload performs all
// validation. Data is the base64 transport encoding of the content, empty
// for folders.
type UploadRequest struct {
	Name     string
	Kind     models.FileKind
	ParentID string // models.RootParentID for a top-level file
	IsPublic bool
	Data     string
}

// Upload runs the strictly ordered pipeline: identity check, field
// validation, parent validation, content commit, metadata commit, and
// derivative enqueue for images. No step is retried; a content-write
// failure aborts before any metadata exists, so a record can never
// reference unwritten bytes. The derivative enqueue runs only after the
// metadata commit and its failure is logged, never surfaced.
func (s *FileService) Upload(ctx context.Context, identity *models.User, req *UploadRequest) (*models.PublicFile, error) {

	if identity == nil {
		return nil, common.ErrUnauthenticated
	}

	if req.Name == "" {
		return nil, common.ErrMissingName
	}
	if !req.Kind.Valid() {
		return nil, common.ErrMissingType
	}
	if req.Kind != models.KindFolder && req.Data == "" {
		return nil, common.ErrMissingData
	}

	if req.ParentID != models.RootParentID {
		parent, err := s.repos.Files(s.db).GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, err
		}
		if parent.Kind != models.KindFolder {
			return nil, common.ErrParentNotFolder
		}
	}

	var contentRef string
	if req.Kind != models.KindFolder {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, common.ErrMissingData
		}

		contentRef, err = s.volume.Save(ctx, data)
		if err != nil {
			return nil, err
		}
	}

	file := &models.File{
		OwnerID:    identity.ID,
		Name:       req.Name,
		Kind:       req.Kind,
		ParentID:   req.ParentID,
		IsPublic:   req.IsPublic,
		ContentRef: contentRef,
	}

	file, err := s.repos.Files(s.db).Insert(ctx, file)
	if err != nil {
		return nil, err
	}

	if req.Kind == models.KindImageFile {
		job := queue.DerivativeJob{FileID: file.ID, UserID: file.OwnerID}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			// Best-effort: the upload is already durably committed.
			s.logger.Error(ctx, "derivative enqueue failed", "fileId", file.ID, "error", err.Error())
		}
	}

	return file.Public(), nil
}

// GetMetadata returns the public projection of a file. An absent identity is
// tolerated; a missing record and a policy denial are both NotFound.
func (s *FileService) GetMetadata(ctx context.Context, identity *models.User, fileID string) (*models.PublicFile, error) {
	file, err := s.repos.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !policy.CanRead(identity, file) {
		return nil, common.ErrNotFound
	}

	return file.Public(), nil
}

// ListChildren returns one page of ownerID's files under parentID, most
// recently created first. A nonexistent or non-folder parent yields an
// empty page, never an error. Pages are fixed at PageSize; negative pages
// are normalized to 0.
//
// This is plain offset pagination: concurrent inserts can shift entries
// between pages. Known limitation, not corrected.
func (s *FileService) ListChildren(ctx context.Context, ownerID, parentID string, page int) ([]*models.PublicFile, error) {
	if page < 0 {
		page = 0
	}

	if parentID != models.RootParentID {
		parent, err := s.repos.Files(s.db).GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return []*models.PublicFile{}, nil
			}
			return nil, err
		}
		if parent.OwnerID != ownerID || parent.Kind != models.KindFolder {
			return []*models.PublicFile{}, nil
		}
	}

	items, err := s.repos.Files(s.db).ListByOwnerAndParent(ctx, ownerID, parentID, PageSize, page*PageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*models.PublicFile, 0, len(items))
	for _, f := range items {
		result = append(result, f.Public())
	}

	return result, nil
}

// SetVisibility publishes or unpublishes a file. Only the owner may; a
// missing record and a denial are both NotFound. The full updated record is
// returned (public projection). Last writer wins; there is no concurrency
// token.
func (s *FileService) SetVisibility(ctx context.Context, identity *models.User, fileID string, public bool) (*models.PublicFile, error) {
	repo := s.repos.Files(s.db)

	file, err := repo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutate(identity, file) {
		return nil, common.ErrNotFound
	}

	if err := repo.UpdateVisibility(ctx, fileID, public); err != nil {
		return nil, err
	}

	file.IsPublic = public
	return file.Public(), nil
}

// GetContent returns a file's bytes and MIME type. The same read predicate
// as GetMetadata applies, with anonymous callers allowed onto public files.
// Folders have no content. When sizeVariant is non-empty the bytes come
// from the size-suffixed sibling; a missing variant is NotFound, never
// synthesized.
func (s *FileService) GetContent(ctx context.Context, identity *models.User, fileID, sizeVariant string) ([]byte, string, error) {
	file, err := s.repos.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	if !policy.CanRead(identity, file) {
		return nil, "", common.ErrNotFound
	}

	if file.Kind == models.KindFolder {
		return nil, "", common.ErrFolderHasNoContent
	}

	if file.ContentRef == "" {
		return nil, "", common.ErrNotFound
	}

	data, err := s.volume.Load(ctx, file.ContentRef, sizeVariant)
	if err != nil {
		return nil, "", err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	return data, mimeType, nil
}

// CountFiles reports the total number of file records.
func (s *FileService) CountFiles(ctx context.Context) (int64, error) {
	return s.repos.Files(s.db).Count(ctx)
}
