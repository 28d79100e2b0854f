package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/dbx"
	"github.com/dborovskis/filevault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullableParent maps the root sentinel to SQL NULL. The sentinel is never
// stored as a value, so no real file can ever match it.
func nullableParent(parentID string) sql.NullString {
	if parentID == models.RootParentID {
		return sql.NullString{}
	}
	return sql.NullString{String: parentID, Valid: true}
}

func (r *PostgresRepository) Insert(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (owner_id, name, kind, parent_id, is_public, content_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, seq, created_at
		 `

	contentRef := sql.NullString{String: file.ContentRef, Valid: file.ContentRef != ""}

	err := r.db.QueryRowContext(ctx, query,
		file.OwnerID, file.Name, string(file.Kind), nullableParent(file.ParentID),
		file.IsPublic, contentRef).Scan(&file.ID, &file.Seq, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {

	// A malformed identifier is indistinguishable from an absent record.
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	query :=
		`SELECT id, owner_id, name, kind, parent_id, is_public, content_ref, seq, created_at
		 FROM files
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByOwnerAndParent(ctx context.Context, ownerID, parentID string, limit, offset int) ([]*models.File, error) {

	query :=
		`SELECT id, owner_id, name, kind, parent_id, is_public, content_ref, seq, created_at
		 FROM files
		 WHERE owner_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		 ORDER BY seq DESC
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, nullableParent(parentID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}

	var result []*models.File

	defer rows.Close()
	for rows.Next() {
		item, err := scanFile(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) UpdateVisibility(ctx context.Context, id string, public bool) error {

	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}

	query := `UPDATE files SET is_public = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, public)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.File, error) {
	file, err := scanFile(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

func scanFile(scan func(dest ...any) error) (*models.File, error) {
	var (
		item       models.File
		kind       string
		parentID   sql.NullString
		contentRef sql.NullString
	)

	if err := scan(&item.ID, &item.OwnerID, &item.Name, &kind, &parentID,
		&item.IsPublic, &contentRef, &item.Seq, &item.CreatedAt); err != nil {
		return nil, err
	}

	item.Kind = models.FileKind(kind)
	if parentID.Valid {
		item.ParentID = parentID.String
	} else {
		item.ParentID = models.RootParentID
	}
	if contentRef.Valid {
		item.ContentRef = contentRef.String
	}

	return &item, nil
}
