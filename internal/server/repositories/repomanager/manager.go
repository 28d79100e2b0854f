package repomanager

import (
	"context"
	"database/sql"

	"github.com/dborovskis/filevault/internal/dbx"
	"github.com/dborovskis/filevault/internal/server/repositories/files"
	"github.com/dborovskis/filevault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}
