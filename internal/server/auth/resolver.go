// Package auth resolves opaque bearer tokens into verified user identities
// via the session store and the metadata store.
package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/server/models"
	"github.com/dborovskis/filevault/internal/server/repositories/repomanager"
	"github.com/dborovskis/filevault/internal/server/sessions"
)

type Resolver struct {
	sessions sessions.Store
	db       *sql.DB
	repos    repomanager.RepositoryManager
}

func NewResolver(store sessions.Store, db *sql.DB, repos repomanager.RepositoryManager) *Resolver {
	return &Resolver{sessions: store, db: db, repos: repos}
}

// Resolve returns the identity behind token, or nil when the request is
// unauthenticated. An absent session, a stored value that is not a valid
// identifier, and a missing user record are all indistinguishable: each
// yields (nil, nil). Only store failures produce an error. Resolve never
// refreshes the session TTL.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := r.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	if _, err := uuid.Parse(userID); err != nil {
		// A token pointing at a malformed identifier is treated identically
		// to no session.
		return nil, nil
	}

	user, err := r.repos.Users(r.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
