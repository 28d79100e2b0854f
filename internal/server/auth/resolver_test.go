package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/dbx"
	"github.com/dborovskis/filevault/internal/server/models"
	filesrepo "github.com/dborovskis/filevault/internal/server/repositories/files"
	usersrepo "github.com/dborovskis/filevault/internal/server/repositories/users"
)

const validUserID = "3f0b8f9e-58a1-4f8e-9d3c-111111111111"

// --- fakes ---

type fakeSessions struct {
	values map[string]string
	err    error
}

func (f *fakeSessions) Get(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[token], nil
}
func (f *fakeSessions) Set(context.Context, string, string, time.Duration) error { return nil }
func (f *fakeSessions) Del(context.Context, string) error                        { return nil }
func (f *fakeSessions) Ping(context.Context) error                               { return nil }

type fakeUsersRepo struct {
	user *models.User
	err  error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, common.ErrNotFound
}
func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}
func (f *fakeUsersRepo) Count(context.Context) (int64, error) { return 0, nil }

type fakeRepoManager struct {
	users usersrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Files(dbx.DBTX) filesrepo.Repository          { return nil }

// --- tests ---

func TestResolve_EmptyTokenIsAbsent(t *testing.T) {
	r := NewResolver(&fakeSessions{}, nil, &fakeRepoManager{users: &fakeUsersRepo{}})

	user, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestResolve_SessionMissIsAbsent(t *testing.T) {
	r := NewResolver(&fakeSessions{values: map[string]string{}}, nil,
		&fakeRepoManager{users: &fakeUsersRepo{user: &models.User{ID: validUserID}}})

	user, err := r.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestResolve_MalformedStoredIdentifierIsAbsent(t *testing.T) {
	r := NewResolver(&fakeSessions{values: map[string]string{"tok": "garbage"}}, nil,
		&fakeRepoManager{users: &fakeUsersRepo{err: errors.New("must not be called")}})

	user, err := r.Resolve(context.Background(), "tok")
	require.NoError(t, err, "malformed identifier is never an error")
	assert.Nil(t, user)
}

func TestResolve_MissingUserRecordIsAbsent(t *testing.T) {
	r := NewResolver(&fakeSessions{values: map[string]string{"tok": validUserID}}, nil,
		&fakeRepoManager{users: &fakeUsersRepo{err: common.ErrNotFound}})

	user, err := r.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestResolve_Success(t *testing.T) {
	want := &models.User{ID: validUserID, Email: "bob@dylan.com"}
	r := NewResolver(&fakeSessions{values: map[string]string{"tok": validUserID}}, nil,
		&fakeRepoManager{users: &fakeUsersRepo{user: want}})

	user, err := r.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, want, user)
}

func TestResolve_StoreFailureIsFatal(t *testing.T) {
	r := NewResolver(&fakeSessions{err: errors.New("redis down")}, nil,
		&fakeRepoManager{users: &fakeUsersRepo{}})

	_, err := r.Resolve(context.Background(), "tok")
	require.Error(t, err)
}
