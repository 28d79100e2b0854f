package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/logging"
	"github.com/dborovskis/filevault/internal/server/models"
	"github.com/dborovskis/filevault/internal/server/queue"
	"github.com/dborovskis/filevault/internal/server/repositories/repomanager"
	"github.com/dborovskis/filevault/internal/server/sessions"
)

// sessionTokenBytes is the entropy of a minted session token; the hex token
// is twice as long.
const sessionTokenBytes = 16

// UserService handles accounts and sessions: registration, login (minting
// opaque tokens into the session store), logout, and counters.
type UserService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	sessions   sessions.Store
	jobs       queue.Producer
	logger     logging.Logger
	sessionTTL time.Duration
}

func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, store sessions.Store,
	jobs queue.Producer, logger logging.Logger, sessionTTL time.Duration) *UserService {
	return &UserService{
		db:         db,
		repos:      repos,
		sessions:   store,
		jobs:       jobs,
		logger:     logger.With("component", "users"),
		sessionTTL: sessionTTL,
	}
}

// Register creates an account. The password is stored only as a bcrypt
// digest. A welcome job is enqueued best-effort after the record commits.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.PublicUser, error) {
	if email == "" {
		return nil, common.ErrMissingEmail
	}
	if password == "" {
		return nil, common.ErrMissingPassword
	}

	repo := s.repos.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Enqueue(ctx, queue.WelcomeJob{UserID: user.ID}); err != nil {
		s.logger.Error(ctx, "welcome enqueue failed", "userId", user.ID, "error", err.Error())
	}

	return user.Public(), nil
}

// Connect verifies credentials and mints an opaque session token bound to
// the user for the configured TTL.
func (s *UserService) Connect(ctx context.Context, email, password string) (string, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthenticated
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrUnauthenticated
	}

	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", common.ErrInternal
	}

	if err := s.sessions.Set(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", err
	}

	return token, nil
}

// Disconnect invalidates the session behind token. An unknown token is
// Unauthenticated.
func (s *UserService) Disconnect(ctx context.Context, token string) error {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return common.ErrUnauthenticated
	}

	return s.sessions.Del(ctx, token)
}

// CountUsers reports the total number of accounts.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repos.Users(s.db).Count(ctx)
}
