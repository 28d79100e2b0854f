// Package sessions adapts the external key-value cache that maps opaque
// bearer tokens to user identifiers.
package sessions

import (
	"context"
	"time"

	"github.com/dborovskis/filevault/internal/common"
)

// Store is the session-store surface used by the resolver and the
// connect/disconnect operations. Tokens are namespaced under "auth_<token>"
// by the implementation; callers pass the bare token.
type Store interface {
	// Get returns the user identifier bound to token, or "" when no session
	// exists. A miss is not an error.
	Get(ctx context.Context, token string) (string, error)

	// Set binds token to userID for ttl.
	Set(ctx context.Context, token, userID string, ttl time.Duration) error

	// Del removes the session for token.
	Del(ctx context.Context, token string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// Key returns the namespaced store key for a session token.
func Key(token string) string {
	return common.SessionKeyPrefix + token
}
