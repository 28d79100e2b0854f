// Package models defines server-side data models persisted in the database,
// along with the public projections returned to clients.
package models

import "time"

// User is an account record. PasswordHash is a bcrypt digest; the plaintext
// password is never stored.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the subset of User safe to return to a client.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email}
}
