// Package queue produces background jobs for the external workers. Delivery
// is at-least-once; the producers are fire-and-forget from the caller's
// point of view — enqueue failures are reported but callers are expected to
// log and move on.
package queue

import "context"

// DerivativeJob asks the image worker to render size variants for a file.
type DerivativeJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// WelcomeJob asks the user worker to greet a freshly registered account.
type WelcomeJob struct {
	UserID string `json:"userId"`
}

// Producer enqueues one unit of work onto a named queue.
type Producer interface {
	Enqueue(ctx context.Context, job any) error
}
