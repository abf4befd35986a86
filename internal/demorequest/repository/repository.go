package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/google/uuid"
)

// Repository persists demo requests. No update or delete operation exists.
type Repository interface {
	// Create assigns ID and CreatedAt on r and stores it.
	Create(ctx context.Context, r *demorequest.DemoRequest) error
	// List returns every stored record in creation order.
	List(ctx context.Context) ([]*demorequest.DemoRequest, error)
}

// Pinger is implemented by backends that can report connectivity for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageError wraps a failed persistence operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(backend, op string, err error) error {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// newID returns a time-ordered UUIDv7 so lexical order follows creation order.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// stamp returns the current UTC time rounded up to the backend's precision, so the
// value read back is never earlier than the moment of creation.
func stamp(precision time.Duration) time.Time {
	now := time.Now().UTC()
	ts := now.Truncate(precision)
	if ts.Before(now) {
		ts = ts.Add(precision)
	}
	return ts
}
