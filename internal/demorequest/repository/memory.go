package repository

import (
	"context"
	"sync"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
)

// MemoryRepo is an in-process repository used for development and tests.
// Records are kept in insertion order; callers only ever see copies.
type MemoryRepo struct {
	mu    sync.RWMutex
	store []*demorequest.DemoRequest
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Create(ctx context.Context, r *demorequest.DemoRequest) error {
	id, err := newID()
	if err != nil {
		return storageErr("memory", "create", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = id
	r.CreatedAt = time.Now().UTC()
	m.store = append(m.store, r.Clone())
	return nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*demorequest.DemoRequest, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }
