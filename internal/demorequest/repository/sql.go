package repository

import (
	"context"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/jmoiron/sqlx"
)

var _ Repository = (*SQLRepo)(nil)

// SQLRepo stores demo requests in the demo_requests table (sqlite or postgres).
// The schema is owned by the goose migrations in internal/database.
type SQLRepo struct {
	db *sqlx.DB
}

func NewSQLRepo(db *sqlx.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

func (s *SQLRepo) Create(ctx context.Context, r *demorequest.DemoRequest) error {
	id, err := newID()
	if err != nil {
		return storageErr("sql", "create", err)
	}
	rec := r.Clone()
	rec.ID = id
	rec.CreatedAt = stamp(time.Microsecond)
	if _, err := s.db.NamedExecContext(ctx, insertDemoRequestQuery, rec); err != nil {
		return storageErr("sql", "create", err)
	}
	r.ID, r.CreatedAt = rec.ID, rec.CreatedAt
	return nil
}

func (s *SQLRepo) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	out := []*demorequest.DemoRequest{}
	if err := s.db.SelectContext(ctx, &out, listDemoRequestsQuery); err != nil {
		return nil, storageErr("sql", "list", err)
	}
	for _, d := range out {
		d.CreatedAt = d.CreatedAt.UTC()
	}
	return out, nil
}

func (s *SQLRepo) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *SQLRepo) Close() error {
	return s.db.Close()
}

const insertDemoRequestQuery = `
INSERT INTO demo_requests (id, name, email, company, use_case, created_at)
VALUES (:id, :name, :email, :company, :use_case, :created_at)`

const listDemoRequestsQuery = `
SELECT id, name, email, company, use_case, created_at
FROM demo_requests
ORDER BY created_at, id`
