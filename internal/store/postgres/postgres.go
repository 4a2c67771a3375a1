// Package postgres implements store.Store on PostgreSQL via pgx.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskpipe/taskpipe/internal/store"
)

// PGStore implements store.Store backed by a pgx connection pool.
type PGStore struct {
	db *pgxpool.Pool
}

var _ store.Store = (*PGStore)(nil)

// New creates a PGStore over the given pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
