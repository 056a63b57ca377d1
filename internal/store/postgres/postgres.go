// Package postgres implements graphiface.Store on top of PostgreSQL via
// pgx/v5, adapted from the corpus's DAG persistence layer (grounded on
// postgres.go/schema.go/node.go in the meikuraledutech dag-store example:
// a pgxpool-backed store with a nodes table and a denormalized edges
// index for fast reverse lookups). Where that example persisted opaque
// JSON node payloads for an arbitrary DAG, this package persists the
// engine's five concrete node variants (spec.md §3).
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements graphiface.Store and the CRUD the surrounding editor
// needs to mutate the graph (add/update/delete node).
type Store struct {
	db *pgxpool.Pool
}

// New wraps an existing pgx connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}
