package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS graph_nodes (
    id         TEXT PRIMARY KEY,
    dag_id     TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    pos_x      DOUBLE PRECISION NOT NULL DEFAULT 0,
    pos_y      DOUBLE PRECISION NOT NULL DEFAULT 0,
    cursor     INTEGER NOT NULL DEFAULT 0,
    data       JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS graph_edges (
    from_id TEXT NOT NULL REFERENCES graph_nodes(id) ON DELETE CASCADE,
    to_id   TEXT NOT NULL REFERENCES graph_nodes(id) ON DELETE CASCADE,
    param   TEXT NOT NULL,
    PRIMARY KEY (from_id, param)
);

CREATE INDEX IF NOT EXISTS idx_graph_nodes_dag_id ON graph_nodes(dag_id);
CREATE INDEX IF NOT EXISTS idx_graph_edges_to     ON graph_edges(to_id);
`

// CreateSchema creates the graph_nodes and graph_edges tables if absent.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops both tables.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS graph_edges, graph_nodes CASCADE;`)
	return err
}
