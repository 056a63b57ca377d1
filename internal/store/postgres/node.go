package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// AddNode inserts n under dagID. If n.ID is empty a UUID is generated,
// mirroring the corpus's AddNode convention for auto-assigned ids.
func (s *Store) AddNode(ctx context.Context, dagID string, n *node.Node, name string) (nodeid.ID, error) {
	if n.ID.Empty() {
		n.ID = nodeid.ID(uuid.NewString())
	}

	data, err := encodeNode(n)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("postgres: marshal node %s: %w", n.ID, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("postgres: add node: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO graph_nodes (id, dag_id, name, pos_x, pos_y, cursor, data) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID.String(), dagID, name, n.Position.X, n.Position.Y, n.Cursor, raw,
	)
	if err != nil {
		return "", fmt.Errorf("postgres: insert node %s: %w", n.ID, err)
	}

	if err := s.syncEdges(ctx, tx, n); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("postgres: add node: commit: %w", err)
	}
	return n.ID, nil
}

// UpdateNode overwrites an existing node's data and re-syncs its edges.
func (s *Store) UpdateNode(ctx context.Context, n *node.Node) error {
	data, err := encodeNode(n)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("postgres: marshal node %s: %w", n.ID, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: update node: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`UPDATE graph_nodes SET pos_x=$1, pos_y=$2, cursor=$3, data=$4 WHERE id=$5`,
		n.Position.X, n.Position.Y, n.Cursor, raw, n.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("postgres: update node %s: %w", n.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("postgres: update node %s: %w", n.ID, engineerr.ErrNodeNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM graph_edges WHERE from_id=$1`, n.ID.String()); err != nil {
		return fmt.Errorf("postgres: update node %s: clearing old edges: %w", n.ID, err)
	}
	if err := s.syncEdges(ctx, tx, n); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteNode removes a node; graph_edges rows referencing it cascade.
func (s *Store) DeleteNode(ctx context.Context, id nodeid.ID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM graph_nodes WHERE id=$1`, id.String())
	if err != nil {
		return fmt.Errorf("postgres: delete node %s: %w", id, err)
	}
	return nil
}

// Named pairs a node with its editor-facing label, for layers (httpapi)
// that need the name column alongside the decoded node.
type Named struct {
	Node *node.Node
	Name string
}

// ListNodes returns every node belonging to dagID, together with its name.
func (s *Store) ListNodes(ctx context.Context, dagID string) ([]Named, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, pos_x, pos_y, cursor, data FROM graph_nodes WHERE dag_id=$1`, dagID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list nodes: %w", err)
	}
	defer rows.Close()

	var out []Named
	for rows.Next() {
		var id, name string
		var posX, posY float64
		var cursor int
		var raw []byte
		if err := rows.Scan(&id, &name, &posX, &posY, &cursor, &raw); err != nil {
			return nil, fmt.Errorf("postgres: list nodes: scan: %w", err)
		}
		n, err := decodeNode(nodeid.ID(id), posX, posY, cursor, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, Named{Node: n, Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list nodes: %w", err)
	}
	return out, nil
}

// GetNodeName returns a node's editor-facing label.
func (s *Store) GetNodeName(ctx context.Context, id nodeid.ID) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM graph_nodes WHERE id=$1`, id.String()).Scan(&name)
	if err != nil {
		if isNoRows(err) {
			return "", fmt.Errorf("postgres: %s: %w", id, engineerr.ErrNodeNotFound)
		}
		return "", fmt.Errorf("postgres: get node name %s: %w", id, err)
	}
	return name, nil
}

// GetNode implements graphiface.Store.
func (s *Store) GetNode(ctx context.Context, id nodeid.ID) (*node.Node, error) {
	var posX, posY float64
	var cursor int
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT pos_x, pos_y, cursor, data FROM graph_nodes WHERE id=$1`, id.String(),
	).Scan(&posX, &posY, &cursor, &raw)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("postgres: %s: %w", id, engineerr.ErrNodeNotFound)
		}
		return nil, fmt.Errorf("postgres: get node %s: %w", id, err)
	}
	return decodeNode(id, posX, posY, cursor, raw)
}

func isNoRows(err error) bool {
	return err != nil && err.Error() == "no rows in result set"
}
