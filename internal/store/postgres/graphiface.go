package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vk/flowgraph/internal/graphiface"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// syncEdges writes one graph_edges row per edge-valued argument in n's
// argument map, keeping the denormalized reverse-lookup index consistent
// with graph_nodes.data (spec.md §4.1's invariant that every Edge points
// to a node present in the graph is enforced by the foreign key).
func (s *Store) syncEdges(ctx context.Context, tx pgx.Tx, n *node.Node) error {
	for _, e := range edgesOf(n) {
		_, err := tx.Exec(ctx,
			`INSERT INTO graph_edges (from_id, to_id, param) VALUES ($1,$2,$3)`,
			n.ID.String(), e.Target.String(), e.Param,
		)
		if err != nil {
			return fmt.Errorf("postgres: sync edge %s.%s -> %s: %w", n.ID, e.Param, e.Target, err)
		}
	}
	return nil
}

// GetChildren implements graphiface.Store: every node with an edge
// pointing at id, found via the graph_edges index rather than scanning
// every node's JSON payload.
func (s *Store) GetChildren(ctx context.Context, id nodeid.ID) ([]*node.Node, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT from_id FROM graph_edges WHERE to_id=$1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: get children of %s: %w", id, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var fromID string
		if err := rows.Scan(&fromID); err != nil {
			return nil, fmt.Errorf("postgres: get children of %s: scan: %w", id, err)
		}
		ids = append(ids, fromID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: get children of %s: %w", id, err)
	}

	out := make([]*node.Node, 0, len(ids))
	for _, fromID := range ids {
		n, err := s.GetNode(ctx, nodeid.ID(fromID))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// GetDeepest implements graphiface.Store via the same longest-path
// relaxation through GetChildren as internal/store/memory — correctness
// over a recursive CTE, since block-body resolution is not a hot path
// (spec.md §4.1: "each tagged with its maximum depth from id", §9
// "Deepest-descendant block body"). A node is requeued whenever a longer
// path to it is found; this terminates because the graph is acyclic.
func (s *Store) GetDeepest(ctx context.Context, id nodeid.ID) ([]graphiface.Depth, error) {
	depth := map[nodeid.ID]int{id: 0}
	nodes := map[nodeid.ID]*node.Node{}
	queue := []nodeid.ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children, err := s.GetChildren(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			nd := depth[cur] + 1
			if nd > depth[c.ID] {
				depth[c.ID] = nd
				nodes[c.ID] = c
				queue = append(queue, c.ID)
			}
		}
	}
	delete(depth, id)

	out := make([]graphiface.Depth, 0, len(depth))
	for nid, d := range depth {
		out = append(out, graphiface.Depth{Depth: d, Node: nodes[nid]})
	}
	return out, nil
}

var _ graphiface.Store = (*Store)(nil)
