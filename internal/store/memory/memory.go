// Package memory implements graphiface.Store entirely in process memory,
// adapted from the teacher's mutex-guarded map graph (internal/dag/dag.go)
// generalized from a single-purpose dependency DAG to the full node
// taxonomy (spec.md §3). It backs in-process tests such as internal/httpapi's
// (the executor's tests use their own memStore); internal/store/postgres is
// the persistence-backed sibling
// for production use (SPEC_FULL.md "GO EXPANSION — Repository Shape").
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/graphiface"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Store is a concurrency-safe in-memory node store. A request-scoped
// caller must still serialize its own evaluation (SPEC_FULL.md's
// concurrency notes): the mutex here only protects the map itself, not
// a logical graph snapshot across a whole execute/preview call.
type Store struct {
	mu    sync.RWMutex
	nodes map[nodeid.ID]*node.Node
	names map[nodeid.ID]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		nodes: make(map[nodeid.ID]*node.Node),
		names: make(map[nodeid.ID]string),
	}
}

// AddNode inserts or replaces n under its own id, with name as its
// editor-facing label.
func (s *Store) AddNode(ctx context.Context, n *node.Node, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.ID] = n
	s.names[n.ID] = name
	return nil
}

// DeleteNode removes a node. It does not cascade to edges referencing
// it — graph-maintenance callers use Dependents (internal/executor) to
// decide what else to remove first.
func (s *Store) DeleteNode(ctx context.Context, id nodeid.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, id)
	delete(s.names, id)
	return nil
}

// Name returns the editor-facing label for id, if any.
func (s *Store) Name(id nodeid.ID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[id]
}

// ListNodes returns every node currently stored, order unspecified.
func (s *Store) ListNodes(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*node.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// GetNode implements graphiface.Store.
func (s *Store) GetNode(ctx context.Context, id nodeid.ID) (*node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("memory store: %s: %w", id, engineerr.ErrNodeNotFound)
	}
	return n, nil
}

// GetChildren implements graphiface.Store: every node with an edge-valued
// argument pointing at id (spec.md §4.1).
func (s *Store) GetChildren(ctx context.Context, id nodeid.ID) ([]*node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*node.Node
	for _, n := range s.nodes {
		am := n.Variant.Arguments()
		if am == nil {
			continue
		}
		for _, name := range am.Names() {
			arg, _ := am.Get(name)
			if arg.IsEdge() && arg.EdgeID() == id {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

// GetDeepest implements graphiface.Store by relaxing a longest-path
// distance through the children relation, tagging each reached node with
// the maximum hop count over every path from id to it (spec.md §4.1: "each
// tagged with its maximum depth from id"). A node is requeued whenever a
// longer path to it is found, the same relaxation a longest-path search
// over a DAG needs; it terminates because the graph is acyclic.
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
