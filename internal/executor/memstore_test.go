package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/graphiface"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// memStore is a minimal in-memory graphiface.Store used only by this
// package's tests — a stand-in for internal/store/memory, which layers
// locking, mutation and node names on top of the same traversal logic.
type memStore struct {
	nodes map[nodeid.ID]*node.Node
}

func newMemStore() *memStore {
	return &memStore{nodes: make(map[nodeid.ID]*node.Node)}
}

func (s *memStore) add(n *node.Node) { s.nodes[n.ID] = n }

func (s *memStore) GetNode(_ context.Context, id nodeid.ID) (*node.Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("memstore: %s: %w", id, engineerr.ErrNodeNotFound)
	}
	return n, nil
}

// GetChildren returns every node with an edge-valued argument pointing at
// id, matching spec.md §4.1.
func (s *memStore) GetChildren(_ context.Context, id nodeid.ID) ([]*node.Node, error) {
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

// GetDeepest relaxes a longest-path distance outward from id through the
// children relation, tagging each reached node with its maximum hop count
// over every path from id (spec.md §4.1: "each tagged with its maximum
// depth from id") — the "outgoing edge" direction spec.md §4.1 describes
// from the perspective of a block's argument nodes discovering their body.
func (s *memStore) GetDeepest(ctx context.Context, id nodeid.ID) ([]graphiface.Depth, error) {
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
