// Package graphiface defines the read-only capabilities the executor
// requires from the surrounding graph store (spec.md §4.1 "Graph Access
// Interface"). The executor never mutates the graph; concrete
// implementations (internal/store/memory, internal/store/postgres) own
// node lifetime and persistence, which are out of the engine's scope
// (spec.md §1).
package graphiface

import (
	"context"

	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Depth pairs a node with its maximum distance (in outgoing-edge hops)
// from the root of a GetDeepest traversal.
type Depth struct {
	Depth int
	Node  *node.Node
}

// Store is the read-side graph contract consumed by the executor and
// preview traversal.
type Store interface {
	// GetNode looks up a node by id. A missing id is an internal invariant
	// violation (spec.md §4.1): implementations return engineerr.ErrNodeNotFound.
	GetNode(ctx context.Context, id nodeid.ID) (*node.Node, error)

	// GetChildren returns the nodes that have an edge pointing to id —
	// i.e. nodes that depend on id's result (spec.md §4.1).
	GetChildren(ctx context.Context, id nodeid.ID) ([]*node.Node, error)

	// GetDeepest returns every node reachable by walking outgoing edges
	// exhaustively from id, each tagged with its maximum depth from id.
	// Used exclusively by block evaluation to locate a block's return node
	// (spec.md §4.1, §4.3).
	GetDeepest(ctx context.Context, id nodeid.ID) ([]Depth, error)
}
