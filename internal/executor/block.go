package executor

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
	"github.com/vk/flowgraph/internal/scope"
)

// executeBlock does not evaluate the block's interior. It locates the
// block's return node — the shallowest of the deepest descendants of its
// argument nodes (spec.md §4.3 "Block node", §9 "Deepest-descendant block
// body") — and returns a closure over it rather than a value (spec.md
// §4.5). The BlockFn type has no context.Context parameter, so the
// construction-time ctx is captured by the closure; this is the one place
// in the executor where a context outlives a single Execute call.
func (e *Executor) executeBlock(ctx context.Context, n *node.Node, v node.BlockVariant, s scope.Scope) (dval.DVal, error) {
	returnNode, err := e.resolveBlockBody(ctx, v.ArgIDs)
	if err != nil {
		return dval.DVal{}, fmt.Errorf("executor: block %s: %w", n.ID, err)
	}

	argIDs := v.ArgIDs
	outer := s

	closure := func(args []dval.DVal) (dval.DVal, error) {
		if len(args) != len(argIDs) {
			return dval.DVal{}, engineerr.ErrArityMismatch
		}
		bindings := make(map[nodeid.ID]dval.DVal, len(argIDs))
		for i, id := range argIDs {
			bindings[id] = args[i]
		}
		effective := outer.With(bindings)
		return e.Execute(ctx, returnNode, effective)
	}

	return dval.NewBlock(n.ID, closure), nil
}

// resolveBlockBody gathers get_deepest from every arg id, concatenates the
// results, and returns the node at the smallest depth — the block's
// "return node" (spec.md §4.3 step 1).
func (e *Executor) resolveBlockBody(ctx context.Context, argIDs []nodeid.ID) (*node.Node, error) {
	type candidate struct {
		depth int
		node  *node.Node
	}
	var all []candidate
	for _, id := range argIDs {
		deepest, err := e.store.GetDeepest(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving deepest descendants of arg %s: %w", id, err)
		}
		for _, d := range deepest {
			all = append(all, candidate{depth: d.Depth, node: d.Node})
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no reachable body from argument nodes %v", argIDs)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].depth < all[j].depth })
	return all[0].node, nil
}
