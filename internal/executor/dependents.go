package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Dependents reports the node ids that graph maintenance must walk when
// n is removed (spec.md §4.7). It is read-only, like Execute and Preview,
// but answers a structural question rather than a value one.
func (e *Executor) Dependents(ctx context.Context, n *node.Node) ([]nodeid.ID, error) {
	switch v := n.Variant.(type) {
	case *node.FunctionVariant:
		var out []nodeid.ID
		for _, p := range v.Params {
			if p.TypeTag != argmap.Block {
				continue
			}
			arg, ok := v.Args.Get(p.Name)
			if ok && arg.IsEdge() {
				out = append(out, arg.EdgeID())
			}
		}
		return out, nil

	case node.BlockVariant:
		out := append([]nodeid.ID(nil), v.ArgIDs...)
		children, err := e.store.GetChildren(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("executor: dependents of block %s: %w", n.ID, err)
		}
		for _, c := range children {
			out = append(out, c.ID)
		}
		return out, nil

	case node.ArgVariant:
		return []nodeid.ID{v.BlockID}, nil

	case node.ValueVariant, node.DatastoreVariant:
		return nil, nil

	default:
		return nil, fmt.Errorf("executor: dependents: node %s has unknown variant %T", n.ID, n.Variant)
	}
}
