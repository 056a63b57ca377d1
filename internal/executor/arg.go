package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/node"
)

// executeArg implements spec.md §4.3 "Arg node": reachable only via
// preview or a structurally invalid call, never via normal forward
// evaluation under a correctly constructed scope. It locates the arg
// node's owning block's unique caller, previews that caller at its
// current cursor, and returns the sampled value at the arg node's index.
func (e *Executor) executeArg(ctx context.Context, n *node.Node, v node.ArgVariant) (dval.DVal, error) {
	if v.Index < 0 || v.Index >= len(v.ArgIDs) || v.ArgIDs[v.Index] != n.ID {
		return dval.DVal{}, fmt.Errorf("executor: arg node %s: %w", n.ID, engineerr.ErrBadArgNode)
	}

	callers, err := e.store.GetChildren(ctx, v.BlockID)
	if err != nil {
		return dval.DVal{}, fmt.Errorf("executor: arg node: locating block %s's callers: %w", v.BlockID, err)
	}
	switch len(callers) {
	case 0:
		return dval.DVal{}, fmt.Errorf("executor: arg node: %w", engineerr.ErrNoCaller)
	default:
		if len(callers) > 1 {
			return dval.DVal{}, fmt.Errorf("executor: arg node: %w", engineerr.ErrMultipleCallers)
		}
	}

	caller := callers[0]
	results, err := e.Preview(ctx, caller, caller.Cursor)
	if err != nil {
		return dval.DVal{}, fmt.Errorf("executor: arg node: previewing caller %s: %w", caller.ID, err)
	}

	if v.Index < 0 || v.Index >= len(results) {
		return dval.Incomplete(), nil
	}
	return results[v.Index], nil
}
