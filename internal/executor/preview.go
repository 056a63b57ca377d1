package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/scope"
)

// Preview resolves n's arguments under empty scope exactly as Execute
// would, then samples representative per-parameter values without
// triggering a full evaluation (spec.md §4.6). Only function nodes are
// previewable; every other variant is a fatal error, matching spec.md
// §7 ("preview requested on a non-previewable variant").
func (e *Executor) Preview(ctx context.Context, n *node.Node, cursor int) ([]dval.DVal, error) {
	fv, ok := n.Variant.(*node.FunctionVariant)
	if !ok {
		return nil, fmt.Errorf("executor: preview: node %s: %w", n.ID, engineerr.ErrNotPreviewable)
	}

	args, err := e.resolveArgs(ctx, n, scope.Empty())
	if err != nil {
		return nil, err
	}

	spec, err := e.reg.Lookup(fv.FunctionName)
	if err != nil {
		return nil, fmt.Errorf("executor: preview: %w", err)
	}

	if spec.Preview == nil {
		out := make([]dval.DVal, len(fv.Params))
		for i := range out {
			out[i] = dval.Incomplete()
		}
		return out, nil
	}

	ordered := make([]dval.DVal, len(fv.Params))
	for i, p := range fv.Params {
		ordered[i] = args[p.Name]
	}
	return spec.Preview(ordered, cursor), nil
}
