package executor

import (
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
)

// executeValue returns the node's pre-parsed literal unchanged (spec.md
// §4.3 "Value node"): args and scope were already resolved by the caller
// but a value node ignores both.
func (e *Executor) executeValue(v node.ValueVariant) dval.DVal {
	return v.Literal
}
