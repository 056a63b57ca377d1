package executor

import (
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
)

// executeDatastore returns an Opaque handle to the node's named table
// (spec.md §4.3 "Datastore node"). The handle carries no connection state;
// opening it is the standard library's responsibility, not the engine's
// (spec.md §1 "Out of scope").
func (e *Executor) executeDatastore(v node.DatastoreVariant) dval.DVal {
	return dval.Opaque(v.Table)
}
