// Package executor implements the recursive demand-driven evaluator
// (spec.md §4.2 "Executor"): it resolves a node to a DVal, consulting
// scope, threading per-argument evaluation, and dispatching to
// variant-specific execute logic (spec.md §4.3). Preview (spec.md §4.6)
// lives alongside it in this package rather than a separate one: an Arg
// node's execute semantics require invoking preview on its block's unique
// caller, and splitting the two packages apart would only manufacture an
// import cycle between them.
package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/ctxlog"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/graphiface"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/vk/flowgraph/internal/scope"
)

// Executor evaluates nodes against a graph store and a standard-library
// registry. A zero Executor is not usable; construct one with New.
type Executor struct {
	store graphiface.Store
	reg   *registry.Registry
}

// New builds an Executor over the given graph store and function registry.
func New(store graphiface.Store, reg *registry.Registry) *Executor {
	return &Executor{store: store, reg: reg}
}

// Execute resolves n to a value (spec.md §4.2). It is the engine's single
// recursive entry point; cycle detection is the graph layer's
// responsibility, not the executor's.
func (e *Executor) Execute(ctx context.Context, n *node.Node, s scope.Scope) (dval.DVal, error) {
	if v, ok := s.Get(n.ID); ok {
		return v, nil
	}

	args, err := e.resolveArgs(ctx, n, s)
	if err != nil {
		return dval.DVal{}, err
	}

	switch variant := n.Variant.(type) {
	case node.ValueVariant:
		return e.executeValue(variant), nil
	case node.DatastoreVariant:
		return e.executeDatastore(variant), nil
	case *node.FunctionVariant:
		return e.executeFunction(ctx, variant, args)
	case node.BlockVariant:
		return e.executeBlock(ctx, n, variant, s)
	case node.ArgVariant:
		return e.executeArg(ctx, n, variant)
	default:
		return dval.DVal{}, fmt.Errorf("executor: node %s has unknown variant %T", n.ID, n.Variant)
	}
}

// resolveArgs resolves every (name, arg) pair in n's argument map under s
// (spec.md §4.2 step 2). Variants with no argument map (Value, Datastore,
// Block, Arg) resolve to an empty map.
func (e *Executor) resolveArgs(ctx context.Context, n *node.Node, s scope.Scope) (map[string]dval.DVal, error) {
	am := n.Variant.Arguments()
	if am == nil {
		return nil, nil
	}

	out := make(map[string]dval.DVal, am.Len())
	for _, name := range am.Names() {
		arg, _ := am.Get(name)
		if !arg.IsEdge() {
			out[name] = arg.ConstValue()
			continue
		}
		child, err := e.store.GetNode(ctx, arg.EdgeID())
		if err != nil {
			return nil, fmt.Errorf("executor: resolving argument %q of node %s: %w", name, n.ID, err)
		}
		v, err := e.Execute(ctx, child, s)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}

	ctxlog.FromContext(ctx).Debug("resolved node arguments", "node", n.ID.String(), "count", len(out))
	return out, nil
}
