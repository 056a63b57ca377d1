// Package node implements the node taxonomy: the five node variants and
// their shared preamble (spec.md §3 "Node", §9 "Polymorphic node
// dispatch"). Each variant hangs its own data off a discriminated Variant
// field so the executor has a single dispatch point (spec.md §9).
package node

import (
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Pos is an opaque 2D layout coordinate, owned entirely by the editor.
// The engine never interprets it.
type Pos struct {
	X float64
	Y float64
}

// Node is one vertex in the dataflow graph. ID, Position, and Cursor are
// the shared preamble (spec.md §3); Variant carries the per-kind data.
type Node struct {
	ID       nodeid.ID
	Position Pos
	Cursor   int
	Variant  Variant
}

// Variant is implemented by each of the five node kinds. Arguments exposes
// the node's argument map — nil for variants that don't carry one, which
// the executor treats as "no arguments to resolve" (spec.md §4.2 step 2).
type Variant interface {
	Kind() Kind
	Arguments() *argmap.ArgMap
}

// Kind discriminates the five node variants.
type Kind int

const (
	KindValue Kind = iota
	KindFunction
	KindDatastore
	KindBlock
	KindArg
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFunction:
		return "function"
	case KindDatastore:
		return "datastore"
	case KindBlock:
		return "block"
	case KindArg:
		return "arg"
	default:
		return "unknown"
	}
}

// ValueVariant holds a literal, pre-parsed at construction time (spec.md
// §3 "Value node", §6 "Value literal parser").
type ValueVariant struct {
	Literal dval.DVal
}

func (ValueVariant) Kind() Kind                { return KindValue }
func (ValueVariant) Arguments() *argmap.ArgMap { return nil }

// FunctionVariant references a standard-library function by name, owns its
// argument map, and owns a per-node memo cache (spec.md §3 "Function
// node", §4.4 "Memoization").
type FunctionVariant struct {
	FunctionName string
	Args         *argmap.ArgMap
	Params       []argmap.Param
	Pure         bool
	Memo         *MemoCache
}

func (v *FunctionVariant) Kind() Kind                { return KindFunction }
func (v *FunctionVariant) Arguments() *argmap.ArgMap { return v.Args }

// NewFunctionVariant builds a function variant with a fresh, empty memo
// cache and an ArgMap whose keys exactly match params (spec.md §3
// invariant, enforced by argmap.New).
func NewFunctionVariant(functionName string, params []argmap.Param, pure bool) *FunctionVariant {
	return &FunctionVariant{
		FunctionName: functionName,
		Args:         argmap.New(params),
		Params:       params,
		Pure:         pure,
		Memo:         NewMemoCache(),
	}
}

// Rebind resets the variant to point at a different registered function,
// clearing the memo cache (spec.md §4.4: "cache is cleared ... when its
// function name changes") and rebuilding the ArgMap for the new parameter
// list.
func (v *FunctionVariant) Rebind(functionName string, params []argmap.Param, pure bool) {
	v.FunctionName = functionName
	v.Params = params
	v.Pure = pure
	v.Args = argmap.New(params)
	v.Memo.Clear()
}

// DatastoreVariant holds a table name and evaluates to an Opaque handle
// (spec.md §3 "Datastore node").
type DatastoreVariant struct {
	Table string
}

func (DatastoreVariant) Kind() Kind                { return KindDatastore }
func (DatastoreVariant) Arguments() *argmap.ArgMap { return nil }

// BlockVariant holds the positional argument nodes of an anonymous
// sub-graph; its body is discovered dynamically (spec.md §3 "Block node").
type BlockVariant struct {
	ArgIDs []nodeid.ID
}

func (BlockVariant) Kind() Kind                { return KindBlock }
func (BlockVariant) Arguments() *argmap.ArgMap { return nil }

// ArgVariant is a placeholder for one positional parameter of an enclosing
// block (spec.md §3 "Arg node"). ArgIDs is the owning block's full
// argument list, carried here so an arg node can locate its siblings
// without a graph lookup back through the block.
type ArgVariant struct {
	BlockID nodeid.ID
	Index   int
	ArgIDs  []nodeid.ID
}

func (ArgVariant) Kind() Kind                { return KindArg }
func (ArgVariant) Arguments() *argmap.ArgMap { return nil }
