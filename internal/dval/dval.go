// Package dval implements the engine's value domain: the universe of
// runtime values nodes can resolve to (spec.md §3, "Value (DVal)").
//
// Primitive and structured values are carried as cty.Value, reusing the
// type system the rest of the corpus already depends on for HCL-decoded
// runner I/O (see internal/dag/node_runner.go in the teacher repo). Null,
// Incomplete, Opaque, and Block are distinguished explicitly because none
// of them survive a round trip through cty unchanged: Incomplete must stay
// distinguishable from an explicit Null, and Opaque/Block carry Go values
// cty cannot represent.
package dval

import (
	"github.com/vk/flowgraph/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Kind discriminates the variants of DVal.
type Kind int

const (
	// KindNull is the explicit null literal.
	KindNull Kind = iota
	// KindIncomplete marks an unresolved input (spec.md §3, §7).
	KindIncomplete
	// KindCty wraps a primitive or structured cty.Value.
	KindCty
	// KindOpaque wraps a handle to external (datastore) state.
	KindOpaque
	// KindBlock wraps an invocable block closure.
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindIncomplete:
		return "incomplete"
	case KindCty:
		return "value"
	case KindOpaque:
		return "opaque"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// BlockFn is the callable captured by a Block value. It binds args
// position-wise against the block's arg nodes and evaluates the block's
// return node (spec.md §4.5).
type BlockFn func(args []DVal) (DVal, error)

// DVal is a tagged union over the runtime value domain.
type DVal struct {
	kind  Kind
	cty   cty.Value
	table string

	blockID nodeid.ID
	blockFn BlockFn
}

// Null returns the explicit null value.
func Null() DVal { return DVal{kind: KindNull, cty: cty.NullVal(cty.DynamicPseudoType)} }

// Incomplete returns the sentinel for an unbound or unresolved input.
func Incomplete() DVal { return DVal{kind: KindIncomplete} }

// FromCty wraps a primitive or structured cty.Value as a DVal. Passing a
// null cty.Value produces the same result as Null().
func FromCty(v cty.Value) DVal {
	if v.IsNull() {
		return Null()
	}
	return DVal{kind: KindCty, cty: v}
}

// Opaque constructs a handle to external (datastore) state.
func Opaque(table string) DVal {
	return DVal{kind: KindOpaque, table: table}
}

// NewBlock constructs an invocable block closure value.
func NewBlock(id nodeid.ID, fn BlockFn) DVal {
	return DVal{kind: KindBlock, blockID: id, blockFn: fn}
}

// Kind reports the variant of v.
func (v DVal) Kind() Kind { return v.kind }

// IsIncomplete reports whether v is the Incomplete sentinel.
func (v DVal) IsIncomplete() bool { return v.kind == KindIncomplete }

// IsNull reports whether v is the explicit null literal.
func (v DVal) IsNull() bool { return v.kind == KindNull }

// Cty returns the underlying cty.Value. Only valid when Kind() is KindCty
// or KindNull; callers must check Kind first.
func (v DVal) Cty() cty.Value { return v.cty }

// Table returns the datastore table name. Only valid when Kind() is
// KindOpaque.
func (v DVal) Table() string { return v.table }

// BlockID returns the defining block node's id. Only valid when Kind() is
// KindBlock.
func (v DVal) BlockID() nodeid.ID { return v.blockID }

// Call invokes a block closure with the given positional arguments. Only
// valid when Kind() is KindBlock.
func (v DVal) Call(args []DVal) (DVal, error) {
	return v.blockFn(args)
}

// Equal reports structural equality. Block and Opaque values are compared
// by identity of their defining node / table name, never by capturing the
// closure body.
func (v DVal) Equal(other DVal) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindIncomplete:
		return true
	case KindCty:
		return v.cty.RawEquals(other.cty)
	case KindOpaque:
		return v.table == other.table
	case KindBlock:
		return v.blockID.Equal(other.blockID)
	default:
		return false
	}
}
