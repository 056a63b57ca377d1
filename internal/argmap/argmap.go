// Package argmap implements per-node argument binding: the mapping from a
// function or block's parameter names to either constant values or edges
// referencing other nodes (spec.md §3 "Param", "Argument", "ArgMap").
package argmap

import (
	"fmt"

	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/nodeid"
)

// TypeTag identifies the declared type of a parameter. Block is
// distinguished from all other tags because it changes dependency
// tracking: an edge-valued Block parameter is an anonymous sub-graph owned
// by the call site (spec.md §4.7).
type TypeTag string

// Block marks a parameter whose argument is expected to resolve to a
// Block value.
const Block TypeTag = "block"

// Param describes one formal parameter of a function or block.
type Param struct {
	Name    string
	TypeTag TypeTag
}

// Arg is either a literal value or an edge to another node's result.
type Arg struct {
	isEdge bool
	edge   nodeid.ID
	konst  dval.DVal
}

// Const constructs a constant-valued argument.
func Const(v dval.DVal) Arg {
	return Arg{konst: v}
}

// Edge constructs an argument that resolves by evaluating another node.
func Edge(id nodeid.ID) Arg {
	return Arg{isEdge: true, edge: id}
}

// Blank returns the argument used to fill an unset parameter slot: a
// constant Incomplete value.
func Blank() Arg {
	return Const(dval.Incomplete())
}

// IsEdge reports whether the argument is an edge reference.
func (a Arg) IsEdge() bool { return a.isEdge }

// EdgeID returns the referenced node id. Only valid when IsEdge() is true.
func (a Arg) EdgeID() nodeid.ID { return a.edge }

// ConstValue returns the constant value. Only valid when IsEdge() is false.
func (a Arg) ConstValue() dval.DVal { return a.konst }

// ArgMap is a mapping from parameter name to Arg. The key set must exactly
// match the owning node's parameter list (spec.md §3 invariant); New
// enforces this at construction by filling every parameter with a blank
// argument first.
type ArgMap struct {
	entries map[string]Arg
}

// New builds an ArgMap whose keys are exactly the given parameter names,
// each initialized to Blank() (spec.md §3: "Initialization fills every
// parameter with Const(Incomplete)").
func New(params []Param) *ArgMap {
	m := &ArgMap{entries: make(map[string]Arg, len(params))}
	for _, p := range params {
		m.entries[p.Name] = Blank()
	}
	return m
}

// Set assigns arg to the named parameter. It returns an error if name is
// not a declared parameter, preserving the completeness invariant.
func (m *ArgMap) Set(name string, arg Arg) error {
	if _, ok := m.entries[name]; !ok {
		return fmt.Errorf("argmap: %q is not a declared parameter: %w", name, engineerr.ErrArgMapIncomplete)
	}
	m.entries[name] = arg
	return nil
}

// Get returns the argument bound to name.
func (m *ArgMap) Get(name string) (Arg, bool) {
	a, ok := m.entries[name]
	return a, ok
}

// Names returns the parameter names in the map, order unspecified.
func (m *ArgMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for n := range m.entries {
		names = append(names, n)
	}
	return names
}

// Len reports the number of parameters.
func (m *ArgMap) Len() int { return len(m.entries) }

// MatchesParams reports whether the map's key set is exactly the set of
// names in params — the completeness invariant from spec.md §3, exposed so
// callers can assert it as a precondition (spec.md §8 law 7).
func (m *ArgMap) MatchesParams(params []Param) bool {
	if len(params) != len(m.entries) {
		return false
	}
	for _, p := range params {
		if _, ok := m.entries[p.Name]; !ok {
			return false
		}
	}
	return true
}

// Range calls f for every (name, arg) pair. Iteration order is
// unspecified, matching spec.md §3: "Insertion-order-irrelevant mapping".
func (m *ArgMap) Range(f func(name string, arg Arg)) {
	for name, arg := range m.entries {
		f(name, arg)
	}
}
