// Package nodeid defines the opaque identifier used to address nodes in the
// dataflow graph.
package nodeid

// ID is an opaque, comparable key identifying one node in the graph.
// Two IDs are equal iff they were derived from the same underlying string,
// which makes ID safe to use directly as a map key (for Scope and the
// graph's own node index) without a separate hashing step.
type ID string

// String returns the canonical textual form of the id.
func (id ID) String() string {
	return string(id)
}

// Equal reports whether two ids refer to the same node.
func (id ID) Equal(other ID) bool {
	return id == other
}

// Empty reports whether id is the zero value, used by callers to detect an
// unset NodeId before it reaches the graph store.
func (id ID) Empty() bool {
	return id == ""
}
