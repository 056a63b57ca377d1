// Package scope implements the immutable node-id → value mapping used to
// short-circuit evaluation when a block argument has already been bound
// (spec.md §3 "Scope", §4.2 step 1, §4.5).
package scope

import (
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Scope is an immutable mapping from node id to resolved value. The zero
// value is an empty scope, ready to use.
type Scope struct {
	bindings map[nodeid.ID]dval.DVal
}

// Empty returns a scope with no bindings.
func Empty() Scope {
	return Scope{}
}

// Get returns the value bound to id, if any.
func (s Scope) Get(id nodeid.ID) (dval.DVal, bool) {
	if s.bindings == nil {
		return dval.DVal{}, false
	}
	v, ok := s.bindings[id]
	return v, ok
}

// With returns a new scope formed by left-biased union of inner over s:
// bindings in inner take precedence over identically keyed bindings in s
// (spec.md §4.5 step 3, §8 law 6). s itself is left unmodified.
func (s Scope) With(inner map[nodeid.ID]dval.DVal) Scope {
	merged := make(map[nodeid.ID]dval.DVal, len(s.bindings)+len(inner))
	for k, v := range s.bindings {
		merged[k] = v
	}
	for k, v := range inner {
		merged[k] = v
	}
	return Scope{bindings: merged}
}

// Len reports the number of bindings in the scope.
func (s Scope) Len() int {
	return len(s.bindings)
}
