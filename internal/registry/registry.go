// Package registry implements the standard-library lookup the engine
// consumes to resolve a function node's name to its behavior (spec.md §6
// "Standard-library registry").
package registry

import (
	"fmt"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
)

// PreviewHook samples representative values for a function's parameters
// without requiring full evaluation (spec.md §4.6).
type PreviewHook func(params []dval.DVal, cursor int) []dval.DVal

// Invoke runs a function's body against its resolved arguments.
type Invoke func(args map[string]dval.DVal) (dval.DVal, error)

// FunctionSpec describes one registered standard-library function
// (spec.md §6).
type FunctionSpec struct {
	Name       string
	Parameters []argmap.Param
	Pure       bool
	Fn         Invoke
	Preview    PreviewHook
}

// Registry is the standard-library function lookup table. A zero Registry
// is not usable; construct one with New.
type Registry struct {
	functions map[string]*FunctionSpec
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{functions: make(map[string]*FunctionSpec)}
}

// Register adds spec under spec.Name, overwriting any previous entry of
// the same name — mirroring the teacher registry's "last registration
// wins" module-loading convention.
func (r *Registry) Register(spec *FunctionSpec) {
	r.functions[spec.Name] = spec
}

// Lookup resolves a function name to its spec. Per spec.md §6, a missing
// name is a fatal error at node-construction time, so Lookup returns a Go
// error rather than a boolean — callers that hit this during graph
// construction are expected to treat it as unrecoverable.
func (r *Registry) Lookup(name string) (*FunctionSpec, error) {
	spec, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", name, engineerr.ErrUnknownFunction)
	}
	return spec, nil
}
