// Package stdlib is the standard-function library the engine's registry
// resolves function nodes against (spec.md §6 "Standard-library
// registry"). The engine itself never imports this package — it is wired
// in by whatever process constructs the registry at startup, mirroring
// how the teacher's modules/* packages register themselves against
// internal/registry rather than being imported by the executor.
package stdlib

import "github.com/vk/flowgraph/internal/registry"

// RegisterAll registers every function this package provides. Callers
// that want a smaller surface can register individual groups directly
// (RegisterArith, RegisterStrings, RegisterList, RegisterTime) instead.
func RegisterAll(r *registry.Registry) {
	RegisterArith(r)
	RegisterStrings(r)
	RegisterList(r)
	RegisterTime(r)
}
