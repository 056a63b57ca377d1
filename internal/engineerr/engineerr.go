// Package engineerr defines the sentinel errors the engine returns for
// invariant violations (spec.md §7: "fatal" errors that abort evaluation).
package engineerr

import "errors"

var (
	// ErrNodeNotFound means a referenced node id is absent from the graph —
	// an internal invariant violation (spec.md §4.1 get_node).
	ErrNodeNotFound = errors.New("engine: node not found")

	// ErrUnknownFunction means a function node names a registry entry that
	// does not exist (spec.md §6: "Missing names are a fatal error").
	ErrUnknownFunction = errors.New("engine: unknown function")

	// ErrArityMismatch means a block closure was invoked with a different
	// number of arguments than it has arg nodes (spec.md §4.5 step 1).
	ErrArityMismatch = errors.New("engine: block closure arity mismatch")

	// ErrMultipleCallers means an arg node's owning block has more than one
	// caller, which makes preview of that arg node ambiguous (spec.md §4.3).
	ErrMultipleCallers = errors.New("engine: arg node's block has multiple callers")

	// ErrNoCaller means an arg node's owning block has no caller to preview.
	ErrNoCaller = errors.New("engine: arg node's block has no caller")

	// ErrNotPreviewable means preview was requested on a node variant other
	// than Function (spec.md §4.6: "Other variants: not supported").
	ErrNotPreviewable = errors.New("engine: node variant does not support preview")

	// ErrArgMapIncomplete means a node's ArgMap keys don't match its
	// parameter list (spec.md §3 invariant, §8 law 7).
	ErrArgMapIncomplete = errors.New("engine: argument map does not match parameter list")

	// ErrBadArgNode means an arg node's block_id/index do not correspond to
	// an existing block node that lists it at that position (spec.md §3
	// invariant).
	ErrBadArgNode = errors.New("engine: arg node does not match its owning block")
)
