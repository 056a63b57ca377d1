// Package serialize projects a node plus its most recently observed
// evaluation result into the stable JSON-shaped record the front-end
// consumes (spec.md §4.8, §6 "Front-end JSON projection"). Field names
// are fixed for wire compatibility; this package only ever adds fields
// behind `omitempty`, never renames or removes the ones spec.md names.
package serialize

import (
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// Live is the caller-supplied quadruple describing a node's most recent
// evaluation result (spec.md §4.8: "supplied by the caller — the engine
// does not store it").
type Live struct {
	Value string `json:"value"`
	Type  string `json:"type"`
	JSON  string `json:"json"`
	Exc   string `json:"exc,omitempty"`
}

// ArgRepr is one entry of a node's serialized argument list: either an
// edge to another node or a constant's string representation (spec.md §6:
// "{AEdge: int} or {AConst: string}"). The original wire format ties
// AEdge to an integer node id; this engine's NodeId is opaquely typed
// (spec.md §3), so AEdge here carries the id's string form instead —
// the field NAME is wire-fixed, not the underlying id representation.
type ArgRepr struct {
	AEdge  string `json:"AEdge,omitempty"`
	AConst string `json:"AConst,omitempty"`
}

// ArgEntry pairs a parameter name with its representation, preserving
// spec.md §6's `arguments:[[param, arg_repr]]` shape as a two-element
// array rather than an object. Project emits entries in ArgMap.Names
// order, so the order of entries in the list is not defined.
type ArgEntry [2]any

// Node is the wire record for a single graph node (spec.md §4.8).
type Node struct {
	Name      string     `json:"name"`
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Pos       Pos        `json:"pos"`
	Live      Live       `json:"live"`
	Cursor    int        `json:"cursor"`
	Arguments []ArgEntry `json:"arguments,omitempty"`
	BlockID   string     `json:"block_id,omitempty"`
	ArgIDs    []string   `json:"arg_ids,omitempty"`
}

// Pos mirrors node.Pos for the wire format.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConstRepr renders a constant DVal's string representation for an
// ArgRepr. Callers (the front-end HTTP layer) own the conversion because
// it depends on how they want numbers/strings formatted for editing; see
// internal/httpapi for the concrete implementation used over the wire.
type ConstRepr func(name string) string

// Project projects n into its wire record. name is the node's editor-facing
// label — the engine has no notion of node names, so callers supply it
// (the graph store is the source of truth for it). live is the most
// recently observed evaluation result; pass the zero Live{} for a node
// that has never been evaluated.
func Project(n *node.Node, name string, live Live, constRepr ConstRepr) Node {
	out := Node{
		Name:   name,
		ID:     n.ID.String(),
		Type:   n.Variant.Kind().String(),
		Pos:    Pos{X: n.Position.X, Y: n.Position.Y},
		Live:   live,
		Cursor: n.Cursor,
	}

	if am := n.Variant.Arguments(); am != nil {
		for _, pname := range am.Names() {
			arg, _ := am.Get(pname)
			var repr ArgRepr
			if arg.IsEdge() {
				repr.AEdge = arg.EdgeID().String()
			} else {
				repr.AConst = constRepr(pname)
			}
			out.Arguments = append(out.Arguments, ArgEntry{pname, repr})
		}
	}

	switch v := n.Variant.(type) {
	case node.BlockVariant:
		out.ArgIDs = idsToStrings(v.ArgIDs)
	case node.ArgVariant:
		out.BlockID = v.BlockID.String()
		out.ArgIDs = idsToStrings(v.ArgIDs)
	}

	return out
}

func idsToStrings(ids []nodeid.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
