package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
)

// nodeData is the JSON shape stored in graph_nodes.data. Only the fields
// relevant to the node's kind are populated.
type nodeData struct {
	Kind         string           `json:"kind"`
	Literal      *dval.Encoded    `json:"literal,omitempty"`
	FunctionName string           `json:"function_name,omitempty"`
	Params       []paramData      `json:"params,omitempty"`
	Pure         bool             `json:"pure,omitempty"`
	Args         map[string]arg   `json:"args,omitempty"`
	Table        string           `json:"table,omitempty"`
	ArgIDs       []string         `json:"arg_ids,omitempty"`
	BlockID      string           `json:"block_id,omitempty"`
	Index        int              `json:"index,omitempty"`
}

type paramData struct {
	Name    string `json:"name"`
	TypeTag string `json:"type_tag,omitempty"`
}

type arg struct {
	IsEdge bool          `json:"is_edge"`
	Edge   string        `json:"edge,omitempty"`
	Const  *dval.Encoded `json:"const,omitempty"`
}

// encodeNode converts a node.Node into its persisted JSON data payload.
// Block nodes and Arg nodes carry no constant-valued arguments of their
// own, so only FunctionVariant ever populates Args.
func encodeNode(n *node.Node) (nodeData, error) {
	switch v := n.Variant.(type) {
	case node.ValueVariant:
		enc, err := dval.Encode(v.Literal)
		if err != nil {
			return nodeData{}, fmt.Errorf("postgres: encode value node %s: %w", n.ID, err)
		}
		return nodeData{Kind: "value", Literal: &enc}, nil

	case *node.FunctionVariant:
		params := make([]paramData, len(v.Params))
		for i, p := range v.Params {
			params[i] = paramData{Name: p.Name, TypeTag: string(p.TypeTag)}
		}
		args := make(map[string]arg, v.Args.Len())
		for _, name := range v.Args.Names() {
			a, _ := v.Args.Get(name)
			if a.IsEdge() {
				args[name] = arg{IsEdge: true, Edge: a.EdgeID().String()}
			} else {
				enc, err := dval.Encode(a.ConstValue())
				if err != nil {
					return nodeData{}, fmt.Errorf("postgres: encode argument %q of node %s: %w", name, n.ID, err)
				}
				args[name] = arg{Const: &enc}
			}
		}
		return nodeData{
			Kind: "function", FunctionName: v.FunctionName, Params: params, Pure: v.Pure, Args: args,
		}, nil

	case node.DatastoreVariant:
		return nodeData{Kind: "datastore", Table: v.Table}, nil

	case node.BlockVariant:
		return nodeData{Kind: "block", ArgIDs: idsToStrings(v.ArgIDs)}, nil

	case node.ArgVariant:
		return nodeData{Kind: "arg", BlockID: v.BlockID.String(), Index: v.Index, ArgIDs: idsToStrings(v.ArgIDs)}, nil

	default:
		return nodeData{}, fmt.Errorf("postgres: encode: node %s has unknown variant %T", n.ID, n.Variant)
	}
}

// decodeNode reverses encodeNode, reattaching the shared preamble fields
// that live in their own columns rather than the JSON payload.
func decodeNode(id nodeid.ID, posX, posY float64, cursor int, raw []byte) (*node.Node, error) {
	var d nodeData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("postgres: decode node %s: %w", id, err)
	}

	n := &node.Node{ID: id, Position: node.Pos{X: posX, Y: posY}, Cursor: cursor}

	switch d.Kind {
	case "value":
		lit, err := dval.Decode(*d.Literal)
		if err != nil {
			return nil, fmt.Errorf("postgres: decode node %s literal: %w", id, err)
		}
		n.Variant = node.ValueVariant{Literal: lit}

	case "function":
		params := make([]argmap.Param, len(d.Params))
		for i, p := range d.Params {
			params[i] = argmap.Param{Name: p.Name, TypeTag: argmap.TypeTag(p.TypeTag)}
		}
		fv := node.NewFunctionVariant(d.FunctionName, params, d.Pure)
		for name, a := range d.Args {
			var bound argmap.Arg
			if a.IsEdge {
				bound = argmap.Edge(nodeid.ID(a.Edge))
			} else {
				v, err := dval.Decode(*a.Const)
				if err != nil {
					return nil, fmt.Errorf("postgres: decode node %s argument %q: %w", id, name, err)
				}
				bound = argmap.Const(v)
			}
			if err := fv.Args.Set(name, bound); err != nil {
				return nil, fmt.Errorf("postgres: decode node %s: %w", id, err)
			}
		}
		n.Variant = fv

	case "datastore":
		n.Variant = node.DatastoreVariant{Table: d.Table}

	case "block":
		n.Variant = node.BlockVariant{ArgIDs: stringsToIDs(d.ArgIDs)}

	case "arg":
		n.Variant = node.ArgVariant{BlockID: nodeid.ID(d.BlockID), Index: d.Index, ArgIDs: stringsToIDs(d.ArgIDs)}

	default:
		return nil, fmt.Errorf("postgres: decode node %s: unknown kind %q", id, d.Kind)
	}

	return n, nil
}

// edgesOf lists the (param, target) edges a node's argument map declares,
// used to keep graph_edges in sync with graph_nodes.data.
func edgesOf(n *node.Node) []struct {
	Param  string
	Target nodeid.ID
} {
	am := n.Variant.Arguments()
	if am == nil {
		return nil
	}
	var out []struct {
		Param  string
		Target nodeid.ID
	}
	for _, name := range am.Names() {
		a, _ := am.Get(name)
		if a.IsEdge() {
			out = append(out, struct {
				Param  string
				Target nodeid.ID
			}{Param: name, Target: a.EdgeID()})
		}
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

func stringsToIDs(ss []string) []nodeid.ID {
	out := make([]nodeid.ID, len(ss))
	for i, s := range ss {
		out[i] = nodeid.ID(s)
	}
	return out
}
