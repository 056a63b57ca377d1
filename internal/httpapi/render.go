package httpapi

import (
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/serialize"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// liveFromDVal renders an evaluation result as the wire Live quadruple
// (spec.md §4.8), the way a front-end inspector panel would display it.
func liveFromDVal(v dval.DVal) serialize.Live {
	switch v.Kind() {
	case dval.KindNull:
		return serialize.Live{Value: "null", Type: "null", JSON: "null"}
	case dval.KindIncomplete:
		return serialize.Live{Value: "", Type: "incomplete", JSON: ""}
	case dval.KindOpaque:
		return serialize.Live{Value: v.Table(), Type: "datastore", JSON: ""}
	case dval.KindBlock:
		return serialize.Live{Value: v.BlockID().String(), Type: "block", JSON: ""}
	case dval.KindCty:
		raw, err := ctyjson.Marshal(v.Cty(), v.Cty().Type())
		if err != nil {
			return serialize.Live{Exc: err.Error()}
		}
		return serialize.Live{Value: string(raw), Type: v.Cty().Type().FriendlyName(), JSON: string(raw)}
	default:
		return serialize.Live{Exc: "unknown value kind"}
	}
}

// constReprFor builds the ConstRepr callback serialize.Project needs to
// render a function or block's constant-valued arguments as strings.
func constReprFor(n *node.Node) func(name string) string {
	return func(name string) string {
		am := n.Variant.Arguments()
		if am == nil {
			return ""
		}
		arg, ok := am.Get(name)
		if !ok || arg.IsEdge() {
			return ""
		}
		live := liveFromDVal(arg.ConstValue())
		if live.Value != "" {
			return live.Value
		}
		return live.Type
	}
}
