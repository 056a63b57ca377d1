package stdlib

import (
	"fmt"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// RegisterList registers the higher-order list functions. Both take a
// Block-typed callback parameter; the engine resolves that argument to a
// Block closure before invoking Fn, per spec.md §4.3 "Function node" —
// this package never constructs closures itself, only calls them.
func RegisterList(r *registry.Registry) {
	r.Register(&registry.FunctionSpec{
		Name:       "map",
		Parameters: []argmap.Param{{Name: "list"}, {Name: "fn", TypeTag: argmap.Block}},
		Pure:       false,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			list := args["list"]
			fn := args["fn"]
			if list.IsIncomplete() || fn.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			results := make([]cty.Value, 0, list.Cty().LengthInt())
			for it := list.Cty().ElementIterator(); it.Next(); {
				_, v := it.Element()
				out, err := fn.Call([]dval.DVal{dval.FromCty(v)})
				if err != nil {
					return dval.DVal{}, fmt.Errorf("stdlib: map: %w", err)
				}
				results = append(results, out.Cty())
			}
			if len(results) == 0 {
				return dval.FromCty(cty.EmptyTupleVal), nil
			}
			return dval.FromCty(cty.TupleVal(results)), nil
		},
	})

	r.Register(&registry.FunctionSpec{
		Name:       "filter",
		Parameters: []argmap.Param{{Name: "list"}, {Name: "pred", TypeTag: argmap.Block}},
		Pure:       false,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			list := args["list"]
			pred := args["pred"]
			if list.IsIncomplete() || pred.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			var results []cty.Value
			for it := list.Cty().ElementIterator(); it.Next(); {
				_, v := it.Element()
				keep, err := pred.Call([]dval.DVal{dval.FromCty(v)})
				if err != nil {
					return dval.DVal{}, fmt.Errorf("stdlib: filter: %w", err)
				}
				if !keep.IsIncomplete() && keep.Cty().True() {
					results = append(results, v)
				}
			}
			if len(results) == 0 {
				return dval.FromCty(cty.EmptyTupleVal), nil
			}
			return dval.FromCty(cty.TupleVal(results)), nil
		},
	})
}
