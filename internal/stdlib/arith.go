package stdlib

import (
	"fmt"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// RegisterArith registers pure numeric operators. Each is a total
// function on Incomplete: given an Incomplete operand, it returns
// Incomplete rather than erroring, since the engine invokes pure
// functions on incomplete inputs without caching (spec.md §4.3) and a
// thrown error there would abort evaluation instead of propagating the
// missing value.
func RegisterArith(r *registry.Registry) {
	r.Register(binaryNumOp("add", func(a, b float64) float64 { return a + b }))
	r.Register(binaryNumOp("sub", func(a, b float64) float64 { return a - b }))
	r.Register(binaryNumOp("mul", func(a, b float64) float64 { return a * b }))
	r.Register(&registry.FunctionSpec{
		Name:       "div",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			a, b := args["a"], args["b"]
			if a.IsIncomplete() || b.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			af, _ := a.Cty().AsBigFloat().Float64()
			bf, _ := b.Cty().AsBigFloat().Float64()
			if bf == 0 {
				return dval.DVal{}, fmt.Errorf("stdlib: div: division by zero")
			}
			return dval.FromCty(cty.NumberFloatVal(af / bf)), nil
		},
	})
}

func binaryNumOp(name string, op func(a, b float64) float64) *registry.FunctionSpec {
	return &registry.FunctionSpec{
		Name:       name,
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			a, b := args["a"], args["b"]
			if a.IsIncomplete() || b.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			af, _ := a.Cty().AsBigFloat().Float64()
			bf, _ := b.Cty().AsBigFloat().Float64()
			return dval.FromCty(cty.NumberFloatVal(op(af, bf))), nil
		},
	}
}
