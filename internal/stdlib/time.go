package stdlib

import (
	"math/rand/v2"
	"time"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// RegisterTime registers "now", the library's canonical non-pure
// function: it takes no arguments and must be re-invoked on every
// execute (spec.md §4.3 "If the function is not pure: invoke it every
// time"). Its preview hook ignores cursor since it has no parameters to
// sample.
func RegisterTime(r *registry.Registry) {
	r.Register(&registry.FunctionSpec{
		Name:       "now",
		Parameters: nil,
		Pure:       false,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			return dval.FromCty(cty.StringVal(time.Now().UTC().Format(time.RFC3339Nano))), nil
		},
		Preview: func(params []dval.DVal, cursor int) []dval.DVal {
			return nil
		},
	})

	r.Register(&registry.FunctionSpec{
		Name:       "rand",
		Parameters: []argmap.Param{{Name: "max"}},
		Pure:       false,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			max := args["max"]
			if max.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			mf, _ := max.Cty().AsBigFloat().Float64()
			if mf <= 0 {
				return dval.FromCty(cty.NumberIntVal(0)), nil
			}
			return dval.FromCty(cty.NumberIntVal(rand.Int64N(int64(mf)))), nil
		},
	})
}
