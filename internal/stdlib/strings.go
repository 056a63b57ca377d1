package stdlib

import (
	"strings"

	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// RegisterStrings registers pure string operators.
func RegisterStrings(r *registry.Registry) {
	r.Register(&registry.FunctionSpec{
		Name:       "concat",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			a, b := args["a"], args["b"]
			if a.IsIncomplete() || b.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			return dval.FromCty(cty.StringVal(a.Cty().AsString() + b.Cty().AsString())), nil
		},
	})

	r.Register(unaryStringOp("upper", strings.ToUpper))
	r.Register(unaryStringOp("lower", strings.ToLower))
}

func unaryStringOp(name string, op func(string) string) *registry.FunctionSpec {
	return &registry.FunctionSpec{
		Name:       name,
		Parameters: []argmap.Param{{Name: "s"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			s := args["s"]
			if s.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			return dval.FromCty(cty.StringVal(op(s.Cty().AsString()))), nil
		},
	}
}
