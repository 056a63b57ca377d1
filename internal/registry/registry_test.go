package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/zclconf/go-cty/cty"
)

func TestLookup_Unknown(t *testing.T) {
	r := New()
	_, err := r.Lookup("nope")
	assert.ErrorIs(t, err, engineerr.ErrUnknownFunction)
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.Register(&FunctionSpec{
		Name:       "add",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			a := args["a"].Cty().AsBigFloat()
			b := args["b"].Cty().AsBigFloat()
			sum := new(float64)
			af, _ := a.Float64()
			bf, _ := b.Float64()
			*sum = af + bf
			return dval.FromCty(cty.NumberFloatVal(*sum)), nil
		},
	})

	spec, err := r.Lookup("add")
	require.NoError(t, err)
	assert.True(t, spec.Pure)
	assert.Len(t, spec.Parameters, 2)
}

func TestRegister_OverwritesPrevious(t *testing.T) {
	r := New()
	r.Register(&FunctionSpec{Name: "f", Pure: true})
	r.Register(&FunctionSpec{Name: "f", Pure: false})

	spec, err := r.Lookup("f")
	require.NoError(t, err)
	assert.False(t, spec.Pure)
}
