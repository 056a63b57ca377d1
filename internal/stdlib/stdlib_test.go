package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func num(n float64) dval.DVal { return dval.FromCty(cty.NumberFloatVal(n)) }

func TestArith(t *testing.T) {
	r := registry.New()
	RegisterArith(r)

	add, err := r.Lookup("add")
	require.NoError(t, err)
	v, err := add.Fn(map[string]dval.DVal{"a": num(2), "b": num(3)})
	require.NoError(t, err)
	f, _ := v.Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(5), f)

	div, err := r.Lookup("div")
	require.NoError(t, err)
	_, err = div.Fn(map[string]dval.DVal{"a": num(1), "b": num(0)})
	assert.Error(t, err)
}

func TestArith_IncompleteOperandYieldsIncomplete(t *testing.T) {
	r := registry.New()
	RegisterArith(r)
	add, _ := r.Lookup("add")

	v, err := add.Fn(map[string]dval.DVal{"a": num(2), "b": dval.Incomplete()})
	require.NoError(t, err)
	assert.True(t, v.IsIncomplete())
}

func TestStrings_Concat(t *testing.T) {
	r := registry.New()
	RegisterStrings(r)
	concat, _ := r.Lookup("concat")

	v, err := concat.Fn(map[string]dval.DVal{
		"a": dval.FromCty(cty.StringVal("foo")),
		"b": dval.FromCty(cty.StringVal("bar")),
	})
	require.NoError(t, err)
	assert.Equal(t, "foobar", v.Cty().AsString())
}

func TestList_MapAppliesClosureToEveryElement(t *testing.T) {
	r := registry.New()
	RegisterList(r)
	mapFn, _ := r.Lookup("map")

	list := dval.FromCty(cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}))
	double := dval.NewBlock("blk", func(args []dval.DVal) (dval.DVal, error) {
		f, _ := args[0].Cty().AsBigFloat().Float64()
		return dval.FromCty(cty.NumberFloatVal(f * 2)), nil
	})

	out, err := mapFn.Fn(map[string]dval.DVal{"list": list, "fn": double})
	require.NoError(t, err)
	require.Equal(t, 2, out.Cty().LengthInt())
}

func TestTime_NowIsImpure(t *testing.T) {
	r := registry.New()
	RegisterTime(r)
	now, err := r.Lookup("now")
	require.NoError(t, err)
	assert.False(t, now.Pure)
}
