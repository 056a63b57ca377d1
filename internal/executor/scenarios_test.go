package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/vk/flowgraph/internal/scope"
	"github.com/zclconf/go-cty/cty"
)

// addSpec registers a pure two-argument numeric adder. An Incomplete
// operand yields Incomplete rather than an error, matching scenario 3's
// expectation that the function is still invoked, just not memoized.
func addSpec(invocations *int) *registry.FunctionSpec {
	return &registry.FunctionSpec{
		Name:       "add",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			*invocations++
			a, b := args["a"], args["b"]
			if a.IsIncomplete() || b.IsIncomplete() {
				return dval.Incomplete(), nil
			}
			af, _ := a.Cty().AsBigFloat().Float64()
			bf, _ := b.Cty().AsBigFloat().Float64()
			return dval.FromCty(cty.NumberFloatVal(af + bf)), nil
		},
	}
}

func mulSpec() *registry.FunctionSpec {
	return &registry.FunctionSpec{
		Name:       "mul",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			af, _ := args["a"].Cty().AsBigFloat().Float64()
			bf, _ := args["b"].Cty().AsBigFloat().Float64()
			return dval.FromCty(cty.NumberFloatVal(af * bf)), nil
		},
	}
}

// mapSpec models the "apply a block to every element of a list" higher-order
// function from scenario 5. Its single Block-typed parameter is invoked
// once per element.
func mapSpec() *registry.FunctionSpec {
	return &registry.FunctionSpec{
		Name:       "map",
		Parameters: []argmap.Param{{Name: "list"}, {Name: "fn", TypeTag: argmap.Block}},
		Pure:       false,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			list := args["list"].Cty()
			fn := args["fn"]
			results := make([]cty.Value, 0, list.LengthInt())
			for it := list.ElementIterator(); it.Next(); {
				_, v := it.Element()
				out, err := fn.Call([]dval.DVal{dval.FromCty(v)})
				if err != nil {
					return dval.DVal{}, err
				}
				results = append(results, out.Cty())
			}
			return dval.FromCty(cty.TupleVal(results)), nil
		},
	}
}

func numberValueNode(id nodeid.ID, n float64) *node.Node {
	return &node.Node{ID: id, Variant: node.ValueVariant{Literal: dval.FromCty(cty.NumberFloatVal(n))}}
}

func TestScenario_Literal(t *testing.T) {
	store := newMemStore()
	store.add(numberValueNode("1", 42))
	exec := New(store, registry.New())

	v, err := exec.Execute(context.Background(), store.nodes["1"], scope.Empty())
	require.NoError(t, err)
	f, _ := v.Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(42), f)
}

func TestScenario_PureFunctionMemoization(t *testing.T) {
	store := newMemStore()
	store.add(numberValueNode("1", 2))
	store.add(numberValueNode("2", 3))

	fv := node.NewFunctionVariant("add", []argmap.Param{{Name: "a"}, {Name: "b"}}, true)
	require.NoError(t, fv.Args.Set("a", argmap.Edge("1")))
	require.NoError(t, fv.Args.Set("b", argmap.Edge("2")))
	store.add(&node.Node{ID: "3", Variant: fv})

	invocations := 0
	reg := registry.New()
	reg.Register(addSpec(&invocations))
	exec := New(store, reg)

	v1, err := exec.Execute(context.Background(), store.nodes["3"], scope.Empty())
	require.NoError(t, err)
	f1, _ := v1.Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(5), f1)
	assert.Equal(t, 1, invocations)

	v2, err := exec.Execute(context.Background(), store.nodes["3"], scope.Empty())
	require.NoError(t, err)
	f2, _ := v2.Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(5), f2)
	assert.Equal(t, 1, invocations, "second execute must not re-invoke a memoized pure function")
	assert.Equal(t, 1, fv.Memo.Len())
}

func TestScenario_IncompletePropagation(t *testing.T) {
	store := newMemStore()
	store.add(numberValueNode("1", 2))

	fv := node.NewFunctionVariant("add", []argmap.Param{{Name: "a"}, {Name: "b"}}, true)
	require.NoError(t, fv.Args.Set("a", argmap.Edge("1")))
	require.NoError(t, fv.Args.Set("b", argmap.Blank()))
	store.add(&node.Node{ID: "2", Variant: fv})

	invocations := 0
	reg := registry.New()
	reg.Register(addSpec(&invocations))
	exec := New(store, reg)

	v, err := exec.Execute(context.Background(), store.nodes["2"], scope.Empty())
	require.NoError(t, err)
	assert.True(t, v.IsIncomplete())
	assert.Equal(t, 1, invocations)
	assert.Equal(t, 0, fv.Memo.Len(), "incomplete inputs must bypass the memo entirely")
}

func TestScenario_Datastore(t *testing.T) {
	store := newMemStore()
	store.add(&node.Node{ID: "1", Variant: node.DatastoreVariant{Table: "users"}})
	exec := New(store, registry.New())

	v, err := exec.Execute(context.Background(), store.nodes["1"], scope.Empty())
	require.NoError(t, err)
	assert.Equal(t, dval.KindOpaque, v.Kind())
	assert.Equal(t, "users", v.Table())
}

// TestScenario_HigherOrderBlock builds map([1,2,3], fn x -> x*2): an arg
// node x whose sole child multiplies it by Value("2"), wrapped in a block
// whose single arg_id is x, invoked by a non-pure "map" function.
func TestScenario_HigherOrderBlock(t *testing.T) {
	store := newMemStore()

	argNode := &node.Node{ID: "x", Variant: node.ArgVariant{BlockID: "block", Index: 0, ArgIDs: []nodeid.ID{"x"}}}
	store.add(argNode)
	store.add(numberValueNode("two", 2))

	mulVariant := node.NewFunctionVariant("mul", []argmap.Param{{Name: "a"}, {Name: "b"}}, true)
	require.NoError(t, mulVariant.Args.Set("a", argmap.Edge("x")))
	require.NoError(t, mulVariant.Args.Set("b", argmap.Edge("two")))
	store.add(&node.Node{ID: "times2", Variant: mulVariant})

	store.add(&node.Node{ID: "block", Variant: node.BlockVariant{ArgIDs: []nodeid.ID{"x"}}})

	listNode := &node.Node{ID: "list", Variant: node.ValueVariant{
		Literal: dval.FromCty(cty.TupleVal([]cty.Value{
			cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3),
		})),
	}}
	store.add(listNode)

	mapVariant := node.NewFunctionVariant("map", []argmap.Param{{Name: "list"}, {Name: "fn", TypeTag: argmap.Block}}, false)
	require.NoError(t, mapVariant.Args.Set("list", argmap.Edge("list")))
	require.NoError(t, mapVariant.Args.Set("fn", argmap.Edge("block")))
	store.add(&node.Node{ID: "mapcall", Variant: mapVariant})

	reg := registry.New()
	reg.Register(mulSpec())
	reg.Register(mapSpec())
	exec := New(store, reg)

	result, err := exec.Execute(context.Background(), store.nodes["mapcall"], scope.Empty())
	require.NoError(t, err)

	got := result.Cty()
	require.Equal(t, 3, got.LengthInt())
	want := []float64{2, 4, 6}
	i := 0
	for it := got.ElementIterator(); it.Next(); i++ {
		_, v := it.Element()
		f, _ := v.AsBigFloat().Float64()
		assert.Equal(t, want[i], f)
	}
}

func TestScenario_Preview(t *testing.T) {
	store := newMemStore()
	store.add(numberValueNode("1", 10))

	fv := node.NewFunctionVariant("withPreview", []argmap.Param{{Name: "a"}}, true)
	require.NoError(t, fv.Args.Set("a", argmap.Edge("1")))
	node1 := &node.Node{ID: "n", Variant: fv, Cursor: 1}
	store.add(node1)

	reg := registry.New()
	reg.Register(&registry.FunctionSpec{
		Name:       "withPreview",
		Parameters: []argmap.Param{{Name: "a"}},
		Pure:       true,
		Fn: func(args map[string]dval.DVal) (dval.DVal, error) {
			return args["a"], nil
		},
		Preview: func(params []dval.DVal, cursor int) []dval.DVal {
			return []dval.DVal{dval.FromCty(cty.NumberIntVal(int64(cursor)))}
		},
	})
	exec := New(store, reg)

	out, err := exec.Preview(context.Background(), node1, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	f, _ := out[0].Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(0), f)

	out, err = exec.Preview(context.Background(), node1, 1)
	require.NoError(t, err)
	f, _ = out[0].Cty().AsBigFloat().Float64()
	assert.Equal(t, float64(1), f)
}

func TestPreview_NoHookReturnsIncompletePerParameter(t *testing.T) {
	store := newMemStore()
	fv := node.NewFunctionVariant("noPreview", []argmap.Param{{Name: "a"}, {Name: "b"}}, true)
	n := &node.Node{ID: "n", Variant: fv}
	store.add(n)

	reg := registry.New()
	reg.Register(&registry.FunctionSpec{
		Name:       "noPreview",
		Parameters: []argmap.Param{{Name: "a"}, {Name: "b"}},
		Pure:       true,
		Fn:         func(args map[string]dval.DVal) (dval.DVal, error) { return dval.Incomplete(), nil },
	})
	exec := New(store, reg)

	out, err := exec.Preview(context.Background(), n, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].IsIncomplete())
	assert.True(t, out[1].IsIncomplete())
}
