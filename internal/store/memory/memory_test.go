package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/node"
)

func TestGetNode_MissingIsNotFound(t *testing.T) {
	s := New()
	_, err := s.GetNode(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engineerr.ErrNodeNotFound))
}

func TestAddNode_ThenGetNode(t *testing.T) {
	s := New()
	n := &node.Node{ID: "1", Variant: node.ValueVariant{Literal: dval.Null()}}
	require.NoError(t, s.AddNode(context.Background(), n, "one"))

	got, err := s.GetNode(context.Background(), "1")
	require.NoError(t, err)
	assert.Same(t, n, got)
	assert.Equal(t, "one", s.Name("1"))
}

func TestGetChildren_FindsEdgeReferences(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "1", Variant: node.ValueVariant{}}, "v"))

	fv := node.NewFunctionVariant("f", []argmap.Param{{Name: "a"}}, true)
	require.NoError(t, fv.Args.Set("a", argmap.Edge("1")))
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "2", Variant: fv}, "f"))

	children, err := s.GetChildren(ctx, "1")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "2", children[0].ID.String())
}

func TestGetDeepest_TaggedByHopCount(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "x", Variant: node.ValueVariant{}}, "x"))

	f1 := node.NewFunctionVariant("f1", []argmap.Param{{Name: "a"}}, true)
	require.NoError(t, f1.Args.Set("a", argmap.Edge("x")))
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "y", Variant: f1}, "y"))

	f2 := node.NewFunctionVariant("f2", []argmap.Param{{Name: "a"}}, true)
	require.NoError(t, f2.Args.Set("a", argmap.Edge("y")))
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "z", Variant: f2}, "z"))

	deepest, err := s.GetDeepest(ctx, "x")
	require.NoError(t, err)
	require.Len(t, deepest, 2)
	byID := map[string]int{}
	for _, d := range deepest {
		byID[d.Node.ID.String()] = d.Depth
	}
	assert.Equal(t, 1, byID["y"])
	assert.Equal(t, 2, byID["z"])
}

func TestGetDeepest_DiamondPicksMaximumDepth(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "x", Variant: node.ValueVariant{}}, "x"))

	mid := node.NewFunctionVariant("mid", []argmap.Param{{Name: "a"}}, true)
	require.NoError(t, mid.Args.Set("a", argmap.Edge("x")))
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "y", Variant: mid}, "y"))

	// "z" is reachable two ways: directly from x (depth 1) and via y
	// (depth 2). It must be tagged with the longer of the two.
	join := node.NewFunctionVariant("join", []argmap.Param{{Name: "a"}, {Name: "b"}}, true)
	require.NoError(t, join.Args.Set("a", argmap.Edge("x")))
	require.NoError(t, join.Args.Set("b", argmap.Edge("y")))
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "z", Variant: join}, "z"))

	deepest, err := s.GetDeepest(ctx, "x")
	require.NoError(t, err)
	byID := map[string]int{}
	for _, d := range deepest {
		byID[d.Node.ID.String()] = d.Depth
	}
	assert.Equal(t, 1, byID["y"])
	assert.Equal(t, 2, byID["z"])
}

func TestDeleteNode_RemovesFromStore(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, &node.Node{ID: "1", Variant: node.ValueVariant{}}, "v"))
	require.NoError(t, s.DeleteNode(ctx, "1"))

	_, err := s.GetNode(ctx, "1")
	assert.True(t, errors.Is(err, engineerr.ErrNodeNotFound))
}
