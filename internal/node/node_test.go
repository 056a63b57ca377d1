package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/dval"
)

func TestNewFunctionVariant_ArgMapMatchesParams(t *testing.T) {
	params := []argmap.Param{{Name: "a"}, {Name: "b"}}
	v := NewFunctionVariant("add", params, true)

	assert.True(t, v.Args.MatchesParams(params))
	assert.Equal(t, 0, v.Memo.Len())
}

func TestFunctionVariant_Rebind_ClearsMemo(t *testing.T) {
	v := NewFunctionVariant("add", []argmap.Param{{Name: "a"}}, true)
	v.Memo.Set("k", dval.Incomplete())
	require.Equal(t, 1, v.Memo.Len())

	v.Rebind("sub", []argmap.Param{{Name: "x"}, {Name: "y"}}, true)
	assert.Equal(t, 0, v.Memo.Len())
	assert.True(t, v.Args.MatchesParams([]argmap.Param{{Name: "x"}, {Name: "y"}}))
	assert.Equal(t, "sub", v.FunctionName)
}

func TestVariantKinds(t *testing.T) {
	assert.Equal(t, KindValue, ValueVariant{}.Kind())
	assert.Equal(t, KindDatastore, DatastoreVariant{}.Kind())
	assert.Equal(t, KindBlock, BlockVariant{}.Kind())
	assert.Equal(t, KindArg, ArgVariant{}.Kind())
}
