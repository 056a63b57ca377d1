package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

func TestScope_GetMissing(t *testing.T) {
	s := Empty()
	_, ok := s.Get("n1")
	assert.False(t, ok)
}

func TestScope_With_LeftBiasedMerge(t *testing.T) {
	outer := Empty().With(map[nodeid.ID]dval.DVal{
		"x": dval.FromCty(cty.NumberIntVal(1)),
		"y": dval.FromCty(cty.NumberIntVal(2)),
	})

	inner := outer.With(map[nodeid.ID]dval.DVal{
		"x": dval.FromCty(cty.NumberIntVal(99)),
	})

	x, ok := inner.Get("x")
	assert.True(t, ok)
	assert.True(t, x.Equal(dval.FromCty(cty.NumberIntVal(99))), "inner binding must win over outer")

	y, ok := inner.Get("y")
	assert.True(t, ok)
	assert.True(t, y.Equal(dval.FromCty(cty.NumberIntVal(2))), "outer binding must survive when not shadowed")
}

func TestScope_With_DoesNotMutateReceiver(t *testing.T) {
	outer := Empty().With(map[nodeid.ID]dval.DVal{"x": dval.FromCty(cty.NumberIntVal(1))})
	_ = outer.With(map[nodeid.ID]dval.DVal{"x": dval.FromCty(cty.NumberIntVal(2))})

	x, ok := outer.Get("x")
	assert.True(t, ok)
	assert.True(t, x.Equal(dval.FromCty(cty.NumberIntVal(1))))
}
