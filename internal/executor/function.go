package executor

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/ctxlog"
	"github.com/vk/flowgraph/internal/dval"
	"github.com/vk/flowgraph/internal/node"
)

// executeFunction looks up v's function in the registry and invokes it,
// consulting the memo cache when the function is pure and every resolved
// argument is complete (spec.md §4.3 "Function node", §4.4 "Memoization").
func (e *Executor) executeFunction(ctx context.Context, v *node.FunctionVariant, args map[string]dval.DVal) (dval.DVal, error) {
	spec, err := e.reg.Lookup(v.FunctionName)
	if err != nil {
		return dval.DVal{}, fmt.Errorf("executor: function node: %w", err)
	}

	if !spec.Pure {
		return spec.Fn(args)
	}

	if anyIncomplete(args) {
		ctxlog.FromContext(ctx).Debug("pure function invoked with incomplete argument, bypassing memo", "function", v.FunctionName)
		return spec.Fn(args)
	}

	key, err := dval.CanonArgs(args)
	if err != nil {
		return dval.DVal{}, fmt.Errorf("executor: computing memo key for %q: %w", v.FunctionName, err)
	}

	if cached, ok := v.Memo.Get(key); ok {
		return cached, nil
	}

	result, err := spec.Fn(args)
	if err != nil {
		return dval.DVal{}, err
	}
	v.Memo.Set(key, result)
	return result, nil
}

func anyIncomplete(args map[string]dval.DVal) bool {
	for _, v := range args {
		if v.IsIncomplete() {
			return true
		}
	}
	return false
}
