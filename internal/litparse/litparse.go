// Package litparse implements the value literal parser external interface
// (spec.md §6 "Value literal parser": "parse(string) → DVal used once at
// value-node construction"). It is deliberately thin — the full grammar of
// literal expressions is explicitly out of the engine's scope (spec.md
// §1) — but ships a real default built on HCL's own expression syntax, the
// same syntax the rest of the corpus parses arguments with.
package litparse

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/flowgraph/internal/dval"
)

// Parse converts the source text of a value node's literal into a DVal.
// An empty source string parses to Incomplete, matching a value node whose
// editor field has not been filled in yet; anything else is parsed as a
// standalone HCL expression (numbers, strings, bools, null, and tuple/
// object literals of those).
func Parse(src string) (dval.DVal, error) {
	if src == "" {
		return dval.Incomplete(), nil
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), "<value-literal>", hcl.InitialPos)
	if diags.HasErrors() {
		return dval.DVal{}, fmt.Errorf("litparse: %w", diags)
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return dval.DVal{}, fmt.Errorf("litparse: %w", diags)
	}

	return dval.FromCty(val), nil
}
