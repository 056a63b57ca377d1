package dval

import (
	"encoding/json"
	"fmt"

	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Encoded is the at-rest representation of a DVal used by the graph
// store (internal/store/memory, internal/store/postgres) to persist
// value-node literals and constant arguments. Block is never encoded —
// a closure has no meaning outside the evaluation that constructed it —
// so the store only ever needs this for the variants spec.md's value
// literal parser can produce: Null, Incomplete, and cty-backed values,
// plus Opaque for completeness.
type Encoded struct {
	Kind  Kind            `json:"kind"`
	Table string          `json:"table,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Encode converts v to its at-rest form. Returns an error for Block,
// which has no persistent representation.
func Encode(v DVal) (Encoded, error) {
	switch v.kind {
	case KindNull, KindIncomplete:
		return Encoded{Kind: v.kind}, nil
	case KindOpaque:
		return Encoded{Kind: v.kind, Table: v.table}, nil
	case KindCty:
		raw, err := json.Marshal(ctyjson.SimpleJSONValue{Value: v.cty})
		if err != nil {
			return Encoded{}, fmt.Errorf("dval: encode: %w", err)
		}
		return Encoded{Kind: v.kind, Value: raw}, nil
	default:
		return Encoded{}, fmt.Errorf("dval: encode: kind %s has no persistent representation", v.kind)
	}
}

// Decode reverses Encode.
func Decode(e Encoded) (DVal, error) {
	switch e.Kind {
	case KindNull:
		return Null(), nil
	case KindIncomplete:
		return Incomplete(), nil
	case KindOpaque:
		return Opaque(e.Table), nil
	case KindCty:
		var wrapped ctyjson.SimpleJSONValue
		if err := json.Unmarshal(e.Value, &wrapped); err != nil {
			return DVal{}, fmt.Errorf("dval: decode: %w", err)
		}
		return FromCty(wrapped.Value), nil
	default:
		return DVal{}, fmt.Errorf("dval: decode: unsupported kind %d", e.Kind)
	}
}
