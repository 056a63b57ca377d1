package dval

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ErrNotCacheable is returned when Canon is asked to serialize a value that
// has no stable, order-independent representation: a Block closure.
// spec.md §4.4 requires closures be excluded from memoization; reaching
// this error means a pure function's declared purity is violated by an
// argument that should never have been memo-keyed in the first place.
var ErrNotCacheable = errors.New("dval: value is not cacheable (block closure)")

// Canon produces a canonical, order-stable serialization of v, suitable as
// (part of) a memoization key. Opaque handles serialize to a fixed tag
// carrying their table name; Null and Incomplete serialize to fixed tags
// distinct from each other and from any cty-representable value.
func Canon(v DVal) (string, error) {
	switch v.kind {
	case KindNull:
		return "null", nil
	case KindIncomplete:
		return "incomplete", nil
	case KindOpaque:
		return fmt.Sprintf("opaque:%s", v.table), nil
	case KindCty:
		raw, err := ctyjson.Marshal(v.cty, v.cty.Type())
		if err != nil {
			return "", fmt.Errorf("dval: canon: %w", err)
		}
		return "value:" + string(raw), nil
	case KindBlock:
		return "", ErrNotCacheable
	default:
		return "", fmt.Errorf("dval: canon: unknown kind %d", v.kind)
	}
}

// CanonArgs produces a canonical serialization of a parameter-name → DVal
// mapping, the memo key described in spec.md §4.4. Keys are sorted so the
// result is independent of map iteration order.
func CanonArgs(args map[string]DVal) (string, error) {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		c, err := Canon(args[name])
		if err != nil {
			return "", fmt.Errorf("dval: canon args: argument %q: %w", name, err)
		}
		key, err := json.Marshal(name)
		if err != nil {
			return "", fmt.Errorf("dval: canon args: encode name %q: %w", name, err)
		}
		entries = append(entries, string(key)+":"+c)
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("dval: canon args: %w", err)
	}
	return string(out), nil
}
