// Package payload holds the generic tree produced by decoding an upstream
// response body, and the accessors that read it without ever failing.
package payload

import (
	"encoding/json"
	"maps"
	"slices"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Value is a node of a parsed payload: Null, Scalar, Sequence or Mapping.
// The zero Value is Null.
type Value struct {
	kind   Kind
	scalar string
	seq    []Value
	fields map[string]Value
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Scalar wraps upstream text.
func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Sequence wraps the given items without copying them.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// Mapping wraps the given fields without copying them.
func Mapping(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMapping, fields: fields}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the scalar text. ok is false for every other variant.
func (v Value) Text() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.scalar, true
}

// String returns the scalar text or an empty string.
func (v Value) String() string {
	s, _ := v.Text()
	return s
}

// Field returns the child stored under key, or Null when v is not a mapping
// or has no such key.
func (v Value) Field(key string) Value {
	if v.kind != KindMapping {
		return Null()
	}
	return v.fields[key]
}

// Keys returns the mapping keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	return slices.Sorted(maps.Keys(v.fields))
}

// Get walks the tree one key at a time. Any step through a non-mapping node
// or a missing key yields Null.
func (v Value) Get(keys ...string) Value {
	cur := v
	for _, key := range keys {
		if cur.kind != KindMapping {
			return Null()
		}
		next, ok := cur.fields[key]
		if !ok {
			return Null()
		}
		cur = next
	}
	return cur
}

// GetOr is Get with an explicit default for absent nodes.
func (v Value) GetOr(def Value, keys ...string) Value {
	if found := v.Get(keys...); !found.IsNull() {
		return found
	}
	return def
}

// AsList normalizes the one-or-many shape of collapsed XML siblings.
// Null yields an empty list, a Sequence yields its own items, anything else
// is wrapped in a one-element list.
func (v Value) AsList() []Value {
	switch v.kind {
	case KindNull:
		return []Value{}
	case KindSequence:
		return v.seq
	default:
		return []Value{v}
	}
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == o.scalar
	case KindSequence:
		return slices.EqualFunc(v.seq, o.seq, Value.Equal)
	case KindMapping:
		return maps.EqualFunc(v.fields, o.fields, Value.Equal)
	default:
		return true
	}
}

// MarshalJSON renders the tree as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Interface converts the tree back into plain Go values.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, 0, len(v.seq))
		for _, item := range v.seq {
			out = append(out, item.Interface())
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.fields))
		for key, field := range v.fields {
			out[key] = field.Interface()
		}
		return out
	default:
		return nil
	}
}
