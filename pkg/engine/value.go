package engine

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of a report value tree node.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindScalar
	KindObject
	KindArray
)

// Value is one node of the tagged value tree built over loosely-typed
// report data. "Path segment missing" is a first-class outcome: traversal
// into anything that does not exist yields an Absent value, never an error.
type Value struct {
	kind   Kind
	raw    any
	object map[string]Value
	array  []Value
}

// Absent is the value of a missing path.
func Absent() Value { return Value{} }

// FromAny builds a value tree from raw report data: maps become objects,
// slices become arrays, nil becomes Absent, everything else is a scalar.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, child := range t {
			obj[k] = FromAny(child)
		}
		return Value{kind: KindObject, raw: v, object: obj}
	case []any:
		arr := make([]Value, len(t))
		for i, child := range t {
			arr[i] = FromAny(child)
		}
		return Value{kind: KindArray, raw: v, array: arr}
	default:
		return Value{kind: KindScalar, raw: v}
	}
}

// Object builds an object node from already-converted children.
func Object(children map[string]Value) Value {
	raw := make(map[string]any, len(children))
	for k, c := range children {
		raw[k] = c.raw
	}
	return Value{kind: KindObject, raw: raw, object: children}
}

// Kind returns the node's variant.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the node represents a missing value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Raw returns the underlying data: the scalar itself, the original map or
// slice for containers, nil for Absent.
func (v Value) Raw() any { return v.raw }

// At traverses a dot-separated path one segment at a time. Object segments
// index by key; array segments accept decimal indices. A missing
// intermediate yields Absent.
func (v Value) At(path string) Value {
	if path == "" {
		return v
	}
	current := v
	for _, seg := range strings.Split(path, ".") {
		switch current.kind {
		case KindObject:
			child, ok := current.object[seg]
			if !ok {
				return Value{}
			}
			current = child
		case KindArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(current.array) {
				return Value{}
			}
			current = current.array[i]
		default:
			return Value{}
		}
	}
	return current
}
