// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the value tree produced by decoding ASLAN text.
//
// A decoded value is a String, Null, *Object, or *Array. Objects preserve the
// order in which their keys were first written. Arrays may contain holes,
// positions that were never written; a hole is represented by a nil Value and
// is distinct from Null.
package ast

import (
	"strconv"

	"github.com/creachadair/aslan/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary ASLAN value.
type Value interface {
	// JSON renders the value as JSON text.
	JSON() string

	appendJSON([]byte) []byte
}

// A String is a text value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(s.appendJSON(nil)) }

func (s String) appendJSON(buf []byte) []byte { return escape.AppendQuoted(buf, mem.S(string(s))) }

// Null is the null value, produced by a void marker.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

func (Null) appendJSON(buf []byte) []byte { return append(buf, "null"...) }

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// NewObject constructs an object with the given members.
func NewObject(ms ...*Member) *Object { return &Object{Members: ms} }

// Field constructs a member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Get returns the value of the member of o with the given key, and reports
// whether such a member exists.
func (o *Object) Get(key string) (Value, bool) {
	if m := o.Find(key); m != nil {
		return m.Value, true
	}
	return nil, false
}

// Set sets the value of key in o to v, adding a new member at the end if key
// is not already present. It returns the member holding v.
func (o *Object) Set(key string, v Value) *Member {
	if m := o.Find(key); m != nil {
		m.Value = v
		return m
	}
	m := Field(key, v)
	o.Members = append(o.Members, m)
	return m
}

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return string(o.appendJSON(nil)) }

func (o *Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o.Members {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = escape.AppendQuoted(buf, mem.S(m.Key))
		buf = append(buf, ':')
		buf = appendValue(buf, m.Value)
	}
	return append(buf, '}')
}

// An Array is a sequence of values. A nil entry is a hole.
type Array struct {
	Values []Value
}

// NewArray constructs an array with the given values.
func NewArray(vs ...Value) *Array { return &Array{Values: vs} }

// Len reports the length of a, including holes.
func (a *Array) Len() int { return len(a.Values) }

// At returns the value at offset i of a, or nil if i is out of range or
// denotes a hole.
func (a *Array) At(i int) Value {
	if i < 0 || i >= len(a.Values) {
		return nil
	}
	return a.Values[i]
}

// Put sets the value at offset i >= 0 of a to v, extending a with holes as
// needed.
func (a *Array) Put(i int, v Value) {
	for len(a.Values) <= i {
		a.Values = append(a.Values, nil)
	}
	a.Values[i] = v
}

// Append adds v to the end of a.
func (a *Array) Append(v Value) { a.Values = append(a.Values, v) }

// JSON satisfies the Value interface. Holes are rendered as null.
func (a *Array) JSON() string { return string(a.appendJSON(nil)) }

func (a *Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range a.Values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendValue(buf, v)
	}
	return append(buf, ']')
}

func appendValue(buf []byte, v Value) []byte {
	if v == nil {
		return append(buf, "null"...)
	}
	return v.appendJSON(buf)
}

// IsContainer reports whether v is an *Object or *Array.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	}
	return false
}

// Text returns the contents of v if it is a String.
func Text(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// Copy returns a deep copy of v. The result shares no containers with v.
func Copy(v Value) Value {
	switch t := v.(type) {
	case *Object:
		out := new(Object)
		if t.Members != nil {
			out.Members = make([]*Member, len(t.Members))
		}
		for i, m := range t.Members {
			out.Members[i] = Field(m.Key, Copy(m.Value))
		}
		return out
	case *Array:
		out := new(Array)
		if t.Values != nil {
			out.Values = make([]Value, len(t.Values))
		}
		for i, elt := range t.Values {
			out.Values[i] = Copy(elt)
		}
		return out
	default:
		return v // strings and null are immutable
	}
}

// ToAny converts v into plain Go values: map[string]any for objects, []any
// for arrays, string for strings, and nil for null and holes.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Object:
		out := make(map[string]any, len(t.Members))
		for _, m := range t.Members {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	case *Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = ToAny(elt)
		}
		return out
	case String:
		return string(t)
	default:
		return nil
	}
}

// Describe renders v in a compact human-readable notation that, unlike JSON,
// distinguishes holes from null. Holes render as "_".
func Describe(v Value) string {
	switch t := v.(type) {
	case nil:
		return "_"
	case *Object:
		buf := []byte("{")
		for i, m := range t.Members {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, m.Key...)
			buf = append(buf, ": "...)
			buf = append(buf, Describe(m.Value)...)
		}
		return string(append(buf, '}'))
	case *Array:
		buf := []byte("[")
		for i, elt := range t.Values {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, Describe(elt)...)
		}
		return string(append(buf, ']'))
	case String:
		return strconv.Quote(string(t))
	default:
		return v.JSON()
	}
}
