// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a decoded ASLAN value tree.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/aslan/ast"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// ParsePath splits a dotted path such as "items.0.name" into path elements
// suitable for Down. Elements that parse as integers become array offsets;
// all others are object keys. An empty string yields an empty path.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	var out []any
	for _, elt := range strings.Split(s, ".") {
		if n, err := strconv.Atoi(elt); err == nil {
			out = append(out, n)
		} else {
			out = append(out, elt)
		}
	}
	return out
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings (object keys), integers
// (array offsets), or functions. If the path cannot be completely consumed,
// traversal stops and an error is recorded. Use Err to recover the error.
//
// A string element resolves an object member by key. If the current value is
// an array, a string holding a decimal integer is treated as an offset, so the
// paths reported by parser events can be used directly.
//
// An integer element resolves an array offset. Negative offsets count
// backward from the end (-1 is last). Landing on a hole is an error.
//
// A function element must have the signature
//
//	func(ast.Value) (ast.Value, error)
//
// and its result becomes the next value. If it reports an error, traversal
// stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		if s, ok := elt.(string); ok {
			if _, isArray := cur.(*ast.Array); isArray {
				if n, err := strconv.Atoi(s); err == nil {
					elt = n
				}
			}
		}

		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*ast.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(m.Value)

		case int:
			arr, ok := cur.(*ast.Array)
			if !ok {
				return c.setErrorf("cannot traverse %T with %v", cur, t)
			}
			i, ok := fixArrayBound(arr.Len(), t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", i, arr.Len())
			} else if arr.Values[i] == nil {
				return c.setErrorf("array index %d is a hole", i)
			}
			cur = c.push(arr.Values[i])

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value) ast.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
