// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

import (
	"strconv"

	"github.com/creachadair/aslan/ast"
	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// maxExplicitIndex is the largest explicit array index honored by a DATA
// token. Larger indices are treated as non-numeric.
const maxExplicitIndex = 1 << 20

// A Key identifies a slot in a container: a field name in an object, or an
// offset in an array.
type Key struct {
	Name  string // the field name, if the key is not an index
	Index int    // the array offset, if the key is an index

	isIndex bool
}

// NameKey returns a key for the object field with the given name.
func NameKey(name string) Key { return Key{Name: name} }

// IndexKey returns a key for the array element at offset i.
func IndexKey(i int) Key { return Key{Index: i, isIndex: true} }

// IsIndex reports whether k is an array offset rather than a field name.
func (k Key) IsIndex() bool { return k.isIndex }

func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

// A Policy governs how repeated writes to the same key combine. The policy
// for a key is fixed by its first declaration in a container.
type Policy byte

const (
	Default   Policy = iota // concatenate spans in arrival order
	Append                  // [Pd_NAME:a], same as Default
	KeepFirst               // [Pd_NAME:f], later spans are ignored
	KeepLast                // [Pd_NAME:l], a later declaration clears the value
)

var policyStr = [...]string{"default", "append", "keep-first", "keep-last"}

func (p Policy) String() string {
	if int(p) < len(policyStr) {
		return policyStr[p]
	}
	return "policy(" + strconv.Itoa(int(p)) + ")"
}

func parsePolicy(arg string) Policy {
	switch arg {
	case "a":
		return Append
	case "f":
		return KeepFirst
	case "l":
		return KeepLast
	}
	return Default
}

// A Decision is the outcome of an OBJECT or ARRAY token.
type Decision byte

const (
	NoOp  Decision = iota // leave the frame stack unchanged
	Open                  // create a new container at the cursor
	Close                 // finish the innermost container
)

func (d Decision) String() string {
	switch d {
	case Open:
		return "open"
	case Close:
		return "close"
	}
	return "no-op"
}

// Decide reports what an OBJECT or ARRAY token does, given the state of the
// field under the cursor. hasContent reports whether the field holds
// non-blank text or a container, isContainer whether it holds a container.
// prior is the most recent significant delimiter before the token, dup
// reports whether the cursor key was re-declared since its container was
// created, and depth is the number of open frames including the root.
//
// A token directly after a DATA token opens a container unless the field
// already holds text. A re-declared key gets a fresh container. Otherwise the
// token closes the innermost container, which is a no-op at the root.
func Decide(hasContent, isContainer bool, prior Delim, dup bool, depth int) Decision {
	switch {
	case !hasContent && prior == DataDelim:
		return Open
	case isContainer && prior == DataDelim:
		return Open
	case dup:
		return Open
	case depth > 1:
		return Close
	default:
		return NoOp
	}
}

// A frame is one level of the container stack. Exactly one of obj and arr is
// set; it is the same container held by the parent's slot.
type frame struct {
	obj *ast.Object
	arr *ast.Array

	key      Key // the cursor; an index of -1 means no element is selected
	minIndex int // the next implicit array offset

	policy   map[Key]Policy
	locked   mapset.Set[Key] // keys that ignore further writes
	void     mapset.Set[Key] // keys whose writes produce null
	seen     mapset.Set[Key] // keys re-declared while already present
	implicit mapset.Set[Key] // keys promoted to arrays by PART

	instrs []instruction
}

type instruction struct {
	key  Key
	part int
	Instruction
}

func newObjectFrame(obj *ast.Object, defaultField string) *frame {
	return newFrame(&frame{obj: obj, key: NameKey(defaultField)})
}

func newArrayFrame(arr *ast.Array) *frame {
	return newFrame(&frame{arr: arr, key: IndexKey(-1)})
}

func newFrame(f *frame) *frame {
	f.policy = make(map[Key]Policy)
	f.locked = mapset.New[Key]()
	f.void = mapset.New[Key]()
	f.seen = mapset.New[Key]()
	f.implicit = mapset.New[Key]()
	return f
}

// get returns the value under the cursor, or nil if there is none.
func (f *frame) get() ast.Value {
	if f.arr != nil {
		return f.arr.At(f.key.Index)
	}
	v, _ := f.obj.Get(f.key.Name)
	return v
}

// set stores v under the cursor. It has no effect if no array element is
// selected.
func (f *frame) set(v ast.Value) {
	if f.arr == nil {
		f.obj.Set(f.key.Name, v)
	} else if f.key.Index >= 0 {
		f.arr.Put(f.key.Index, v)
	}
}

// selected reports whether the cursor denotes a slot.
func (f *frame) selected() bool { return f.arr == nil || f.key.Index >= 0 }

// selectIndex moves the cursor of an array frame for a DATA token with the
// given name, which is empty for a bare DATA.
func (f *frame) selectIndex(name string) {
	if n, err := mem.ParseInt(mem.S(name), 10, 64); err == nil && n >= 0 && n <= maxExplicitIndex {
		f.key = IndexKey(int(n))
		f.minIndex = max(f.minIndex, int(n)+1)
		return
	}
	f.key = IndexKey(f.minIndex)
	f.minIndex++
}

// instructionsFor returns the instructions registered for key at the given
// part, or at any part if part < 0.
func (f *frame) instructionsFor(key Key, part int) []Instruction {
	var out []Instruction
	for _, in := range f.instrs {
		if in.key == key && (part < 0 || in.part == part) {
			out = append(out, in.Instruction)
		}
	}
	return out
}

// dropInstructions discards all the instructions registered for key.
func (f *frame) dropInstructions(key Key) {
	keep := f.instrs[:0]
	for _, in := range f.instrs {
		if in.key != key {
			keep = append(keep, in)
		}
	}
	f.instrs = keep
}

// hasText reports whether v is a non-empty string.
func hasText(v ast.Value) bool {
	s, ok := v.(ast.String)
	return ok && s != ""
}

// blank reports whether v is absent, null, or the empty string.
func blank(v ast.Value) bool {
	switch t := v.(type) {
	case nil, ast.Null:
		return true
	case ast.String:
		return t == ""
	}
	return false
}
