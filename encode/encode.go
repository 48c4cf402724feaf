// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package encode renders structured values as ASLAN text.
//
// The encoder visits the value depth first and emits one delimiter for each
// node: a DATA delimiter for each object member and array element, OBJECT
// and ARRAY delimiters to open and close each container, and a VOID for each
// null. Strings that contain the delimiter prefix are wrapped in an escape
// region.
//
// Decoding the output with a default-configured parser reproduces the input,
// except that object members and array elements whose value is blank (empty
// or only whitespace) are omitted, and array holes are not preserved at the
// end of an array. The decoded root also has the default field.
package encode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/aslan"
	"github.com/creachadair/aslan/ast"
	"github.com/tailscale/hujson"
)

// Options control the output of the encoder. A zero Options is ready for use.
type Options struct {
	// Prefix is the delimiter prefix. If empty, aslan.DefaultPrefix is used.
	Prefix string
}

// Error is the concrete type of errors reported by the encoder.
type Error struct {
	Path    string // the dotted path of the offending value, "" for the root
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "encode: " + e.Message
	}
	return fmt.Sprintf("encode %s: %s", e.Path, e.Message)
}

// Value encodes v, which must be an *ast.Object, as ASLAN text.
func Value(v ast.Value, opts Options) (string, error) {
	obj, ok := v.(*ast.Object)
	if !ok {
		return "", &Error{Message: fmt.Sprintf("root is %s, not an object", kindOf(v))}
	}
	e := &encoder{prefix: opts.Prefix}
	if e.prefix == "" {
		e.prefix = aslan.DefaultPrefix
	}
	if err := e.members(nil, obj); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// JSON encodes the JSON object in data as ASLAN text. The input may contain
// comments and trailing commas. Numbers and Booleans are encoded as strings.
func JSON(data []byte, opts Options) (string, error) {
	v, err := hujson.Parse(data)
	if err != nil {
		return "", fmt.Errorf("encode: parse input: %w", err)
	}
	return Value(FromJSON(v), opts)
}

// FromJSON converts a parsed JSON value to an ast.Value. Literals other than
// strings and null become strings holding their JSON text.
func FromJSON(v hujson.Value) ast.Value {
	switch t := v.Value.(type) {
	case hujson.Literal:
		switch t.Kind() {
		case 'n':
			return ast.Null{}
		case '"':
			return ast.String(t.String())
		}
		return ast.String(string(t))
	case *hujson.Object:
		obj := ast.NewObject()
		for _, m := range t.Members {
			key := m.Name.Value.(hujson.Literal).String()
			obj.Members = append(obj.Members, ast.Field(key, FromJSON(m.Value)))
		}
		return obj
	case *hujson.Array:
		arr := ast.NewArray()
		for _, elt := range t.Elements {
			arr.Append(FromJSON(elt))
		}
		return arr
	}
	panic(fmt.Sprintf("encode: unexpected JSON value %T", v.Value))
}

type encoder struct {
	prefix string
	buf    strings.Builder
}

func (e *encoder) token(body string) {
	e.buf.WriteByte('[')
	e.buf.WriteString(e.prefix)
	e.buf.WriteString(body)
	e.buf.WriteByte(']')
}

func (e *encoder) members(path []string, obj *ast.Object) error {
	seen := make(map[string]bool)
	for _, m := range obj.Members {
		mpath := append(path[:len(path):len(path)], m.Key)
		if !aslan.ValidName(m.Key) {
			return &Error{Path: strings.Join(mpath, "."), Message: fmt.Sprintf("invalid member name %q", m.Key)}
		} else if seen[m.Key] {
			return &Error{Path: strings.Join(mpath, "."), Message: "duplicate member name"}
		}
		seen[m.Key] = true
		if blank(m.Value) {
			continue
		}
		e.token("d_" + m.Key)
		if err := e.value(mpath, m.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) elements(path []string, arr *ast.Array) error {
	next := 0
	for i, v := range arr.Values {
		if v == nil || blank(v) {
			continue
		}
		if i == next {
			e.token("d")
		} else {
			e.token("d_" + strconv.Itoa(i))
		}
		next = i + 1
		if err := e.value(append(path[:len(path):len(path)], strconv.Itoa(i)), v); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) value(path []string, v ast.Value) error {
	switch t := v.(type) {
	case ast.String:
		e.text(string(t))
	case ast.Null:
		e.token("v")
	case *ast.Object:
		e.token("o")
		if err := e.members(path, t); err != nil {
			return err
		}
		e.token("o")
	case *ast.Array:
		e.token("a")
		if err := e.elements(path, t); err != nil {
			return err
		}
		e.token("a")
	default:
		return &Error{Path: strings.Join(path, "."), Message: fmt.Sprintf("unsupported value %T", v)}
	}
	return nil
}

// text writes s, wrapped in an escape region if it contains the prefix.
func (e *encoder) text(s string) {
	if !strings.Contains(s, "["+e.prefix) {
		e.buf.WriteString(s)
		return
	}
	name := e.escapeName(s)
	e.token("e_" + name)
	e.buf.WriteString(s)
	e.token("e_" + name)
}

// escapeName returns a name whose escape delimiter does not occur in s.
func (e *encoder) escapeName(s string) string {
	for i := 0; ; i++ {
		name := "Q"
		if i > 0 {
			name = "Q" + strconv.Itoa(i)
		}
		if !strings.Contains(s, "["+e.prefix+"e_"+name+"]") {
			return name
		}
	}
}

// blank reports whether v is a string that would decode as no content.
func blank(v ast.Value) bool {
	s, ok := v.(ast.String)
	return ok && strings.TrimSpace(string(s)) == ""
}

func kindOf(v ast.Value) string {
	switch v.(type) {
	case nil:
		return "missing"
	case ast.String:
		return "a string"
	case ast.Null:
		return "null"
	case *ast.Array:
		return "an array"
	}
	return fmt.Sprintf("%T", v)
}
