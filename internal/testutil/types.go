// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/creachadair/aslan"
	"github.com/creachadair/aslan/ast"
)

// Hole denotes an unwritten array element in the arguments of Arr.
var Hole hole

type hole struct{}

// Obj constructs an object from alternating keys and values.
// See Arr for the interpretation of values.
func Obj(kvs ...any) *ast.Object {
	if len(kvs)%2 != 0 {
		panic("testutil: odd number of arguments to Obj")
	}
	obj := ast.NewObject()
	for i := 0; i < len(kvs); i += 2 {
		obj.Members = append(obj.Members, ast.Field(kvs[i].(string), value(kvs[i+1])))
	}
	return obj
}

// Arr constructs an array of the given values. A string denotes an
// ast.String, nil denotes ast.Null, Hole denotes a hole, and an ast.Value
// denotes itself.
func Arr(vs ...any) *ast.Array {
	arr := ast.NewArray()
	for _, v := range vs {
		arr.Values = append(arr.Values, value(v))
	}
	return arr
}

func value(v any) ast.Value {
	switch t := v.(type) {
	case nil:
		return ast.Null{}
	case hole:
		return nil
	case string:
		return ast.String(t)
	case ast.Value:
		return t
	default:
		panic(fmt.Sprintf("testutil: unsupported value %T", v))
	}
}

// A Recorder records events delivered by a parser.
type Recorder struct {
	Events []aslan.Event
}

// Listen registers r with p for the specified tags, or for all tags if none
// are given.
func (r *Recorder) Listen(p *aslan.Parser, tags ...aslan.Tag) {
	if len(tags) == 0 {
		tags = []aslan.Tag{aslan.TagContent, aslan.TagEnd, aslan.TagEndData}
	}
	for _, tag := range tags {
		p.AddListener(tag, r.Record)
	}
}

// Record adds ev to the events recorded by r.
func (r *Recorder) Record(ev aslan.Event) { r.Events = append(r.Events, ev) }

// Summary renders the recorded events as compact strings, one per event:
//
//	content hi bold 0 "Hello"
//	end hi bold 0 "Hello"
//	end_data hi [0:"Hello" bold]
func (r *Recorder) Summary() []string {
	var out []string
	for _, ev := range r.Events {
		path := strings.Join(ev.Path, ".")
		if ev.Tag != aslan.TagEndData {
			out = append(out, fmt.Sprintf("%s %s %s %d %q", ev.Tag, path, ev.Instruction, ev.PartIndex, ev.Content))
			continue
		}
		var parts []string
		for _, p := range ev.Parts {
			s := fmt.Sprintf("%d:%q", p.PartIndex, p.Value)
			if p.Null {
				s = fmt.Sprintf("%d:null", p.PartIndex)
			}
			for _, in := range p.Instructions {
				s += " " + in.Name
			}
			parts = append(parts, s)
		}
		out = append(out, fmt.Sprintf("end_data %s [%s]", path, strings.Join(parts, ", ")))
	}
	return out
}
