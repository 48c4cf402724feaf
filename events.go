// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

import (
	"fmt"

	"github.com/creachadair/aslan/ast"
	"github.com/google/uuid"
)

// A Tag identifies the kind of an Event.
type Tag byte

const (
	// TagContent events report text committed to a field that carries
	// instructions. They may fire many times per field.
	TagContent Tag = iota + 1

	// TagEnd events report that a field, or one part of an implicit array,
	// is finished. One fires per instruction of the finished part.
	TagEnd

	// TagEndData events report the settled value of a finished field along
	// with all its instructions, grouped by part.
	TagEndData
)

var tagStr = [...]string{"invalid", "content", "end", "end_data"}

func (t Tag) String() string {
	if int(t) < len(tagStr) {
		return tagStr[t]
	}
	return tagStr[0]
}

// ParseTag returns the Tag whose name is s.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagStr[1:] {
		if s == name {
			return Tag(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown event tag %q", s)
}

// An Instruction is metadata attached to a field by an INSTRUCTION delimiter.
type Instruction struct {
	Name  string
	Args  []string
	Index int // length in bytes of the field's text when registered
}

// A Part is one element of a finished field, with its instructions.
type Part struct {
	Value        string
	Null         bool // the field was voided; Value is ""
	PartIndex    int
	Instructions []Instruction
}

// An Event is delivered to listeners as fields are written and finished.
type Event struct {
	Tag Tag

	// Content is the current text of the field or part. It is empty for
	// TagEndData events; see Parts.
	Content   string
	PartIndex int

	// Field is the key of the field under the cursor, and Path is the
	// sequence of keys leading to it from the root. The default field name
	// is omitted from Path.
	Field Key
	Path  []string

	// Structure is the root of the document being decoded. The parser
	// continues to modify it; use ast.Copy to retain a snapshot.
	Structure *ast.Object
	Document  int // the offset of the document in Results

	// The instruction the event concerns (TagContent, TagEnd).
	Instruction string
	Args        []string
	Index       int

	Parts []Part // TagEndData only
}

// A Listener receives events from a Parser. It must not call methods of the
// Parser that delivered the event.
type Listener func(Event)

type listener struct {
	key string
	tag Tag
	fn  Listener
}

// AddListener registers fn to receive events with the given tag, and returns
// a fresh key that identifies the registration.
func (p *Parser) AddListener(tag Tag, fn Listener) string {
	key := uuid.NewString()
	p.AddListenerWithKey(key, tag, fn)
	return key
}

// AddListenerWithKey registers fn to receive events with the given tag under
// the specified key. It reports false without effect if key is already
// registered.
func (p *Parser) AddListenerWithKey(key string, tag Tag, fn Listener) bool {
	if p.listenKeys.Has(key) {
		return false
	}
	p.listenKeys.Add(key)
	p.listeners = append(p.listeners, listener{key: key, tag: tag, fn: fn})
	return true
}

// RemoveListener removes the listener registered with key, and reports
// whether it was present.
func (p *Parser) RemoveListener(key string) bool {
	if !p.listenKeys.Has(key) {
		return false
	}
	p.listenKeys.Remove(key)
	for i, ls := range p.listeners {
		if ls.key == key {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			break
		}
	}
	return true
}

// ClearListeners removes all registered listeners.
func (p *Parser) ClearListeners() {
	p.listeners = nil
	p.listenKeys.Clear()
}

func (p *Parser) wants(tag Tag) bool {
	if !p.cfg.enabled(tag) {
		return false
	}
	for _, ls := range p.listeners {
		if ls.tag == tag {
			return true
		}
	}
	return false
}

func (p *Parser) fire(ev Event) {
	for _, ls := range p.listeners {
		if ls.tag == ev.Tag {
			ls.fn(ev)
		}
	}
}

// newEvent returns an event for the field under the cursor of the innermost
// frame.
func (p *Parser) newEvent(tag Tag) Event {
	path := make([]string, 0, len(p.stack))
	for _, f := range p.stack {
		if !f.selected() || (!f.key.isIndex && f.key.Name == p.field) {
			continue
		}
		path = append(path, f.key.String())
	}
	return Event{
		Tag:       tag,
		Field:     p.top().key,
		Path:      path,
		Structure: p.root(),
		Document:  len(p.docs) - 1,
	}
}

// emitPart fires events with the given tag for the instructions of the
// current part of the field under the cursor.
func (p *Parser) emitPart(tag Tag) {
	if !p.wants(tag) {
		return
	}
	f := p.top()
	if !f.selected() {
		return
	}
	var content string
	var part int
	switch v := f.get().(type) {
	case ast.String:
		content = string(v)
	case *ast.Array:
		if !f.implicit.Has(f.key) || v.Len() == 0 {
			return
		}
		part = v.Len() - 1
		content, _ = ast.Text(v.At(part))
	case nil:
		// no text yet
	default:
		return
	}
	for _, in := range f.instructionsFor(f.key, part) {
		ev := p.newEvent(tag)
		ev.Content = content
		ev.PartIndex = part
		ev.Instruction = in.Name
		ev.Args = in.Args
		ev.Index = in.Index
		p.fire(ev)
	}
}

// emitEndData fires an end-data event for the field under the cursor.
func (p *Parser) emitEndData() {
	if !p.wants(TagEndData) {
		return
	}
	f := p.top()
	if !f.selected() {
		return
	}
	var parts []Part
	switch v := f.get().(type) {
	case *ast.Object:
		return
	case *ast.Array:
		if !f.implicit.Has(f.key) {
			return
		}
		for i, elt := range v.Values {
			s, _ := ast.Text(elt)
			parts = append(parts, Part{
				Value:        s,
				Null:         elt == ast.Null{},
				PartIndex:    i,
				Instructions: f.instructionsFor(f.key, i),
			})
		}
	default:
		ins := f.instructionsFor(f.key, -1)
		if len(ins) == 0 && (v == nil || v == ast.String("")) {
			return // nothing was written
		}
		s, _ := ast.Text(v)
		parts = []Part{{Value: s, Null: v == ast.Null{}, Instructions: ins}}
	}
	ev := p.newEvent(TagEndData)
	ev.Parts = parts
	p.fire(ev)
}

// finishField fires the terminal events for the field under the cursor.
func (p *Parser) finishField() {
	p.emitPart(TagEnd)
	p.emitEndData()
}
