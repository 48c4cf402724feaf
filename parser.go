// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/aslan/ast"
	"github.com/creachadair/aslan/internal/recent"
	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// ErrClosed is reported by Write when the parser has been closed.
var ErrClosed = errors.New("aslan: parser is closed")

// A Parser decodes ASLAN text incrementally. Text may be supplied in pieces
// of any size; the value tree is updated as each piece arrives. A Parser is
// not safe for concurrent use by multiple goroutines.
type Parser struct {
	cfg   Config
	open  []rune // "[" + prefix
	field string // the default field name

	state   state
	locked  bool // only GO is recognized
	stopped bool // no GO since the last STOP, or since the start
	closed  bool
	escape  string // the name of the open escape region, if any

	// Recognizer state for a partial delimiter.
	buf     strings.Builder // text of the delimiter so far
	matched int             // runes of p.open matched
	kind    Delim
	name    strings.Builder
	arg     strings.Builder
	args    []string

	run     strings.Builder // committed text not yet stored
	pending strings.Builder // text held since an OBJECT, ARRAY, or STOP
	carry   []byte          // an incomplete UTF-8 sequence from Write

	hist  *recent.History[Delim]
	stack []*frame
	docs  []*ast.Object

	listeners  []listener
	listenKeys mapset.Set[string]
}

// New constructs a Parser with the given settings.
func New(cfg Config) *Parser {
	p := &Parser{
		cfg:        cfg,
		open:       []rune("[" + cfg.prefix()),
		field:      cfg.defaultField(),
		hist:       recent.New[Delim](recent.DefaultCapacity),
		listenKeys: mapset.New[string](),
	}
	p.Reset()
	return p
}

// Reset discards all decoding state, so that p can be reused for new input.
// Registered listeners are retained.
func (p *Parser) Reset() {
	p.locked = p.cfg.StrictStart
	p.state = stData
	if p.locked {
		p.state = stLocked
	}
	p.stopped = true
	p.closed = false
	p.escape = ""
	p.buf.Reset()
	p.matched = 0
	p.name.Reset()
	p.arg.Reset()
	p.args = nil
	p.run.Reset()
	p.pending.Reset()
	p.carry = nil
	p.hist.Clear()
	p.docs = nil
	p.newDocument()
}

// Parse decodes text and closes p. In multi-document mode it returns every
// document root (see Results); otherwise it returns the current root only.
// With StrictEnd, the empty document begun by a final STOP is not included,
// so "[aslang]A[aslans]" yields only the document holding A.
func (p *Parser) Parse(text string) []*ast.Object {
	p.ParseNext(text)
	p.Close()
	if p.cfg.MultiDocument {
		return p.Results()
	}
	return []*ast.Object{p.Result()}
}

// ParseOne decodes text, closes p, and returns the current root.
func (p *Parser) ParseOne(text string) *ast.Object {
	p.ParseNext(text)
	p.Close()
	return p.Result()
}

// ParseNext decodes text without closing p. Text following the last complete
// delimiter is stored immediately, unless it is held pending the next
// delimiter. It has no effect if p is closed.
func (p *Parser) ParseNext(text string) {
	if p.closed {
		return
	}
	for _, ch := range text {
		p.step(ch)
	}
	p.flush()
}

// Write decodes data without closing p. An incomplete UTF-8 sequence at the
// end of data is held until the next call. It reports ErrClosed if p has
// been closed.
func (p *Parser) Write(data []byte) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	buf := data
	if len(p.carry) != 0 {
		buf = append(p.carry, data...)
		p.carry = nil
	}
	for len(buf) != 0 {
		if !utf8.FullRune(buf) {
			p.carry = append([]byte(nil), buf...)
			break
		}
		ch, n := utf8.DecodeRune(buf)
		p.step(ch)
		buf = buf[n:]
	}
	p.flush()
	return len(data), nil
}

// WriteString is equivalent to Write with s.
func (p *Parser) WriteString(s string) (int, error) { return p.Write([]byte(s)) }

// Close finishes decoding: pending text is stored, and terminal events are
// delivered for the field under the cursor. Further input is ignored until
// Reset. Close always returns nil; calling it more than once is harmless.
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	if len(p.carry) != 0 {
		p.step(utf8.RuneError)
		p.carry = nil
	}
	p.finalize()
	p.closed = true
	return nil
}

// Result returns the root of the most recent document.
func (p *Parser) Result() *ast.Object {
	rs := p.Results()
	return rs[len(rs)-1]
}

// Results returns the roots of all documents decoded since the last Reset,
// in order. A document begun by STOP that has not received any input is
// omitted unless it is the only one.
func (p *Parser) Results() []*ast.Object {
	n := len(p.docs)
	if n > 1 && p.stopped && p.pristine(p.docs[n-1]) {
		n--
	}
	return p.docs[:n:n]
}

func (p *Parser) pristine(root *ast.Object) bool {
	if root.Len() != 1 {
		return false
	}
	v, ok := root.Get(p.field)
	return ok && v == ast.String("")
}

func (p *Parser) top() *frame       { return p.stack[len(p.stack)-1] }
func (p *Parser) root() *ast.Object { return p.stack[0].obj }

// objectDepth reports the number of open objects below the root.
func (p *Parser) objectDepth() (n int) {
	for _, f := range p.stack[1:] {
		if f.obj != nil {
			n++
		}
	}
	return
}

// newDocument starts a new document with a fresh root.
func (p *Parser) newDocument() {
	root := ast.NewObject(ast.Field(p.field, ast.String("")))
	f := newObjectFrame(root, p.field)
	f.policy[f.key] = Default
	p.stack = []*frame{f}
	p.docs = append(p.docs, root)
}

// finalize stores all buffered text and delivers the terminal events for the
// field under the cursor.
func (p *Parser) finalize() {
	if p.buf.Len() != 0 {
		if p.locked {
			p.buf.Reset()
		} else {
			p.literal()
		}
	}
	p.flush()
	if p.pending.Len() != 0 {
		text := p.pending.String()
		p.pending.Reset()
		p.store(text)
	}
	p.finishField()
}

// flush stores committed text into the field under the cursor.
func (p *Parser) flush() {
	if p.run.Len() == 0 {
		return
	}
	text := p.run.String()
	p.run.Reset()
	p.store(text)
}

// store appends text to the field under the cursor.
func (p *Parser) store(text string) {
	f := p.top()
	if !f.selected() {
		return
	}
	if f.void.Has(f.key) {
		f.set(ast.Null{})
		return
	}
	if text == "" {
		return
	}
	cur := f.get()
	if blank(cur) {
		cur = ast.String("")
		f.set(cur)
	}
	if f.locked.Has(f.key) {
		return
	}
	switch v := cur.(type) {
	case ast.String:
		f.set(v + ast.String(text))
		p.emitPart(TagContent)
	case *ast.Array:
		if n := v.Len(); f.implicit.Has(f.key) && n != 0 {
			s, _ := ast.Text(v.At(n - 1))
			v.Values[n-1] = ast.String(s + text)
			p.emitPart(TagContent)
		}
	}
}

// hasContent reports whether v counts as content for an OBJECT or ARRAY
// decision.
func (p *Parser) hasContent(v ast.Value) bool {
	if ast.IsContainer(v) {
		return true
	}
	s, ok := v.(ast.String)
	if !ok {
		return false
	} else if p.cfg.PreserveWhitespace {
		return s != ""
	}
	return mem.TrimSpace(mem.S(string(s))).Len() != 0
}

func (p *Parser) onData(name string, args []string) {
	f := p.top()
	p.finishField()
	if f.arr != nil {
		f.selectIndex(name)
		if f.get() != nil {
			f.seen.Add(f.key)
		}
		if name == "" {
			return
		}
	} else {
		if v, ok := f.obj.Get(p.field); ok && v == ast.String("") {
			f.obj.Set(p.field, ast.Null{})
		}
		f.key = NameKey(name)
		if _, ok := f.obj.Get(name); ok {
			f.seen.Add(f.key)
		}
	}

	policy := Default
	if len(args) != 0 {
		policy = parsePolicy(args[0])
	}
	fixed, ok := f.policy[f.key]
	if !ok {
		f.policy[f.key] = policy
		return
	}
	switch fixed {
	case KeepLast:
		f.set(ast.String(""))
		f.dropInstructions(f.key)
	case KeepFirst:
		f.locked.Add(f.key)
	default:
		if p.cfg.AppendSeparator != "" && f.seen.Has(f.key) && hasText(f.get()) {
			p.store(p.cfg.AppendSeparator)
		}
	}
}

func (p *Parser) onContainer(kind Delim, prior Delim) {
	defer func() { p.state = stPending }()

	f := p.top()
	v := f.get()
	has, isc := p.hasContent(v), ast.IsContainer(v)
	dup := f.seen.Has(f.key)

	var d Decision
	if kind == ObjectDelim && p.cfg.LimitObjectDepth && p.objectDepth() >= p.cfg.MaxObjectDepth {
		d = NoOp
		if len(p.stack) > 1 {
			d = Close
		}
	} else {
		d = Decide(has, isc, prior, dup, len(p.stack))
	}

	switch d {
	case Open:
		if !f.selected() {
			return
		}
		if dup && !(prior == DataDelim && (!has || isc)) {
			f.seen.Remove(f.key) // re-declared key gets a fresh container
		}
		if kind == ObjectDelim {
			obj := ast.NewObject()
			f.set(obj)
			p.stack = append(p.stack, newObjectFrame(obj, p.field))
		} else {
			arr := ast.NewArray()
			f.set(arr)
			p.stack = append(p.stack, newArrayFrame(arr))
		}
	case Close:
		p.finishField()
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *Parser) onInstruction(name string, args []string) {
	f := p.top()
	if !f.selected() {
		return
	} else if f.seen.Has(f.key) && f.policy[f.key] == KeepFirst {
		return
	}
	in := instruction{key: f.key, Instruction: Instruction{Name: name, Args: args}}
	switch v := f.get().(type) {
	case ast.String:
		in.Index = len(v)
	case *ast.Array:
		if n := v.Len(); f.implicit.Has(f.key) && n != 0 {
			s, _ := ast.Text(v.At(n - 1))
			in.Index = len(s)
			in.part = n - 1
		}
	}
	f.instrs = append(f.instrs, in)
	p.emitPart(TagContent)
}

func (p *Parser) onPart() {
	f := p.top()
	if !f.selected() || f.locked.Has(f.key) {
		return
	}
	switch v := f.get().(type) {
	case *ast.Array:
		p.emitPart(TagEnd)
		v.Append(ast.String(""))
	case *ast.Object:
		// a part of an object is meaningless
	default:
		if hasText(v) {
			f.set(ast.NewArray(v, ast.String("")))
		} else {
			f.set(ast.NewArray(ast.String("")))
		}
		f.implicit.Add(f.key)
	}
}

func (p *Parser) onVoid() {
	f := p.top()
	if f.selected() {
		f.void.Add(f.key)
		f.set(ast.Null{})
	}
}

func (p *Parser) onEscape(name, text string) {
	switch p.escape {
	case "":
		p.flush()
		p.pending.Reset()
		p.escape = name
	case name:
		p.escape = ""
	default:
		p.run.WriteString(text) // not ours; the region stays open
	}
}

func (p *Parser) onGo() {
	p.locked = false
	if p.cfg.StrictStart && !p.stopped {
		p.finalize()
		p.newDocument()
	}
	p.stopped = false
}

func (p *Parser) onStop() {
	if !p.cfg.StrictEnd {
		p.state = stPending
		return
	}
	p.finalize()
	p.newDocument()
	p.stopped = true
	if p.cfg.StrictStart {
		p.locked = true
		p.state = stLocked
	}
}
