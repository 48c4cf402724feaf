// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

import (
	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// A state is a state of the delimiter recognizer. Each state has a method of
// Parser that consumes one character in that state.
type state byte

const (
	stData     state = iota // text is committed to the field under the cursor
	stPending               // text is held until the next token resolves it
	stComment               // text is discarded until "["
	stLocked                // everything is discarded until a GO token
	stOpen                  // matching the open sequence "[" + prefix
	stKind                  // awaiting the kind letter
	stBody                  // awaiting "_" after the kind letter
	stName                  // reading a NAME
	stArgs                  // reading colon-separated arguments
	stClose                 // awaiting "]"
	stReserved              // reading the body of a reserved token
)

// insignificant delimiters are not recorded in the history, so any number of
// them may separate an OBJECT or ARRAY token from the delimiter before it.
var insignificant = mapset.New(CommentDelim, EscapeDelim)

func (p *Parser) step(ch rune) {
	switch p.state {
	case stData:
		p.inData(ch)
	case stPending:
		p.inPending(ch)
	case stComment, stLocked:
		p.inDiscard(ch)
	case stOpen:
		p.inOpen(ch)
	case stKind:
		p.inKind(ch)
	case stBody:
		p.inBody(ch)
	case stName:
		p.inName(ch)
	case stArgs:
		p.inArgs(ch)
	case stClose:
		p.inClose(ch)
	case stReserved:
		p.inReserved(ch)
	default:
		panic("aslan: invalid state")
	}
}

func (p *Parser) inData(ch rune) {
	if ch == '[' {
		p.begin()
	} else {
		p.run.WriteRune(ch)
	}
}

func (p *Parser) inPending(ch rune) {
	if ch == '[' {
		p.begin()
	} else {
		p.pending.WriteRune(ch)
	}
}

func (p *Parser) inDiscard(ch rune) {
	if ch == '[' {
		p.begin()
	}
}

// begin starts matching a delimiter at an open bracket.
func (p *Parser) begin() {
	p.buf.Reset()
	p.buf.WriteByte('[')
	p.matched = 1
	p.state = stOpen
}

func (p *Parser) inOpen(ch rune) {
	if ch != p.open[p.matched] {
		p.fail(ch)
		return
	}
	p.buf.WriteRune(ch)
	p.matched++
	if p.matched == len(p.open) {
		p.state = stKind
	}
}

func (p *Parser) inKind(ch rune) {
	d := delimForCode(ch)
	if d == InvalidDelim || (p.locked && d != GoDelim) {
		p.fail(ch)
		return
	}
	p.buf.WriteRune(ch)
	if p.escape != "" && d != EscapeDelim {
		p.literal()
		return
	}
	p.kind = d
	p.name.Reset()
	p.arg.Reset()
	p.args = nil
	switch {
	case d.hasName():
		p.state = stBody
	case d == ReservedDelim:
		p.state = stReserved
	default:
		p.state = stClose
	}
}

func (p *Parser) inBody(ch rune) {
	switch {
	case ch == '_':
		p.buf.WriteRune(ch)
		p.state = stName
	case ch == ']' && p.kind == DataDelim && p.top().arr != nil:
		p.complete() // bare DATA
	default:
		p.fail(ch)
	}
}

func (p *Parser) inName(ch rune) {
	switch {
	case isNameRune(ch):
		if ch == '_' && p.name.Len() == 0 {
			p.fail(ch)
			return
		}
		p.buf.WriteRune(ch)
		p.name.WriteRune(ch)

	case ch == ']' || (ch == ':' && p.kind != EscapeDelim):
		name := mem.S(p.name.String())
		if name.Len() == 0 || mem.HasSuffix(name, mem.S("_")) {
			p.fail(ch)
			return
		}
		p.buf.WriteRune(ch)
		if ch == ']' {
			p.complete()
		} else {
			p.state = stArgs
		}

	default:
		p.fail(ch)
	}
}

func (p *Parser) inArgs(ch rune) {
	switch ch {
	case ']':
		p.args = append(p.args, p.arg.String())
		p.complete()
	case ':':
		p.buf.WriteRune(ch)
		p.args = append(p.args, p.arg.String())
		p.arg.Reset()
	case '[':
		p.fail(ch)
	default:
		p.buf.WriteRune(ch)
		p.arg.WriteRune(ch)
	}
}

func (p *Parser) inClose(ch rune) {
	if ch == ']' {
		p.complete()
	} else {
		p.fail(ch)
	}
}

func (p *Parser) inReserved(ch rune) {
	switch {
	case isNameRune(ch):
		p.buf.WriteRune(ch)
	case ch == ']':
		p.complete()
	default:
		p.fail(ch)
	}
}

// fail abandons a partial delimiter at ch. The text of the delimiter and ch
// become literal text, except that an open bracket starts a new match.
func (p *Parser) fail(ch rune) {
	if p.locked {
		p.buf.Reset()
		p.state = stLocked
	} else {
		if ch != '[' {
			p.buf.WriteRune(ch)
		}
		p.literal()
	}
	if ch == '[' {
		p.begin()
	}
}

// literal commits the pending span and the partial delimiter as text, and
// returns to the data state.
func (p *Parser) literal() {
	p.run.WriteString(p.pending.String())
	p.run.WriteString(p.buf.String())
	p.pending.Reset()
	p.buf.Reset()
	p.state = stData
}

// complete applies the delimiter that has just been recognized.
func (p *Parser) complete() {
	kind, text := p.kind, p.buf.String()
	name, args := p.name.String(), p.args
	p.buf.Reset()
	p.state = stData

	if kind == EscapeDelim {
		p.onEscape(name, text)
		return
	}
	p.flush()
	p.pending.Reset()
	if kind == ReservedDelim {
		return
	}
	prior, _ := p.hist.MostRecent()
	if !insignificant.Has(kind) {
		p.hist.Add(kind)
	}

	switch kind {
	case DataDelim:
		p.onData(name, args)
	case ObjectDelim, ArrayDelim:
		p.onContainer(kind, prior)
	case InstructionDelim:
		p.onInstruction(name, args)
	case CommentDelim:
		p.state = stComment
	case PartDelim:
		p.onPart()
	case VoidDelim:
		p.onVoid()
	case GoDelim:
		p.onGo()
	case StopDelim:
		p.onStop()
	}
}
