// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package aslan implements an incremental decoder for ASLAN, a delimiter-based
// text format for structured data produced by generative models.
//
// ASLAN text is ordinary text interspersed with delimiters. Every delimiter
// begins with an open bracket followed by a prefix ("aslan" by default) and a
// kind letter:
//
//	Token        | Form                      | Meaning
//	------------ | ------------------------- | ---------------------------------
//	GO           | [aslang]                  | unlock; start a new document
//	STOP         | [aslans]                  | finish the current document
//	OBJECT       | [aslano]                  | open or close an object
//	ARRAY        | [aslana]                  | open or close an array
//	COMMENT      | [aslanc]                  | discard text up to the next "["
//	VOID         | [aslanv]                  | set the current field to null
//	PART         | [aslanp]                  | begin a new part of the field
//	DATA         | [asland_NAME:POLICY]      | select field NAME
//	DATA (bare)  | [asland]                  | select the next array element
//	INSTRUCTION  | [aslani_NAME:ARG:...]     | attach metadata to the field
//	ESCAPE       | [aslane_NAME]             | begin or end a literal region
//
// A NAME consists of letters, digits, and underscores, and may not begin or
// end with an underscore. The optional POLICY of a DATA token is "a" (append),
// "f" (keep first), or "l" (keep last). A delimiter that does not match this
// grammar is treated as literal text; decoding never fails.
//
// # Decoding
//
// Construct a Parser with New, and feed it text with ParseNext, Write, or
// WriteString. The value tree is updated as text arrives, and may be
// inspected at any time with Result. When the input is complete, call Close
// to store buffered text and deliver the final events:
//
//	p := aslan.New(aslan.Config{})
//	for chunk := range chunks {
//	   p.ParseNext(chunk)
//	}
//	p.Close()
//	fmt.Println(p.Result().JSON())
//
// The Parse and ParseOne methods combine these steps for complete input.
// The root of each document is an object holding the default field
// ("_default"), which receives any text that precedes the first delimiter.
//
// # Streaming
//
// The Stream type feeds a Parser from an io.Reader:
//
//	if err := aslan.NewStream(r).Parse(ctx, p); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Events
//
// Fields may carry instructions, metadata that is not part of the value
// tree. A listener added with AddListener receives events as fields are
// written and finished:
//
//	Tag         | Delivered
//	----------- | ----------------------------------------------------------
//	TagContent  | when text is stored, once per instruction of the part
//	TagEnd      | when a field or part is finished, once per instruction
//	TagEndData  | once when a text field is finished, with all its parts
//
// Listeners are called synchronously, in the order they were added, and must
// not call back into the Parser that delivered the event.
package aslan
