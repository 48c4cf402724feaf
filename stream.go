// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Stream feeds the contents of an io.Reader to a Parser.
type Stream struct {
	input *bufio.Reader
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{input: bufio.NewReader(r)} }

// Parse feeds the input to p until the input is exhausted, then closes p.
// Text is stored into the tree whenever the reader has no more input ready,
// so that events are delivered while the input is still arriving.
//
// Parse returns nil if the input was fully consumed. It reports an error if
// the reader fails or ctx ends before the input is exhausted; in that case p
// is not closed.
func (s *Stream) Parse(ctx context.Context, p *Parser) error {
	if p.closed {
		return ErrClosed
	}
	for {
		if s.input.Buffered() == 0 {
			p.flush()
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		ch, _, err := s.input.ReadRune()
		if err == io.EOF {
			return p.Close()
		} else if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		p.step(ch)
	}
}
