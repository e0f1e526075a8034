package wire

import (
	"bytes"
	"strconv"
)

// maxSizeLine bounds a length line: the digits of any int64 plus a few bytes
// of surrounding whitespace.
const maxSizeLine = 32

// Parser incrementally decodes block-groups from a byte stream.
//
// Bytes are handed to Feed as they arrive from the transport, in fragments of
// any size. Next consumes as much of the buffered input as it can and returns
// a block-group once the blank line ending it has been seen. The parse state
// (step, pending block length, accumulated blocks) survives between calls, so
// splitting the input at arbitrary points yields the same block-groups as
// feeding it all at once.
//
// The zero value is ready to use. A Parser is owned by one connection and is
// not safe for concurrent use.
type Parser struct {
	// MaxBlockSize rejects length lines above this value with a ParseError.
	// Zero means no limit.
	MaxBlockSize int

	step    Step
	pending int
	buf     []byte
	pos     int
	blocks  [][]byte
}

// Feed appends b to the receive buffer. The consumed prefix of the buffer is
// discarded first so memory stays bounded by the unparsed tail.
func (p *Parser) Feed(b []byte) {
	if p.pos > 0 {
		n := copy(p.buf, p.buf[p.pos:])
		p.buf = p.buf[:n]
		p.pos = 0
	}
	p.buf = append(p.buf, b...)
}

// Next returns the next complete block-group.
//
// It returns (nil, nil) when the buffered bytes do not complete a group yet;
// the caller should Feed more input and call Next again. A completed group is
// never nil: a bare blank line yields an empty, non-nil group.
//
// Malformed input returns a *ParseError. The stream position is lost after
// that and the parser must be Reset before reuse.
//
// Returned blocks are copies and remain valid after further calls.
func (p *Parser) Next() ([][]byte, error) {
	for {
		switch p.step {
		case StepSize:
			i := bytes.IndexByte(p.buf[p.pos:], LF)
			if i < 0 {
				if len(p.buf)-p.pos > maxSizeLine {
					return nil, &ParseError{Message: "unterminated block length"}
				}
				return nil, nil
			}
			if i > maxSizeLine {
				return nil, &ParseError{Message: "block length line too long"}
			}

			line := bytes.TrimSpace(p.buf[p.pos : p.pos+i])
			p.pos += i + 1

			if len(line) == 0 {
				group := p.blocks
				if group == nil {
					group = [][]byte{}
				}
				p.blocks = nil
				return group, nil
			}

			size, err := strconv.Atoi(string(line))
			if err != nil {
				return nil, &ParseError{Message: "invalid block length", Err: err}
			}
			if size < 0 {
				return nil, &ParseError{Message: "negative block length"}
			}
			if p.MaxBlockSize > 0 && size > p.MaxBlockSize {
				return nil, &ParseError{Message: "block length " + string(line) + " exceeds limit"}
			}

			p.pending = size
			p.step = StepData

		case StepData:
			end := p.pos + p.pending

			// Need the data plus at least the first terminator byte.
			if end >= len(p.buf) {
				return nil, nil
			}

			next := end + 1
			switch p.buf[end] {
			case LF:
			case CR:
				if next >= len(p.buf) {
					return nil, nil
				}
				if p.buf[next] != LF {
					return nil, &ParseError{Message: "invalid block terminator"}
				}
				next++
			default:
				return nil, &ParseError{Message: "invalid block terminator"}
			}

			p.blocks = append(p.blocks, bytes.Clone(p.buf[p.pos:end]))
			p.pos = next
			p.step = StepSize
			p.pending = 0

		default:
			return nil, &ParseError{Message: "invalid parser step " + p.step.String()}
		}
	}
}

// Step returns the current parser state.
func (p *Parser) Step() Step {
	return p.step
}

// Pending returns the length of the data block being waited for in StepData.
func (p *Parser) Pending() int {
	return p.pending
}

// Buffered returns the number of received bytes not consumed yet.
func (p *Parser) Buffered() int {
	return len(p.buf) - p.pos
}

// Reset discards all buffered input and partial state.
func (p *Parser) Reset() {
	p.step = StepSize
	p.pending = 0
	p.buf = p.buf[:0]
	p.pos = 0
	p.blocks = nil
}
