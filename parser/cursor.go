package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput means the buffer ended before a complete field was read.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrVarIntTooLarge means a varint kept continuation bits past 64 bits of value.
	ErrVarIntTooLarge = errors.New("varint too large")

	// ErrReservedFieldNonzero means the per-txin reserved varint was not 0.
	// Either the node wrote a format version we don't know, or the data is corrupt.
	ErrReservedFieldNonzero = errors.New("reserved field nonzero")
)

// Cursor walks an immutable byte buffer. All reads fail with
// ErrTruncatedInput once the buffer is exhausted; the position is kept so
// callers can report where a decode broke and verify full consumption.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("offset %d: %w", c.pos, ErrTruncatedInput)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes returns a copy, so decoded scripts stay valid after the caller
// recycles the fetch buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	// compare against Remaining, not pos+n: n can be near MaxInt when a
	// hostile length field decodes huge, and pos+n would wrap negative
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("offset %d: need %d bytes: %w", c.pos, n, ErrTruncatedInput)
	}
	buf := make([]byte, n)
	copy(buf, c.data[c.pos:c.pos+n])
	c.pos += n
	return buf, nil
}

func (c *Cursor) view(n int) ([]byte, error) {
	if n > c.Remaining() {
		return nil, fmt.Errorf("offset %d: need %d bytes: %w", c.pos, n, ErrTruncatedInput)
	}
	raw := c.data[c.pos : c.pos+n]
	c.pos += n
	return raw, nil
}
