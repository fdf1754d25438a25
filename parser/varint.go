package parser

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeCVarInt reads the varint format used inside undo records: big-endian
// groups of 7 bits, high bit set while more bytes follow, and the accumulator
// incremented by 1 after every continuation byte. The increment is what makes
// the encoding bijective ([0x81 0x00] is 128, not a long form of 0).
//
// Not the compact-size count format; see DecodeVarIntForBlock for that.
func DecodeCVarInt(c *Cursor) (uint64, error) {
	var n uint64
	for {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if n > math.MaxUint64>>7 {
			return 0, fmt.Errorf("offset %d: %w", c.Pos(), ErrVarIntTooLarge)
		}
		n = (n << 7) | uint64(b&0x7F)
		if b&0x80 == 0 {
			return n, nil
		}
		if n == math.MaxUint64 {
			return 0, fmt.Errorf("offset %d: %w", c.Pos(), ErrVarIntTooLarge)
		}
		n++
	}
}

// DecodeVarIntForBlock reads the standard compact-size integer used for
// tx/txin counts: one byte below 0xfd, otherwise a 0xfd/0xfe/0xff marker
// followed by a little-endian 2/4/8 byte value.
func DecodeVarIntForBlock(c *Cursor) (uint64, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case 0xfd:
		raw, err := c.view(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(raw)), nil
	case 0xfe:
		raw, err := c.view(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(raw)), nil
	case 0xff:
		raw, err := c.view(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(raw), nil
	default:
		return uint64(b), nil
	}
}

// readCount reads a compact-size loop bound and rejects values that cannot
// fit in the remaining buffer. Every counted element is at least one byte,
// so a count above Remaining() is a framing lie and would otherwise drive
// unbounded work on hostile input.
func readCount(c *Cursor) (int, error) {
	cnt, err := DecodeVarIntForBlock(c)
	if err != nil {
		return 0, err
	}
	if cnt > uint64(c.Remaining()) {
		return 0, fmt.Errorf("offset %d: count %d exceeds %d remaining bytes: %w",
			c.Pos(), cnt, c.Remaining(), ErrTruncatedInput)
	}
	return int(cnt), nil
}
