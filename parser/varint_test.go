package parser

import (
	"errors"
	"testing"
)

func TestDecodeCVarInt(t *testing.T) {
	cases := []struct {
		raw  []byte
		want uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		// The continuation increment: without the +1 these would decode
		// to 0 and 128 respectively.
		{[]byte{0x80, 0x00}, 128},
		{[]byte{0x81, 0x00}, 256},
		{[]byte{0x80, 0x7f}, 255},
		{[]byte{0x82, 0xfe, 0x7f}, 65535},
		{[]byte{0x32}, 50},
	}
	for _, tc := range cases {
		c := NewCursor(tc.raw)
		got, err := DecodeCVarInt(c)
		if err != nil {
			t.Fatalf("cvarint(%x): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("cvarint(%x) = %d, want %d", tc.raw, got, tc.want)
		}
		if c.Remaining() != 0 {
			t.Errorf("cvarint(%x) left %d bytes", tc.raw, c.Remaining())
		}
	}
}

func TestDecodeCVarIntTruncated(t *testing.T) {
	for _, raw := range [][]byte{{}, {0x80}, {0xff, 0xff}} {
		if _, err := DecodeCVarInt(NewCursor(raw)); !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("cvarint(%x) err = %v, want ErrTruncatedInput", raw, err)
		}
	}
}

func TestDecodeCVarIntTooLarge(t *testing.T) {
	// 64 bits of value plus spare continuation bytes.
	raw := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}
	if _, err := DecodeCVarInt(NewCursor(raw)); !errors.Is(err, ErrVarIntTooLarge) {
		t.Errorf("cvarint(%x) err = %v, want ErrVarIntTooLarge", raw, err)
	}
}

func TestDecodeVarIntForBlock(t *testing.T) {
	cases := []struct {
		raw  []byte
		want uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0xfc}, 252},
		{[]byte{0xfd, 0xfd, 0x00}, 253},
		{[]byte{0xfd, 0xff, 0xff}, 65535},
		{[]byte{0xfe, 0x00, 0x00, 0x01, 0x00}, 65536},
		{[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}, 1 << 32},
	}
	for _, tc := range cases {
		got, err := DecodeVarIntForBlock(NewCursor(tc.raw))
		if err != nil {
			t.Fatalf("varint(%x): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("varint(%x) = %d, want %d", tc.raw, got, tc.want)
		}
	}

	if _, err := DecodeVarIntForBlock(NewCursor([]byte{0xfd, 0x01})); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("short varint err = %v, want ErrTruncatedInput", err)
	}
}

func TestReadCountBound(t *testing.T) {
	// A count claiming more elements than bytes left must be rejected
	// before any loop trusts it.
	raw := []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0x00}
	if _, err := readCount(NewCursor(raw)); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("oversized count err = %v, want ErrTruncatedInput", err)
	}
}
