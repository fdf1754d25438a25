package parser

import (
	"encoding/binary"
	"fmt"

	"spentd/model"
)

// DecodeBlock walks a full raw block and counts the created outputs the same
// way the undo decoders count the spent ones: output count, value and script
// bytes. Used by the block benchmark mode for comparing decode cost against
// the undo path.
func DecodeBlock(data []byte, stats *model.Stats) (int, error) {
	c := NewCursor(data)
	if _, err := c.view(80); err != nil { // header
		return c.Pos(), fmt.Errorf("header: %w", err)
	}
	txCnt, err := readCount(c)
	if err != nil {
		return c.Pos(), fmt.Errorf("tx count: %w", err)
	}
	for i := 0; i < txCnt; i++ {
		if err := decodeTx(c, stats); err != nil {
			return c.Pos(), fmt.Errorf("tx %d: %w", i, err)
		}
	}
	return c.Pos(), nil
}

func decodeTx(c *Cursor, stats *model.Stats) error {
	if _, err := c.view(4); err != nil { // version
		return err
	}

	txinCnt, err := readCount(c)
	if err != nil {
		return fmt.Errorf("txin count: %w", err)
	}
	// Segwit marker: a zero input count is really 0x00 0x01 followed by the
	// real counts, with witness data after the outputs.
	hasWitness := false
	if txinCnt == 0 {
		flag, err := c.ReadByte()
		if err != nil {
			return err
		}
		if flag != 0x01 {
			return fmt.Errorf("offset %d: segwit flag %#02x: %w", c.Pos(), flag, ErrTruncatedInput)
		}
		hasWitness = true
		if txinCnt, err = readCount(c); err != nil {
			return fmt.Errorf("txin count: %w", err)
		}
	}

	for j := 0; j < txinCnt; j++ {
		if _, err := c.view(36); err != nil { // outpoint
			return fmt.Errorf("txin %d: %w", j, err)
		}
		sigLen, err := readCount(c)
		if err != nil {
			return fmt.Errorf("txin %d: script size: %w", j, err)
		}
		if _, err := c.view(sigLen + 4); err != nil { // scriptSig + sequence
			return fmt.Errorf("txin %d: %w", j, err)
		}
	}

	txoutCnt, err := readCount(c)
	if err != nil {
		return fmt.Errorf("txout count: %w", err)
	}
	for k := 0; k < txoutCnt; k++ {
		raw, err := c.view(8)
		if err != nil {
			return fmt.Errorf("txout %d: satoshi: %w", k, err)
		}
		satoshi := binary.LittleEndian.Uint64(raw)
		pkLen, err := readCount(c)
		if err != nil {
			return fmt.Errorf("txout %d: script size: %w", k, err)
		}
		if _, err := c.view(pkLen); err != nil {
			return fmt.Errorf("txout %d: script: %w", k, err)
		}
		stats.Count++
		stats.Value += satoshi
		stats.ScriptBytes += uint64(pkLen)
	}

	if hasWitness {
		for j := 0; j < txinCnt; j++ {
			itemCnt, err := readCount(c)
			if err != nil {
				return fmt.Errorf("witness %d: %w", j, err)
			}
			for w := 0; w < itemCnt; w++ {
				itemLen, err := readCount(c)
				if err != nil {
					return fmt.Errorf("witness %d item %d: %w", j, w, err)
				}
				if _, err := c.view(itemLen); err != nil {
					return fmt.Errorf("witness %d item %d: %w", j, w, err)
				}
			}
		}
	}

	_, err = c.view(4) // locktime
	return err
}
