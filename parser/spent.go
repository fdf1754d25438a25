package parser

import (
	"encoding/binary"
	"fmt"

	"spentd/model"
)

// DecodeSpentTxOuts walks the uncompressed variant of the same payload
// (the node's spenttxouts endpoint): compact-size tx and txin counts as in
// DecodeBlockUndo, but each entry is a consensus-format output — 8-byte
// little-endian satoshi value then a compact-size-prefixed raw script.
// No decompression applies; the histogram is untouched.
func DecodeSpentTxOuts(data []byte, stats *model.Stats) (int, error) {
	c := NewCursor(data)
	txCnt, err := readCount(c)
	if err != nil {
		return c.Pos(), fmt.Errorf("tx count: %w", err)
	}
	for i := 0; i < txCnt; i++ {
		txinCnt, err := readCount(c)
		if err != nil {
			return c.Pos(), fmt.Errorf("tx %d: txin count: %w", i, err)
		}
		for j := 0; j < txinCnt; j++ {
			raw, err := c.view(8)
			if err != nil {
				return c.Pos(), fmt.Errorf("tx %d txin %d: satoshi: %w", i, j, err)
			}
			satoshi := binary.LittleEndian.Uint64(raw)

			scriptLen, err := readCount(c)
			if err != nil {
				return c.Pos(), fmt.Errorf("tx %d txin %d: script size: %w", i, j, err)
			}
			if _, err := c.view(scriptLen); err != nil {
				return c.Pos(), fmt.Errorf("tx %d txin %d: script: %w", i, j, err)
			}

			stats.Count++
			stats.Value += satoshi
			stats.ScriptBytes += uint64(scriptLen)
		}
	}
	return c.Pos(), nil
}
