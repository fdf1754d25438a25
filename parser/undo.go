package parser

import (
	"fmt"

	"spentd/model"
	"spentd/parser/script"
)

// NeedStop is set by the signal handler to end the scan loop early.
var NeedStop bool

// DecodeUndoRecord reads one spent output from the cursor. Layout per txin:
//
//	cvarint  height*2 + coinbase flag
//	cvarint  reserved, 0 in every format version written so far
//	cvarint  compressed amount
//	cvarint  script discriminator: <6 template code, else raw length+6
//
// Nothing is applied to any accumulator here; the caller commits the record
// only after it decoded cleanly.
func DecodeUndoRecord(c *Cursor) (*model.UndoRecord, error) {
	heightCoinbase, err := DecodeCVarInt(c)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}

	reserved, err := DecodeCVarInt(c)
	if err != nil {
		return nil, fmt.Errorf("reserved: %w", err)
	}
	if reserved != 0 {
		return nil, fmt.Errorf("offset %d: got %d: %w", c.Pos(), reserved, ErrReservedFieldNonzero)
	}

	compressed, err := DecodeCVarInt(c)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	rec := &model.UndoRecord{
		Height:     uint32(heightCoinbase >> 1),
		IsCoinbase: heightCoinbase&1 == 1,
		Satoshi:    DecompressAmount(compressed),
	}

	disc, err := DecodeCVarInt(c)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if disc < script.SpecialScripts {
		code := byte(disc)
		payload, err := c.ReadBytes(script.PayloadSize(code))
		if err != nil {
			return nil, fmt.Errorf("script payload: %w", err)
		}
		rec.PkScript, err = script.Decompress(code, payload)
		if err != nil {
			return nil, err
		}
		rec.ScriptType = uint32(code)
	} else {
		rec.PkScript, err = c.ReadBytes(int(disc - script.SpecialScripts))
		if err != nil {
			return nil, fmt.Errorf("raw script: %w", err)
		}
		rec.ScriptType = script.TypeRaw
	}
	return rec, nil
}

// DecodeBlockUndo walks one block's undo payload: compact-size tx count,
// then per tx a compact-size txin count and that many records. Returns the
// number of bytes consumed; callers compare it against len(data) to catch
// framing errors (the payload must be consumed exactly).
//
// On error stats keeps only the records that fully decoded before it.
func DecodeBlockUndo(data []byte, stats *model.Stats) (int, error) {
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
			rec, err := DecodeUndoRecord(c)
			if err != nil {
				return c.Pos(), fmt.Errorf("tx %d txin %d: %w", i, j, err)
			}
			stats.AddRecord(rec)
		}
	}
	return c.Pos(), nil
}

// DecodeBlockUndoRecords is DecodeBlockUndo for consumers that want the
// script bytes too (address indexing), at the cost of keeping every record.
func DecodeBlockUndoRecords(data []byte, stats *model.Stats) (model.Records, error) {
	c := NewCursor(data)
	txCnt, err := readCount(c)
	if err != nil {
		return nil, fmt.Errorf("tx count: %w", err)
	}
	var records model.Records
	for i := 0; i < txCnt; i++ {
		txinCnt, err := readCount(c)
		if err != nil {
			return nil, fmt.Errorf("tx %d: txin count: %w", i, err)
		}
		for j := 0; j < txinCnt; j++ {
			rec, err := DecodeUndoRecord(c)
			if err != nil {
				return nil, fmt.Errorf("tx %d txin %d: %w", i, j, err)
			}
			stats.AddRecord(rec)
			records = append(records, rec)
		}
	}
	if c.Remaining() != 0 {
		return nil, fmt.Errorf("offset %d: %d trailing bytes", c.Pos(), c.Remaining())
	}
	return records, nil
}
