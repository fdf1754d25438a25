package model

import (
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// UndoRecord is one spent output recovered from a block's undo data.
type UndoRecord struct {
	Height     uint32 // height of the block that created the output
	IsCoinbase bool
	Satoshi    uint64
	ScriptType uint32 // template code 0..5, 6 for raw
	PkScript   []byte
}

func (r *UndoRecord) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("h", r.Height)
	enc.AddUint64("v", r.Satoshi)
	enc.AddUint32("t", r.ScriptType)
	return nil
}

// Histogram counts decoded scripts per template code, bucket 6 = raw.
type Histogram [7]uint64

func (h Histogram) MarshalLogArray(arr zapcore.ArrayEncoder) error {
	for i := range h {
		arr.AppendUint64(h[i])
	}
	return nil
}

// Records is the per-block record list handed to address consumers.
type Records []*UndoRecord

func (rr Records) MarshalLogArray(arr zapcore.ArrayEncoder) error {
	var err error
	for i := range rr {
		err = multierr.Append(err, arr.AppendObject(rr[i]))
	}
	return err
}

// Stats accumulates over one decode pass. Single-writer: each worker owns
// its own instance and merges with Add afterwards.
type Stats struct {
	Count       uint64    // spent outputs seen
	Value       uint64    // satoshis
	ScriptBytes uint64    // decompressed script length total
	ByType      Histogram // per-template counts
}

func (s *Stats) AddRecord(r *UndoRecord) {
	s.Count++
	s.Value += r.Satoshi
	s.ScriptBytes += uint64(len(r.PkScript))
	s.ByType[r.ScriptType]++
}

func (s *Stats) Add(o *Stats) {
	s.Count += o.Count
	s.Value += o.Value
	s.ScriptBytes += o.ScriptBytes
	for i := range o.ByType {
		s.ByType[i] += o.ByType[i]
	}
}

func (s *Stats) Reset() {
	*s = Stats{}
}

func (s *Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("nin", s.Count)
	enc.AddUint64("satoshi", s.Value)
	enc.AddUint64("scripts", s.ScriptBytes)
	return enc.AddArray("ntype", s.ByType)
}
