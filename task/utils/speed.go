package utils

import (
	"time"

	"spentd/logger"
	"spentd/model"

	"github.com/btcsuite/btcutil"
	"go.uber.org/zap"
)

var (
	start       time.Time = time.Now()
	lastLogTime time.Time
	lastHeight  int
	lastCount   uint64
)

// ReportChunk logs one chunk of decoded blocks with the per-call cost,
// mirroring the reporting cadence of the node-side benchmarks.
func ReportChunk(startHeight, endHeight int, duration time.Duration, stats *model.Stats) {
	calls := endHeight - startHeight
	if calls <= 0 {
		return
	}
	logger.LogErr.Info("chunk",
		zap.Int("start", startHeight),
		zap.Int("end", endHeight),
		zap.Int64("us/call", duration.Microseconds()/int64(calls)),
		zap.String("spent", btcutil.Amount(stats.Value).String()),
		zap.Object("stats", stats),
	)
}

// DecodeSpeed rate-limits per-block progress lines to one per second.
func DecodeSpeed(height, maxHeight int, stats *model.Stats) {
	if height != maxHeight-1 && time.Since(lastLogTime) < time.Second {
		return
	}
	if height < lastHeight {
		lastHeight = 0
	}
	lastLogTime = time.Now()

	logger.LogErr.Info("decoding",
		zap.Int("height", height),
		zap.Int("nblk", height-lastHeight),
		zap.Uint64("nin", stats.Count-lastCount),
		zap.Duration("elapse", time.Since(start)/time.Second),
	)

	lastHeight = height
	lastCount = stats.Count
}
