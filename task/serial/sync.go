package serial

import (
	"spentd/logger"
	"spentd/model"
	"spentd/rdb"
	"spentd/store"

	"go.uber.org/zap"
)

// SyncBlockUndo writes one block's spent-output stats row.
func SyncBlockUndo(height int, blkid string, payloadSize int, stats *model.Stats) {
	if _, err := store.SyncStmtBlkUndo.Exec(
		uint32(height),
		blkid,
		stats.Count,
		stats.Value,
		stats.ScriptBytes,

		stats.ByType[0],
		stats.ByType[1],
		stats.ByType[2],
		stats.ByType[3],
		stats.ByType[4],
		stats.ByType[5],
		stats.ByType[6],

		uint64(payloadSize),
	); err != nil {
		logger.Log.Info("sync-blkundo-err",
			zap.String("blkid", blkid),
			zap.String("err", err.Error()),
		)
	}
}

// UpdateBestHeight publishes scan progress after a block's row is staged.
func UpdateBestHeight(height int) {
	if err := rdb.SetBestHeight(height); err != nil {
		logger.Log.Info("set best height failed",
			zap.Int("height", height),
			zap.Error(err))
	}
}
