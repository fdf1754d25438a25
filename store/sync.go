package store

import (
	"database/sql"
	"fmt"

	"spentd/loader/clickhouse"
	"spentd/logger"

	"go.uber.org/zap"
)

var (
	SyncStmtBlkUndo *sql.Stmt

	syncBlkUndo *sql.Tx
)

const (
	sqlBlkUndoPattern string = "INSERT INTO %s (height, blkid, nin, satoshi, scripts, np2pkh, np2sh, np2pk_comp2, np2pk_comp3, np2pk_full4, np2pk_full5, nraw, payload_size) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	sqlCreateBlkUndo string = `
CREATE TABLE IF NOT EXISTS blkundo_height (
	height       UInt32,
	blkid        FixedString(64),
	nin          UInt64,
	satoshi      UInt64,
	scripts      UInt64,
	np2pkh       UInt64,
	np2sh        UInt64,
	np2pk_comp2  UInt64,
	np2pk_comp3  UInt64,
	np2pk_full4  UInt64,
	np2pk_full5  UInt64,
	nraw         UInt64,
	payload_size UInt64
) engine=MergeTree()
ORDER BY height
PARTITION BY intDiv(height, 210000);`
)

func CreateSyncCk() bool {
	if _, err := clickhouse.CK.Exec(sqlCreateBlkUndo); err != nil {
		logger.Log.Error("create-blkundo", zap.Error(err))
		return false
	}
	return true
}

func PrepareSyncCk() bool {
	sqlBlkUndo := fmt.Sprintf(sqlBlkUndoPattern, "blkundo_height")

	var err error
	syncBlkUndo, err = clickhouse.CK.Begin()
	if err != nil {
		logger.Log.Error("sync-begin-blkundo", zap.Error(err))
		return false
	}
	SyncStmtBlkUndo, err = syncBlkUndo.Prepare(sqlBlkUndo)
	if err != nil {
		logger.Log.Error("sync-prepare-blkundo", zap.Error(err))
		return false
	}
	return true
}

func CommitSyncCk() bool {
	logger.Log.Info("sync commit...")
	defer SyncStmtBlkUndo.Close()

	if err := syncBlkUndo.Commit(); err != nil {
		logger.Log.Error("sync-commit-blkundo", zap.Error(err))
		return false
	}
	return true
}

func RollbackSyncCk() {
	SyncStmtBlkUndo.Close()
	if err := syncBlkUndo.Rollback(); err != nil {
		logger.Log.Error("sync-rollback-blkundo", zap.Error(err))
	}
}
