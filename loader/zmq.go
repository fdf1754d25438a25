package loader

import (
	"encoding/hex"

	"spentd/logger"
	"spentd/utils"

	"github.com/zeromq/goczmq"
	"go.uber.org/zap"
)

// ZmqNotify subscribes to the node's hashblock notifications and forwards
// each new block hash (display order) into the channel. Used by follow mode
// to keep decoding at the chain tip.
func ZmqNotify(endpoint string, block chan string) {
	logger.Log.Info("ZeroMQ started to listen for blocks")
	subscriber, err := goczmq.NewSub(endpoint, "hashblock")
	if err != nil {
		logger.Log.Fatal("ZMQ connect failed", zap.Error(err))
		return
	}
	defer subscriber.Destroy()

	for {
		msg, _, err := subscriber.RecvFrame()
		if err != nil {
			logger.Log.Info("Error ZMQ RecvFrame", zap.Error(err))
			continue
		}

		if len(msg) == 32 {
			block <- utils.HashString(msg)
			logger.Log.Info("new block", zap.String("blkid", utils.HashString(msg)))
		} else {
			logger.Log.Info("skip frame", zap.String("frame", hex.EncodeToString(msg)))
		}
	}
}
