package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"syscall"
	"time"

	"spentd/loader"
	"spentd/loader/clickhouse"
	"spentd/logger"
	"spentd/model"
	"spentd/parser"
	"spentd/rdb"
	"spentd/store"
	"spentd/task/serial"
	taskUtils "spentd/task/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	startBlockHeight int
	endBlockHeight   int
	chunkSize        int
	scanType         string
	isFollow         bool
	isSync           bool

	zmqEndpoint string

	cpuProfile   string
	memProfile   string
	traceProfile string
)

func init() {
	flag.StringVar(&cpuProfile, "cpu", "", "write cpu profile to file")
	flag.StringVar(&memProfile, "mem", "", "write mem profile to file")
	flag.StringVar(&traceProfile, "trace", "", "write trace profile to file")

	flag.IntVar(&startBlockHeight, "start", 0, "start block height")
	flag.IntVar(&endBlockHeight, "end", -1, "end block height, exclusive; node tip if negative")
	flag.IntVar(&chunkSize, "chunk", 1000, "blocks per stats chunk")
	flag.StringVar(&scanType, "type", "blockundo", "payload to decode: blockundo/spenttxouts/block")
	flag.BoolVar(&isFollow, "follow", false, "keep decoding new blocks from zmq after the scan")
	flag.BoolVar(&isSync, "sync", false, "sync per-block stats to clickhouse/redis")

	flag.Parse()

	viper.SetConfigFile("conf/chain.yaml")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}
	zmqEndpoint = viper.GetString("zmq")

	if isSync {
		rdb.Client = rdb.Init("conf/redis.yaml")
		clickhouse.Init()
	}
}

func fetchPayload(blkid string, data []byte) ([]byte, error) {
	switch scanType {
	case "spenttxouts":
		return loader.GetSpentTxOuts(blkid, data)
	case "block":
		return loader.GetBlock(blkid, data)
	default:
		return loader.GetBlockUndo(blkid, data)
	}
}

func decodePayload(data []byte, stats *model.Stats) (int, error) {
	switch scanType {
	case "spenttxouts":
		return parser.DecodeSpentTxOuts(data, stats)
	case "block":
		return parser.DecodeBlock(data, stats)
	default:
		return parser.DecodeBlockUndo(data, stats)
	}
}

// decodeOneBlock fetches and decodes a single block's payload, returning its
// private stats so a failed decode never leaks into the totals.
func decodeOneBlock(height int, blkid string, data []byte) ([]byte, *model.Stats, time.Duration, error) {
	data, err := fetchPayload(blkid, data)
	if err != nil {
		return data, nil, 0, fmt.Errorf("fetch %s: %w", blkid, err)
	}

	var stats model.Stats
	t := time.Now()
	n, err := decodePayload(data, &stats)
	elapsed := time.Since(t)
	if err != nil {
		return data, nil, elapsed, fmt.Errorf("decode %s at %d: %w", blkid, height, err)
	}
	if n != len(data) {
		return data, nil, elapsed, fmt.Errorf("decode %s at %d: consumed %d of %d bytes", blkid, height, n, len(data))
	}
	return data, &stats, elapsed, nil
}

func scanBlocks() bool {
	// the table must exist even when the scan range turns out empty,
	// follow mode prepares inserts against it
	if isSync && !store.CreateSyncCk() {
		return false
	}

	if endBlockHeight < 0 {
		loader.InitRpc()
		tip := loader.GetBlockCountRPC()
		if tip <= 0 {
			logger.Log.Error("cannot resolve node tip")
			return false
		}
		endBlockHeight = tip + 1
	}
	if endBlockHeight <= startBlockHeight {
		logger.Log.Info("nothing to scan",
			zap.Int("start", startBlockHeight),
			zap.Int("end", endBlockHeight))
		return true
	}

	hashes, err := loader.GetBlockHashesRange(startBlockHeight, endBlockHeight-startBlockHeight)
	if err != nil {
		logger.Log.Error("resolve hashes failed", zap.Error(err))
		return false
	}

	if isSync && !store.PrepareSyncCk() {
		return false
	}

	var (
		totalStats model.Stats
		chunkStats model.Stats

		chunkStart    = startBlockHeight
		chunkDuration time.Duration

		data = make([]byte, 0, 10*1024*1024)
	)
	for i, blkid := range hashes {
		if parser.NeedStop {
			break
		}
		height := startBlockHeight + i

		var (
			blockStats *model.Stats
			elapsed    time.Duration
		)
		data, blockStats, elapsed, err = decodeOneBlock(height, blkid, data)
		if err != nil {
			logger.Log.Error("scan aborted", zap.Error(err))
			if isSync {
				store.RollbackSyncCk()
			}
			return false
		}
		chunkDuration += elapsed
		chunkStats.Add(blockStats)
		totalStats.Add(blockStats)

		if isSync {
			serial.SyncBlockUndo(height, blkid, len(data), blockStats)
		}
		taskUtils.DecodeSpeed(height, endBlockHeight, &totalStats)

		if (i+1)%chunkSize == 0 || i == len(hashes)-1 {
			taskUtils.ReportChunk(chunkStart, height+1, chunkDuration, &chunkStats)
			chunkStats.Reset()
			chunkDuration = 0
			chunkStart = height + 1
		}
	}

	if isSync {
		if !store.CommitSyncCk() {
			return false
		}
		serial.UpdateBestHeight(chunkStart - 1)
	}
	logger.Log.Info("scan finished",
		zap.Int("start", startBlockHeight),
		zap.Int("end", chunkStart),
		zap.Object("stats", &totalStats))
	return true
}

// followBlocks decodes each new block announced over zmq until stopped.
func followBlocks() {
	newBlockNotify := make(chan string, 16)
	go loader.ZmqNotify(zmqEndpoint, newBlockNotify)

	height := endBlockHeight // next expected height
	var data []byte
	for blkid := range newBlockNotify {
		if parser.NeedStop {
			break
		}

		var (
			blockStats *model.Stats
			elapsed    time.Duration
			err        error
		)
		data, blockStats, elapsed, err = decodeOneBlock(height, blkid, data)
		if err != nil {
			logger.Log.Error("decode new block failed", zap.Error(err))
			continue
		}

		logger.Log.Info("new block decoded",
			zap.Int("height", height),
			zap.String("blkid", blkid),
			zap.Int64("us", elapsed.Microseconds()),
			zap.Object("stats", blockStats))

		if isSync {
			if store.PrepareSyncCk() {
				serial.SyncBlockUndo(height, blkid, len(data), blockStats)
				store.CommitSyncCk()
				serial.UpdateBestHeight(height)
			}
		}
		height++
	}
}

func main() {
	// pprof
	go func() {
		http.ListenAndServe("0.0.0.0:8000", nil)
	}()

	if cpuProfile != "" {
		cpuf, err := os.Create(cpuProfile)
		if err != nil {
			panic(err)
		}
		pprof.StartCPUProfile(cpuf)
		defer pprof.StopCPUProfile()
	}
	if traceProfile != "" {
		tracef, err := os.Create(traceProfile)
		if err != nil {
			panic(err)
		}
		trace.Start(tracef)
		defer tracef.Close()
		defer trace.Stop()
	}

	sigCtrl := make(chan os.Signal, 1)
	signal.Notify(sigCtrl, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range sigCtrl {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				triggerStop()
			default:
				logger.Log.Info("other signal", zap.String("sig", s.String()))
			}
		}
	}()

	ok := scanBlocks()
	if ok && isFollow && !parser.NeedStop {
		followBlocks()
	}
	logger.SyncLog()

	if memProfile != "" {
		memf, err := os.Create(memProfile)
		if err != nil {
			panic(err)
		}
		pprof.WriteHeapProfile(memf)
		memf.Close()
	}

	if !ok || parser.NeedStop {
		os.Exit(1)
	}
}

func triggerStop() {
	logger.Log.Info("program exit...")
	parser.NeedStop = true
}
