package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"spentd/logger"
	"spentd/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const headerSize = 80

var (
	restEndpoint string
	restClient   = &http.Client{Timeout: 30 * time.Second}
)

func init() {
	viper.SetConfigFile("conf/chain.yaml")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	restEndpoint = strings.TrimSuffix(viper.GetString("rest"), "/")
}

// restGet fetches url into data's storage. The slice comes back on every
// path, errors included, so callers keep recycling the same buffer.
func restGet(url string, data []byte) ([]byte, error) {
	resp, err := restClient.Get(url)
	if err != nil {
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return data, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	buf := bytes.NewBuffer(data[:0])
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return buf.Bytes(), err
	}
	return buf.Bytes(), nil
}

// GetBlockHashByHeight resolves a height to the block hash at the active tip.
func GetBlockHashByHeight(height int) (string, error) {
	url := fmt.Sprintf("%s/rest/blockhashbyheight/%d.hex", restEndpoint, height)
	raw, err := restGet(url, nil)
	if err != nil {
		return "", err
	}
	blkid := strings.TrimSpace(string(raw))
	if len(blkid) < 64 {
		return "", fmt.Errorf("GET %s: short hash %q", url, blkid)
	}
	return blkid[:64], nil
}

// GetBlockHashesRange resolves count consecutive block hashes starting at
// height, batching through the headers endpoint (up to 2000 headers per
// request) and hashing each 80-byte header locally.
func GetBlockHashesRange(start, count int) ([]string, error) {
	hashes := make([]string, 0, count)

	height := start
	limit := start + count
	var data []byte
	for height < limit {
		blkid, err := GetBlockHashByHeight(height)
		if err != nil {
			return nil, err
		}

		batch := limit - height
		if batch > 2000 {
			batch = 2000
		}
		url := fmt.Sprintf("%s/rest/headers/%d/%s.bin", restEndpoint, batch, blkid)
		if data, err = restGet(url, data); err != nil {
			return nil, err
		}
		if len(data) == 0 || len(data)%headerSize != 0 {
			return nil, fmt.Errorf("GET %s: body size %d", url, len(data))
		}

		for off := 0; off < len(data); off += headerSize {
			hashes = append(hashes, utils.HashString(utils.GetHash256(data[off:off+headerSize])))
			height++
		}
	}

	logger.Log.Info("resolved block hashes",
		zap.Int("start", start),
		zap.Int("count", len(hashes)))
	return hashes, nil
}

// GetBlockUndo fetches one block's undo payload. data is recycled between
// calls to avoid re-growing a multi-megabyte buffer per block.
func GetBlockUndo(blkid string, data []byte) ([]byte, error) {
	return restGet(fmt.Sprintf("%s/rest/blockundo/%s.bin", restEndpoint, blkid), data)
}

// GetSpentTxOuts fetches one block's uncompressed spent-output payload.
func GetSpentTxOuts(blkid string, data []byte) ([]byte, error) {
	return restGet(fmt.Sprintf("%s/rest/spenttxouts/%s.bin", restEndpoint, blkid), data)
}

// GetBlock fetches one raw block.
func GetBlock(blkid string, data []byte) ([]byte, error) {
	return restGet(fmt.Sprintf("%s/rest/block/%s.bin", restEndpoint, blkid), data)
}
