package loader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"spentd/logger"

	"github.com/spf13/viper"
	jsonrpc "github.com/ybbus/jsonrpc/v2"
	"go.uber.org/zap"
)

var rpcClient jsonrpc.RPCClient

// InitRpc connects the node JSON-RPC client, used when the REST interface
// is unavailable for height resolution.
func InitRpc() {
	viper.SetConfigFile("conf/chain.yaml")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	rpcAddress := viper.GetString("rpc")
	rpcAuth := viper.GetString("rpc_auth")
	rpcClient = jsonrpc.NewClientWithOpts(rpcAddress, &jsonrpc.RPCClientOpts{
		CustomHeaders: map[string]string{
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(rpcAuth)),
		},
	})
}

func GetBlockCountRPC() int {
	response, err := rpcClient.Call("getblockcount", []string{})
	if err != nil {
		logger.Log.Info("call failed", zap.Error(err))
		return 0
	}

	if response.Error != nil {
		logger.Log.Info("Receive remote return", zap.Any("response", response))
		return 0
	}

	blockCountString, ok := response.Result.(json.Number)
	if !ok {
		logger.Log.Info("block count not number",
			zap.Any("result", response.Result),
		)
		return 0
	}

	blockCount, err := blockCountString.Int64()
	if err != nil {
		logger.Log.Info("block count not int", zap.Any("count", blockCountString))
		return 0
	}
	return int(blockCount)
}

func GetBlockHashByHeightRPC(height int) string {
	response, err := rpcClient.Call("getblockhash", []interface{}{height})
	if err != nil {
		logger.Log.Info("call failed", zap.Error(err))
		return ""
	}

	if response.Error != nil {
		logger.Log.Info("Receive remote return",
			zap.Int("height", height),
			zap.Any("response", response))
		return ""
	}

	blkid, ok := response.Result.(string)
	if !ok {
		logger.Log.Info("blockhash not string", zap.Any("result", response.Result))
		return ""
	}
	return blkid
}
