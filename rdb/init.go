package rdb

import (
	"context"
	"fmt"

	redis "github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

var (
	Client redis.UniversalClient
	ctx    = context.Background()
)

// Init builds the redis client from a config file. Redis carries the scan
// progress (best synced height) shared with downstream consumers.
func Init(conf string) redis.UniversalClient {
	viper.SetConfigFile(conf)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	addrs := viper.GetStringSlice("addrs")
	password := viper.GetString("password")
	database := viper.GetInt("database")
	dialTimeout := viper.GetDuration("dialTimeout")
	readTimeout := viper.GetDuration("readTimeout")
	writeTimeout := viper.GetDuration("writeTimeout")
	poolSize := viper.GetInt("poolSize")
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        addrs,
		Password:     password,
		DB:           database,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
	})
}

// BestHeightKey tracks the last block whose stats were synced.
const BestHeightKey = "spentd:best_height"

func SetBestHeight(height int) error {
	return Client.Set(ctx, BestHeightKey, height, 0).Err()
}

func GetBestHeight() (int, error) {
	height, err := Client.Get(ctx, BestHeightKey).Int()
	if err == redis.Nil {
		return -1, nil
	}
	return height, err
}
