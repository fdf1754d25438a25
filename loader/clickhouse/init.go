package clickhouse

import (
	"database/sql"
	"fmt"

	"spentd/logger"

	"github.com/ClickHouse/clickhouse-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var CK *sql.DB

// Init opens the ClickHouse pool described by conf/db.yaml. Called only
// when block stats are synced to the database.
func Init() {
	viper.SetConfigFile("conf/db.yaml")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	address := viper.GetString("address")
	database := viper.GetString("database")
	username := viper.GetString("username")
	password := viper.GetString("password")

	dsn := fmt.Sprintf("tcp://%s?database=%s&username=%s&password=%s",
		address, database, username, password)

	var err error
	CK, err = sql.Open("clickhouse", dsn)
	if err != nil {
		logger.Log.Fatal("clickhouse open failed", zap.Error(err))
		return
	}
	if err := CK.Ping(); err != nil {
		if exception, ok := err.(*clickhouse.Exception); ok {
			logger.Log.Fatal("clickhouse ping failed",
				zap.Int32("code", exception.Code),
				zap.String("msg", exception.Message))
		} else {
			logger.Log.Fatal("clickhouse ping failed", zap.Error(err))
		}
	}
}

type scanRowFunc func(rows *sql.Rows) (interface{}, error)

// ScanOne runs a query expected to produce at most one row.
func ScanOne(query string, srf scanRowFunc) (interface{}, error) {
	rows, err := CK.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return srf(rows)
}
