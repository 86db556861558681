package config

import (
	"github.com/spf13/viper"
)

const (
	Port     = "server.port"
	LogLevel = "server.log_level"

	EscrowAccount = "market.escrow_account"

	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"
	RedisStream   = "redis.stream"
)

func init() {
	viper.AutomaticEnv()
	viper.SetDefault(Port, ":9000")
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(EscrowAccount, "market:escrow")
	viper.SetDefault(RedisStream, "marketplace:notifications")
}
