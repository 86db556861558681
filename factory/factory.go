package factory

import (
	"context"
	"sync"

	"github.com/go-redis/redis"
	"github.com/spf13/viper"

	"reselit-marketplace-backend/config"
	"reselit-marketplace-backend/funds"
	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/marketplace"
	"reselit-marketplace-backend/notify"
)

var bankOnce sync.Once
var logOnce sync.Once
var redisOnce sync.Once
var marketOnce sync.Once

type Factory interface {
	Bank(ctx context.Context) *funds.Bank
	Notifications(ctx context.Context) *notify.Log
	Redis(ctx context.Context) *redis.Client
	Market(ctx context.Context) *marketplace.Market
}

type factory struct {
	bank   *funds.Bank
	log    *notify.Log
	client *redis.Client
	market *marketplace.Market
}

func NewFactory() Factory {
	return &factory{}
}

func (f *factory) Bank(ctx context.Context) *funds.Bank {
	bankOnce.Do(func() {
		f.bank = funds.NewBank(viper.GetString(config.EscrowAccount))
	})
	return f.bank
}

func (f *factory) Notifications(ctx context.Context) *notify.Log {
	logOnce.Do(func() {
		f.log = notify.NewLog()
	})
	return f.log
}

// Redis returns the relay client, or nil when no redis address is configured.
func (f *factory) Redis(ctx context.Context) *redis.Client {
	redisOnce.Do(func() {
		address := viper.GetString(config.RedisAddress)
		if address == "" {
			return
		}

		client := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: viper.GetString(config.RedisPassword),
			DB:       viper.GetInt(config.RedisDB),
		})
		if err := client.Ping().Err(); err != nil {
			logger.Fatalf(ctx, "Could not establish connection to redis: %+v", err)
		}

		f.client = client
	})
	return f.client
}

func (f *factory) Market(ctx context.Context) *marketplace.Market {
	marketOnce.Do(func() {
		f.market = marketplace.New(f.Bank(ctx), f.Notifications(ctx), viper.GetString(config.EscrowAccount))
	})
	return f.market
}
