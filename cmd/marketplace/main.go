package main

import (
	"context"
	"flag"
	l "log"

	"github.com/codegangsta/negroni"
	"github.com/spf13/viper"

	"reselit-marketplace-backend/config"
	c "reselit-marketplace-backend/context"
	"reselit-marketplace-backend/factory"
	"reselit-marketplace-backend/logger"
	"reselit-marketplace-backend/notify"
	"reselit-marketplace-backend/router"
)

const defaultCorrelationID = "00000000.00000000"

var ctx context.Context

func init() {
	ctx = c.SetContextWithValue(context.Background(), c.ContextKeyCorrelationID, defaultCorrelationID)
}

func main() {
	cfgPath := flag.String("CONFIG_PATH", "./config.yaml", "Path to config file")
	flag.Parse()

	viper.SetConfigFile(*cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		l.Fatalln("error reading config")
	}

	logger.SetLevel(viper.GetString(config.LogLevel))

	f := factory.NewFactory()
	muxRouter := router.Router(ctx, f)

	if client := f.Redis(ctx); client != nil {
		relay := notify.NewRelay(client, viper.GetString(config.RedisStream), f.Notifications(ctx))
		go func() {
			if err := relay.Run(ctx); err != nil && err != context.Canceled {
				logger.Errorf(ctx, "relay stopped: %+v", err)
			}
		}()
	}

	n := negroni.New()
	n.UseHandler(muxRouter)
	n.Run(viper.GetString(config.Port))
}
