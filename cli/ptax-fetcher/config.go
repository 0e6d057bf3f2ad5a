package main

import (
	"context"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/spf13/viper"

	ptax "github.com/brfinance/ptax-fetcher"
	"github.com/brfinance/ptax-fetcher/cli/cmd"
)

func getLogger() kitlog.Logger {
	if !viper.GetBool("debug") {
		return kitlog.NewNopLogger()
	}

	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
}

func getConfig(ctx context.Context) (*cmd.Config, error) {
	queries, err := ptax.ConvertToQueriesFromStringSlice(viper.GetStringSlice("queries"))
	if err != nil {
		return nil, err
	}

	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &cmd.Config{
		Ctx:    ctx,
		Client: &http.Client{Timeout: timeout},
		Logger: getLogger(),
		Endpoints: cmd.Endpoints{
			Catalog:      viper.GetString("endpoints.catalog"),
			ClosingRates: viper.GetString("endpoints.closingrates"),
			Snapshot:     viper.GetString("endpoints.snapshot"),
		},
		Queries: queries,
	}, nil
}
