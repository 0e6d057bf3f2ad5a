package cmd

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ptax "github.com/brfinance/ptax-fetcher"
)

var (
	rootCmd = &cobra.Command{
		Use:     "ptax-fetcher",
		Short:   "Banco Central do Brasil PTAX closing rate fetcher",
		Version: "v1.0.0",
	}
	debug      bool
	configFile string
)

type (
	Endpoints struct {
		Catalog      string
		ClosingRates string
		Snapshot     string
	}

	Config struct {
		Ctx       context.Context
		Client    *http.Client
		Logger    log.Logger
		Endpoints Endpoints
		Queries   []ptax.Query
		debug     *bool
	}
)

func Execute(config *Config) error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")

	config.debug = &debug

	// Flags are only parsed once a command runs, so the file named by
	// --config is read here and overrides what main wired from defaults.
	cobra.OnInitialize(func() {
		absolutePath, _ := filepath.Abs(configFile)
		viper.SetConfigFile(absolutePath)

		if err := viper.ReadInConfig(); err != nil {
			return
		}

		config.refresh()
	})

	rootCmd.AddCommand(fetch(config))
	rootCmd.AddCommand(convert(config))

	return rootCmd.Execute()
}

// refresh pulls the viper keys again after the config file named by --config
// has been read.
func (c *Config) refresh() {
	if url := viper.GetString("endpoints.catalog"); url != "" {
		c.Endpoints.Catalog = url
	}

	if url := viper.GetString("endpoints.closingrates"); url != "" {
		c.Endpoints.ClosingRates = url
	}

	if url := viper.GetString("endpoints.snapshot"); url != "" {
		c.Endpoints.Snapshot = url
	}

	if strs := viper.GetStringSlice("queries"); len(strs) != 0 {
		if queries, err := ptax.ConvertToQueriesFromStringSlice(strs); err == nil {
			c.Queries = queries
		}
	}
}

// queryLogger picks the request logger handed to the fetchers. The --debug
// flag forces a logfmt logger on the command's stderr regardless of what the
// configuration wired.
func (c *Config) queryLogger(cmd *cobra.Command) log.Logger {
	if c.debug != nil && *c.debug {
		return log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	}

	if c.Logger != nil {
		return c.Logger
	}

	return log.NewNopLogger()
}
