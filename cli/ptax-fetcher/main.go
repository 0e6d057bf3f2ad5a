package main

import (
	"context"
	"log"

	"github.com/spf13/viper"

	"github.com/brfinance/ptax-fetcher/cli/cmd"
)

func main() {
	// Environment overrides have to be installed before getConfig reads any
	// key, otherwise PTAX_FETCHER_* variables are silently ignored.
	viper.SetEnvPrefix("PTAX_FETCHER")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, flags and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error while reading in the config file: %v", err)
		}
	}

	config, err := getConfig(context.Background())
	if err != nil {
		log.Fatalf("Error while building the configuration: %v", err)
	}

	if err := cmd.Execute(config); err != nil {
		log.Fatalf("Error while executing command: %v", err)
	}
}
