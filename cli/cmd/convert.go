package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/brfinance/ptax-fetcher/services"
)

func convert(config *Config) *cobra.Command {
	var (
		currency int
		amount   float64
		date     string
	)

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a foreign currency amount into BRL at the closing rate",
	}

	convertCmd.Run = func(cmd *cobra.Command, args []string) {
		logger := log.New(cmd.OutOrStdout(), "convert ", 0)
		errLogger := log.New(cmd.ErrOrStderr(), "convert-error ", 0)

		referenceDate, err := parseFlagDate(date)
		if err != nil {
			errLogger.Printf("ERROR: %v", err)

			return
		}

		if referenceDate.IsZero() {
			referenceDate = time.Now()
		}

		service := services.ConversionService{
			URL:        config.Endpoints.ClosingRates,
			CatalogURL: config.Endpoints.Catalog,
			Client:     config.Client,
			Logger:     config.queryLogger(cmd),
		}

		value, err := service.Convert(config.Ctx, amount, currency, referenceDate)
		if err != nil {
			errLogger.Printf("ERROR: %v", err)

			return
		}

		logger.Printf("%f BRL\n", value)
	}

	convertCmd.Flags().IntVar(&currency, "currency", 0, "Currency code according to the catalog query")
	convertCmd.Flags().Float64Var(&amount, "amount", 1, "Amount in the foreign currency")
	convertCmd.Flags().StringVar(&date, "date", "", "Reference date (dd/mm/yyyy), defaults to today")

	return convertCmd
}
