package cmd

import (
	"fmt"
	"log"
	"strconv"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	ptax "github.com/brfinance/ptax-fetcher"
	"github.com/brfinance/ptax-fetcher/fetchers"
)

const flagDateLayout = "02/01/2006"

type fetchFlags struct {
	queries  []string
	currency int
	from     string
	to       string
	date     string
}

func parseFlagDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	return time.Parse(flagDateLayout, value)
}

func formatDate(date ptax.NullDate) string {
	if !date.Valid {
		return "N/D"
	}

	return date.Date.Format(flagDateLayout)
}

func formatRate(rate ptax.NullFloat64) string {
	if !rate.Valid {
		return "N/D"
	}

	return strconv.FormatFloat(rate.Float64, 'f', -1, 64)
}

func runCatalog(config *Config, queryLogger kitlog.Logger, logger *log.Logger) error {
	fetcher := fetchers.NewCatalogFetcher(fetchers.CatalogConfig{
		BaseConfig: fetchers.BaseConfig{
			URL:    config.Endpoints.Catalog,
			Client: config.Client,
			Logger: queryLogger,
		},
	})

	records, err := fetcher.Fetch(config.Ctx)
	if err != nil {
		return err
	}

	for i, record := range records {
		logger.Printf("%d\t%s\t%s\n", i, record.Code, record.Name)
	}

	return nil
}

func runClosingRates(config *Config, flags *fetchFlags, queryLogger kitlog.Logger, logger *log.Logger) error {
	initialDate, err := parseFlagDate(flags.from)
	if err != nil {
		return fmt.Errorf("parsing --from: %w", err)
	}

	finalDate, err := parseFlagDate(flags.to)
	if err != nil {
		return fmt.Errorf("parsing --to: %w", err)
	}

	fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		BaseConfig: fetchers.BaseConfig{
			URL:    config.Endpoints.ClosingRates,
			Client: config.Client,
			Logger: queryLogger,
		},
		CatalogURL:   config.Endpoints.Catalog,
		CurrencyCode: flags.currency,
		InitialDate:  initialDate,
		FinalDate:    finalDate,
	})
	if err != nil {
		return err
	}

	rows, err := fetcher.Fetch(config.Ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		logger.Printf("%s\t%s\t%s\tbuy: %s\tsell: %s\n",
			formatDate(row.Date), row.Kind, row.Currency, formatRate(row.Buy), formatRate(row.Sell))
	}

	return nil
}

func runSnapshot(config *Config, flags *fetchFlags, queryLogger kitlog.Logger, logger *log.Logger) error {
	referenceDate, err := parseFlagDate(flags.date)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	fetcher, err := fetchers.NewSnapshotFetcher(fetchers.SnapshotConfig{
		BaseConfig: fetchers.BaseConfig{
			URL:    config.Endpoints.Snapshot,
			Client: config.Client,
			Logger: queryLogger,
		},
		ReferenceDate: referenceDate,
	})
	if err != nil {
		return err
	}

	rows, err := fetcher.Fetch(config.Ctx)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		logger.Println("no rates published for the requested date")

		return nil
	}

	for _, row := range rows {
		logger.Printf("%s\t%s\t%s\t%s\tbuy: %s\tsell: %s\tparity buy: %s\tparity sell: %s\n",
			formatDate(row.Date), row.Code, row.Kind, row.Currency,
			formatRate(row.Buy), formatRate(row.Sell), formatRate(row.ParityBuy), formatRate(row.ParitySell))
	}

	return nil
}

func handleQueries(config *Config, flags *fetchFlags, queryLogger kitlog.Logger, logger *log.Logger) error {
	queries := config.Queries

	if len(flags.queries) != 0 {
		converted, err := ptax.ConvertToQueriesFromStringSlice(flags.queries)
		if err != nil {
			return err
		}

		queries = converted
	}

	if len(queries) == 0 {
		queries = []ptax.Query{ptax.CatalogQuery}
	}

	for _, query := range queries {
		var err error

		switch query {
		case ptax.CatalogQuery:
			err = runCatalog(config, queryLogger, logger)
		case ptax.ClosingRatesQuery:
			err = runClosingRates(config, flags, queryLogger, logger)
		case ptax.SnapshotQuery:
			err = runSnapshot(config, flags, queryLogger, logger)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func fetch(config *Config) *cobra.Command {
	flags := &fetchFlags{}

	fetchCmd := &cobra.Command{
		Use: "fetch",
	}

	fetchCmd.Run = func(cmd *cobra.Command, args []string) {
		logger := log.New(cmd.OutOrStdout(), "fetch ", 0)
		errLogger := log.New(cmd.ErrOrStderr(), "fetch-error ", 0)

		if err := handleQueries(config, flags, config.queryLogger(cmd), logger); err != nil {
			errLogger.Printf("ERROR: %v", err)
		}
	}

	fetchCmd.Flags().StringSliceVar(&flags.queries, "query", nil, "Queries to run: catalog, closingrates, snapshot")
	fetchCmd.Flags().IntVar(&flags.currency, "currency", 0, "Currency code for the closingrates query")
	fetchCmd.Flags().StringVar(&flags.from, "from", "", "Initial date (dd/mm/yyyy) for the closingrates query")
	fetchCmd.Flags().StringVar(&flags.to, "to", "", "Final date (dd/mm/yyyy) for the closingrates query")
	fetchCmd.Flags().StringVar(&flags.date, "date", "", "Reference date (dd/mm/yyyy) for the snapshot query, defaults to today")

	return fetchCmd
}
