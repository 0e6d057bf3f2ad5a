package fetchers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log"

	ptax "github.com/brfinance/ptax-fetcher"
)

type (
	BaseConfig struct {
		URL    string
		Client *http.Client
		Logger log.Logger
	}
	CatalogConfig struct {
		BaseConfig
	}
	ClosingRatesConfig struct {
		BaseConfig
		CatalogURL   string
		Catalog      ptax.Catalog
		CurrencyCode int
		InitialDate  time.Time
		FinalDate    time.Time
	}
	SnapshotConfig struct {
		BaseConfig
		ReferenceDate time.Time
	}
)

func NewCatalogFetcher(config CatalogConfig) CatalogFetcher {
	return CatalogFetcher{
		URL:    config.URL,
		Client: config.Client,
		Logger: config.Logger,
	}
}

// NewClosingRatesFetcher requires a final date strictly later than the
// initial date. The constraint is checked here so no request is ever made
// for a range that cannot hold data.
func NewClosingRatesFetcher(config ClosingRatesConfig) (*ClosingRatesFetcher, error) {
	if !config.FinalDate.After(config.InitialDate) {
		return nil, fmt.Errorf(
			"final date %s is not later than initial date %s: %w",
			config.FinalDate.Format(queryDateLayout),
			config.InitialDate.Format(queryDateLayout),
			ptax.ErrInvalidRange,
		)
	}

	return &ClosingRatesFetcher{
		URL:          config.URL,
		CatalogURL:   config.CatalogURL,
		Client:       config.Client,
		Logger:       config.Logger,
		Catalog:      config.Catalog,
		currencyCode: config.CurrencyCode,
		initialDate:  config.InitialDate,
		finalDate:    config.FinalDate,
	}, nil
}

// NewSnapshotFetcher defaults a zero reference date to the current moment
// and rejects dates in the future before any request is made.
func NewSnapshotFetcher(config SnapshotConfig) (*SnapshotFetcher, error) {
	referenceDate := config.ReferenceDate
	now := time.Now()

	if referenceDate.IsZero() {
		referenceDate = now
	}

	if referenceDate.After(now) {
		return nil, fmt.Errorf(
			"reference date %s is in the future: %w",
			referenceDate.Format(queryDateLayout),
			ptax.ErrInvalidRange,
		)
	}

	return &SnapshotFetcher{
		URL:           config.URL,
		Client:        config.Client,
		Logger:        config.Logger,
		referenceDate: referenceDate,
	}, nil
}
