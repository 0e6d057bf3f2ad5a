package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/shopspring/decimal"

	ptax "github.com/brfinance/ptax-fetcher"
	"github.com/brfinance/ptax-fetcher/fetchers"
)

var ErrRateNotFound = errors.New("no closing rate published on or before the reference date")

// lookbackDays bounds the range query behind a conversion. Bulletins are not
// published on weekends and holidays, one week of history always covers the
// most recent one.
const lookbackDays = 7

type (
	// ConversionService converts an amount of a foreign currency into BRL
	// using the selling closing rate in effect on a reference date.
	ConversionService struct {
		URL        string
		CatalogURL string
		Client     *http.Client
		Logger     log.Logger
		Catalog    ptax.Catalog

		// Source overrides the closing rates lookup. When nil a fetcher
		// covering the week up to the reference date is built per call.
		Source ptax.RateSource
	}
)

func (c ConversionService) source(currencyCode int, date time.Time) (ptax.RateSource, error) {
	if c.Source != nil {
		return c.Source, nil
	}

	return fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		BaseConfig: fetchers.BaseConfig{
			URL:    c.URL,
			Client: c.Client,
			Logger: c.Logger,
		},
		CatalogURL:   c.CatalogURL,
		Catalog:      c.Catalog,
		CurrencyCode: currencyCode,
		InitialDate:  date.AddDate(0, 0, -lookbackDays),
		FinalDate:    date,
	})
}

func (c ConversionService) Convert(ctx context.Context, value float64, currencyCode int, date time.Time) (float64, error) {
	source, err := c.source(currencyCode, date)
	if err != nil {
		return 0, err
	}

	rows, err := source.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	rate, err := rateInEffect(rows, date)
	if err != nil {
		return 0, err
	}

	return convert(decimal.NewFromFloat(value), rate), nil
}

// rateInEffect picks the selling rate of the most recent bulletin not after
// the reference date. Rows are expected ascending by date with missing dates
// last, the order every RateSource produces.
func rateInEffect(rows []ptax.RateRow, date time.Time) (float64, error) {
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]

		if !row.Date.Valid || !row.Sell.Valid {
			continue
		}

		if row.Date.Date.After(date) {
			continue
		}

		return row.Sell.Float64, nil
	}

	return 0, ErrRateNotFound
}

func convert(value decimal.Decimal, rate float64) float64 {
	rateDecimal := decimal.NewFromFloat(rate)
	floatValue, _ := value.Mul(rateDecimal).Float64()

	return math.Round(floatValue*1_000_000) / 1_000_000
}
