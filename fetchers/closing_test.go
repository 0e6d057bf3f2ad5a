package fetchers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ptax "github.com/brfinance/ptax-fetcher"
	"github.com/brfinance/ptax-fetcher/fetchers"
)

type catalogStub struct {
	records []ptax.CurrencyRecord
	err     error
	calls   int
}

func (c *catalogStub) Fetch(ctx context.Context) ([]ptax.CurrencyRecord, error) {
	c.calls++

	return c.records, c.err
}

func usdCatalog() *catalogStub {
	return &catalogStub{records: []ptax.CurrencyRecord{
		{Code: "220", Name: "Dólar dos EUA"},
		{Code: "978", Name: "Euro"},
	}}
}

func TestNewClosingRatesFetcher_InvalidRange(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	initial := time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC)

	values := []struct {
		initial time.Time
		final   time.Time
	}{
		{initial, initial},
		{initial, initial.AddDate(0, 0, -1)},
		{initial, initial.AddDate(0, -1, 0)},
	}

	for _, value := range values {
		fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
			CurrencyCode: 220,
			InitialDate:  value.initial,
			FinalDate:    value.final,
		})

		assert.Nil(fetcher)
		assert.True(errors.Is(err, ptax.ErrInvalidRange))
	}
}

func TestClosingRatesFetcher_FetchUnknownCurrency(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	dataRequested := false
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		dataRequested = true
	}))

	defer server.Close()

	catalog := usdCatalog()
	fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		BaseConfig:   fetchers.BaseConfig{URL: server.URL},
		Catalog:      catalog,
		CurrencyCode: 999,
		InitialDate:  time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		FinalDate:    time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Nil(err)

	_, err = fetcher.Fetch(context.Background())

	assert.True(errors.Is(err, ptax.ErrUnknownCurrency))
	assert.Equal(1, catalog.calls)
	assert.False(dataRequested)
}

func TestClosingRatesFetcher_Fetch(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal("220", q.Get("ChkMoeda"))
		assert.Equal("01/01/2021", q.Get("DATAINI"))
		assert.Equal("30/07/2021", q.Get("DATAFIM"))

		// Latin-1 encoded, semicolon delimited, comma decimals, rows out of
		// order with one unparsable key and one unpublished rate.
		_, _ = rw.Write([]byte("05012021;220;A;D\xf3lar dos EUA;5,4321;5,4567\n" +
			"4012021;220;A;D\xf3lar dos EUA;5,2345;5,2567\n" +
			"99999999;220;A;D\xf3lar dos EUA;N/D;5,0000\n"))
	}))

	defer server.Close()

	fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		BaseConfig:   fetchers.BaseConfig{URL: server.URL},
		Catalog:      usdCatalog(),
		CurrencyCode: 220,
		InitialDate:  time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		FinalDate:    time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Nil(err)

	rows, err := fetcher.Fetch(context.Background())

	assert.Nil(err)
	assert.Equal([]ptax.RateRow{
		{
			Date:     ptax.Date(time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)),
			Kind:     "A",
			Currency: "Dólar dos EUA",
			Buy:      ptax.Float64(5.2345),
			Sell:     ptax.Float64(5.2567),
		},
		{
			Date:     ptax.Date(time.Date(2021, time.January, 5, 0, 0, 0, 0, time.UTC)),
			Kind:     "A",
			Currency: "Dólar dos EUA",
			Buy:      ptax.Float64(5.4321),
			Sell:     ptax.Float64(5.4567),
		},
		{
			Date:     ptax.NullDate{},
			Kind:     "A",
			Currency: "Dólar dos EUA",
			Buy:      ptax.NullFloat64{},
			Sell:     ptax.Float64(5),
		},
	}, rows)
}

func TestClosingRatesFetcher_FetchFormatError(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []string{
		"\"unterminated\n",
		"01012021;220;A\n",
	}

	for _, value := range values {
		body := value
		server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			_, _ = rw.Write([]byte(body))
		}))

		fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
			BaseConfig:   fetchers.BaseConfig{URL: server.URL},
			Catalog:      usdCatalog(),
			CurrencyCode: 220,
			InitialDate:  time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			FinalDate:    time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC),
		})

		assert.Nil(err)

		_, err = fetcher.Fetch(context.Background())

		var formatErr *ptax.FormatError

		assert.True(errors.As(err, &formatErr))
		assert.Equal(fetchers.AvailabilityURL, formatErr.Hint)

		server.Close()
	}
}

func TestClosingRatesFetcher_FetchValidatesAgainstFreshCatalog(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	catalogCalls := 0
	catalogServer := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		catalogCalls++

		_, _ = rw.Write([]byte(`<option value="220">Dolar</option>`))
	}))

	defer catalogServer.Close()

	dataServer := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, _ = rw.Write([]byte("01012021;220;A;Dolar;5,0;5,1\n"))
	}))

	defer dataServer.Close()

	fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		BaseConfig:   fetchers.BaseConfig{URL: dataServer.URL},
		CatalogURL:   catalogServer.URL,
		CurrencyCode: 220,
		InitialDate:  time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		FinalDate:    time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Nil(err)

	for i := 1; i <= 2; i++ {
		rows, err := fetcher.Fetch(context.Background())

		assert.Nil(err)
		assert.Len(rows, 1)
		assert.Equal(i, catalogCalls)
	}
}

func TestClosingRatesFetcher_FetchCatalogFailurePropagates(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	catalog := &catalogStub{err: ptax.ErrUpstream}
	fetcher, err := fetchers.NewClosingRatesFetcher(fetchers.ClosingRatesConfig{
		Catalog:      catalog,
		CurrencyCode: 220,
		InitialDate:  time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		FinalDate:    time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Nil(err)

	_, err = fetcher.Fetch(context.Background())

	assert.True(errors.Is(err, ptax.ErrUpstream))
}
