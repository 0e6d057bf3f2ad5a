package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"

	ptax "github.com/brfinance/ptax-fetcher"
)

// ClosingRatesFetcher retrieves the closing bulletins of one currency over
// an inclusive date range, sorted ascending by date.
type ClosingRatesFetcher struct {
	URL        string
	CatalogURL string
	Client     *http.Client
	Logger     log.Logger

	// Catalog validates the currency code before the data request. When nil
	// the catalog is fetched fresh on every call.
	Catalog ptax.Catalog

	currencyCode int
	initialDate  time.Time
	finalDate    time.Time
}

func (f *ClosingRatesFetcher) catalog() ptax.Catalog {
	if f.Catalog != nil {
		return f.Catalog
	}

	return CatalogFetcher{
		URL:    f.CatalogURL,
		Client: f.Client,
		Logger: f.Logger,
	}
}

func (f *ClosingRatesFetcher) checkCurrencyExists(ctx context.Context) error {
	records, err := f.catalog().Fetch(ctx)
	if err != nil {
		return err
	}

	code := strconv.Itoa(f.currencyCode)

	for _, record := range records {
		if record.Code == code {
			return nil
		}
	}

	return fmt.Errorf("currency code %s: %w", code, ptax.ErrUnknownCurrency)
}

func (f *ClosingRatesFetcher) Fetch(ctx context.Context) ([]ptax.RateRow, error) {
	if err := f.checkCurrencyExists(ctx); err != nil {
		return nil, err
	}

	url := f.URL
	if url == "" {
		url = ClosingRatesURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("ChkMoeda", strconv.Itoa(f.currencyCode))
	q.Add("DATAINI", f.initialDate.Format(queryDateLayout))
	q.Add("DATAFIM", f.finalDate.Format(queryDateLayout))
	req.URL.RawQuery = q.Encode()

	logger := defaultLogger(f.Logger)
	logger.Log("msg", "loading closing rates", "currency", f.currencyCode, "url", req.URL.String())

	res, err := defaultClient(f.Client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ptax.ErrUpstream, err)
	}

	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	rows, err := parseClosingRates(res.Body)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows, nil
}

// parseClosingRates consumes columns 0, 2, 3, 4 and 5 of the semicolon
// delimited body: row key date, bulletin kind, currency name, buy and sell
// rates. Cell level coercion failures degrade to missing values, structural
// failures surface as a FormatError.
func parseClosingRates(r io.Reader) ([]ptax.RateRow, error) {
	records, err := semicolonReader(r).ReadAll()
	if err != nil {
		return nil, &ptax.FormatError{Hint: AvailabilityURL, Err: err}
	}

	rows := make([]ptax.RateRow, 0, len(records))

	for _, record := range records {
		if len(record) < 6 {
			return nil, &ptax.FormatError{
				Hint: AvailabilityURL,
				Err:  fmt.Errorf("expected at least 6 columns, got %d", len(record)),
			}
		}

		rows = append(rows, ptax.RateRow{
			Date:     parseBulletinDate(record[0]),
			Kind:     strings.TrimSpace(record[2]),
			Currency: strings.TrimSpace(record[3]),
			Buy:      parseCommaDecimal(record[4]),
			Sell:     parseCommaDecimal(record[5]),
		})
	}

	return rows, nil
}
