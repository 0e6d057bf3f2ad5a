package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log"

	ptax "github.com/brfinance/ptax-fetcher"
)

// SnapshotFetcher retrieves the closing file listing every currency for one
// reference date. Rows keep the source order of the file.
type SnapshotFetcher struct {
	URL    string
	Client *http.Client
	Logger log.Logger

	referenceDate time.Time
}

func (f *SnapshotFetcher) Fetch(ctx context.Context) ([]ptax.SnapshotRow, error) {
	base := f.URL
	if base == "" {
		base = SnapshotURL
	}

	url := fmt.Sprintf("%s/%s.csv", base, f.referenceDate.Format(snapshotPathLayout))

	logger := defaultLogger(f.Logger)
	logger.Log("msg", "loading daily snapshot", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := defaultClient(f.Client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ptax.ErrUpstream, err)
	}

	defer res.Body.Close()

	// A missing file means no bulletin was published for the date, which is
	// a regular outcome for weekends and holidays, not a failure.
	if res.StatusCode == http.StatusNotFound {
		logger.Log("msg", "no rates published for date", "date", f.referenceDate.Format(queryDateLayout))

		return []ptax.SnapshotRow{}, nil
	}

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	return parseSnapshot(res.Body)
}

// parseSnapshot consumes the fixed 8 column schema of the per day closing
// file: reference date, code, kind, currency name, buy, sell, parity buy and
// parity sell.
func parseSnapshot(r io.Reader) ([]ptax.SnapshotRow, error) {
	records, err := semicolonReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing snapshot: %v", ptax.ErrUpstream, err)
	}

	rows := make([]ptax.SnapshotRow, 0, len(records))

	for _, record := range records {
		if len(record) < 8 {
			return nil, fmt.Errorf("%w: expected 8 columns, got %d", ptax.ErrUpstream, len(record))
		}

		rows = append(rows, ptax.SnapshotRow{
			Date:       parseReferenceDate(record[0]),
			Code:       strings.TrimSpace(record[1]),
			Kind:       strings.TrimSpace(record[2]),
			Currency:   strings.TrimSpace(record[3]),
			Buy:        parseCommaDecimal(record[4]),
			Sell:       parseCommaDecimal(record[5]),
			ParityBuy:  parseCommaDecimal(record[6]),
			ParitySell: parseCommaDecimal(record[7]),
		})
	}

	return rows, nil
}
