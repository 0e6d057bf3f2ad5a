package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-kit/log"
	"golang.org/x/net/html"

	ptax "github.com/brfinance/ptax-fetcher"
)

// CatalogFetcher lists the currencies available for bulletin queries by
// scraping the option elements of the consultation form page.
type CatalogFetcher struct {
	URL    string
	Client *http.Client
	Logger log.Logger
}

func (c CatalogFetcher) Fetch(ctx context.Context) ([]ptax.CurrencyRecord, error) {
	url := c.URL
	if url == "" {
		url = CatalogURL
	}

	logger := defaultLogger(c.Logger)
	logger.Log("msg", "loading currency catalog", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := defaultClient(c.Client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ptax.ErrUpstream, err)
	}

	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	return parseOptions(latin1Reader(res.Body))
}

// parseOptions extracts every option element in document order. The value
// attribute holds the numeric currency code, the element text the currency
// name. A page without options yields an empty catalog, not an error.
func parseOptions(r io.Reader) ([]ptax.CurrencyRecord, error) {
	tokenizer := html.NewTokenizer(r)
	records := make([]ptax.CurrencyRecord, 0)

	var current *ptax.CurrencyRecord

	var text strings.Builder

	flush := func() {
		if current == nil {
			return
		}

		current.Name = strings.TrimSpace(text.String())
		records = append(records, *current)
		current = nil
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, fmt.Errorf("parsing catalog page: %w", err)
			}

			flush()

			return records, nil
		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data != "option" {
				continue
			}

			flush()
			current = &ptax.CurrencyRecord{}
			text.Reset()

			for _, attr := range token.Attr {
				if attr.Key == "value" {
					current.Code = attr.Val
				}
			}
		case html.TextToken:
			if current != nil {
				text.Write(tokenizer.Text())
			}
		case html.EndTagToken:
			if tokenizer.Token().Data == "option" {
				flush()
			}
		}
	}
}
