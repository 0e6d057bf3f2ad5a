package ptax

import "context"

type (
	// Catalog produces the list of currencies that can be queried. The
	// default implementation fetches the consultation form on every call;
	// callers may inject a cached implementation instead.
	Catalog interface {
		Fetch(ctx context.Context) ([]CurrencyRecord, error)
	}

	// RateSource produces the closing rates of a single currency, ordered
	// ascending by date.
	RateSource interface {
		Fetch(ctx context.Context) ([]RateRow, error)
	}
)
