package ptax

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange reports caller supplied dates that violate the
	// ordering or temporal constraints of a query. It is returned before
	// any request is made.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrUnknownCurrency reports a currency code that is absent from the
	// live currency catalog.
	ErrUnknownCurrency = errors.New("currency code does not exist")

	// ErrUpstream reports an HTTP or network failure that is not the benign
	// no-data-for-this-date case.
	ErrUpstream = errors.New("upstream request failed")
)

// FormatError reports a response body that could not be parsed as the
// expected delimited format. Hint points at the public listing where the
// caller can check whether the currency has published bulletins at all.
type FormatError struct {
	Hint string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("parsing upstream data: %v, check if currency is available at %s", e.Err, e.Hint)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
