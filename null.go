package ptax

import "time"

type (
	// NullDate is a calendar date that may be missing. Unparsable date text
	// in upstream files degrades to an invalid NullDate instead of dropping
	// the row.
	NullDate struct {
		Date  time.Time
		Valid bool
	}

	// NullFloat64 is a rate value that may be missing. The zero rate and a
	// missing rate are distinct values.
	NullFloat64 struct {
		Float64 float64
		Valid   bool
	}
)

func Date(t time.Time) NullDate {
	return NullDate{Date: t, Valid: true}
}

func Float64(f float64) NullFloat64 {
	return NullFloat64{Float64: f, Valid: true}
}

// Before orders dates ascending. Missing dates compare after every valid
// date, so a stable sort places them last while keeping their source order.
func (d NullDate) Before(other NullDate) bool {
	if !d.Valid {
		return false
	}

	if !other.Valid {
		return true
	}

	return d.Date.Before(other.Date)
}
