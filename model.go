package ptax

type (
	// CurrencyRecord is one entry of the currency catalog published on the
	// bulletin consultation form. Records keep the document order of the
	// page; nothing is sorted or deduplicated.
	CurrencyRecord struct {
		Code string
		Name string
	}

	// RateRow is one closing bulletin of a single currency.
	RateRow struct {
		Date     NullDate
		Kind     string
		Currency string
		Buy      NullFloat64
		Sell     NullFloat64
	}

	// SnapshotRow is one currency of the all-currencies closing file for a
	// single reference date. Every row of one snapshot shares the same date.
	SnapshotRow struct {
		Date       NullDate
		Code       string
		Kind       string
		Currency   string
		Buy        NullFloat64
		Sell       NullFloat64
		ParityBuy  NullFloat64
		ParitySell NullFloat64
	}
)
