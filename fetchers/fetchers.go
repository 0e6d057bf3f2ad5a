package fetchers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"golang.org/x/text/encoding/charmap"

	ptax "github.com/brfinance/ptax-fetcher"
)

const (
	CatalogURL      = "https://ptax.bcb.gov.br/ptax_internet/consultaBoletim.do?method=exibeFormularioConsultaBoletim"
	ClosingRatesURL = "https://ptax.bcb.gov.br/ptax_internet/consultaBoletim.do?method=gerarCSVFechamentoMoedaNoPeriodo"
	SnapshotURL     = "https://www4.bcb.gov.br/Download/fechamento"

	// AvailabilityURL lists the currencies with published bulletins. It is
	// handed to callers when a closing rates response cannot be parsed.
	AvailabilityURL = "https://www.bcb.gov.br/estabilidadefinanceira/historicocotacoes"
)

const (
	// bulletinDateLayout matches the zero padded 8 digit row keys of the
	// period closing CSV, e.g. 01012021.
	bulletinDateLayout = "02012006"

	// queryDateLayout matches the DATAINI/DATAFIM query parameters and the
	// reference date column of the snapshot CSV, e.g. 01/01/2021.
	queryDateLayout = "02/01/2006"

	// snapshotPathLayout matches the file name of the per day snapshot CSV,
	// e.g. 20210101.csv.
	snapshotPathLayout = "20060102"
)

const defaultTimeout = 30 * time.Second

func defaultClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}

	return &http.Client{Timeout: defaultTimeout}
}

func defaultLogger(logger log.Logger) log.Logger {
	if logger != nil {
		return logger
	}

	return log.NewNopLogger()
}

func checkStatus(res *http.Response) error {
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ptax.ErrUpstream, res.Status)
	}

	return nil
}

// latin1Reader decodes the ISO 8859-1 bytes the bank serves into UTF-8.
func latin1Reader(r io.Reader) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}

func semicolonReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(latin1Reader(r))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	return reader
}

// parseCommaDecimal coerces comma decimal text such as "5,2345". Text that
// is not a number, e.g. "N/D", degrades to a missing value.
func parseCommaDecimal(value string) ptax.NullFloat64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
	if err != nil {
		return ptax.NullFloat64{}
	}

	return ptax.Float64(f)
}

// parseBulletinDate coerces the day-month-year row keys of the period
// closing CSV. Keys shorter than 8 digits are zero padded on the left, the
// same way the bank formats single digit days. Unparsable keys degrade to a
// missing date.
func parseBulletinDate(value string) ptax.NullDate {
	value = strings.TrimSpace(value)
	if len(value) < 8 {
		value = strings.Repeat("0", 8-len(value)) + value
	}

	t, err := time.Parse(bulletinDateLayout, value)
	if err != nil {
		return ptax.NullDate{}
	}

	return ptax.Date(t)
}

// parseReferenceDate coerces dd/mm/yyyy text. Unparsable text degrades to a
// missing date.
func parseReferenceDate(value string) ptax.NullDate {
	t, err := time.Parse(queryDateLayout, strings.TrimSpace(value))
	if err != nil {
		return ptax.NullDate{}
	}

	return ptax.Date(t)
}
