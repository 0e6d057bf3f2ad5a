package ptax_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ptax "github.com/brfinance/ptax-fetcher"
)

func TestNullDateBefore(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	earlier := ptax.Date(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC))
	later := ptax.Date(time.Date(2021, time.July, 30, 0, 0, 0, 0, time.UTC))
	missing := ptax.NullDate{}

	assert.True(earlier.Before(later))
	assert.False(later.Before(earlier))
	assert.False(earlier.Before(earlier))

	// Missing dates order after every valid date.
	assert.True(earlier.Before(missing))
	assert.True(later.Before(missing))
	assert.False(missing.Before(earlier))
	assert.False(missing.Before(missing))
}

func TestNullDateSortPlacesMissingLast(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	rows := []ptax.RateRow{
		{Date: ptax.NullDate{}, Kind: "first-missing"},
		{Date: ptax.Date(time.Date(2021, time.March, 2, 0, 0, 0, 0, time.UTC))},
		{Date: ptax.NullDate{}, Kind: "second-missing"},
		{Date: ptax.Date(time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC))},
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	assert.Equal(time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), rows[0].Date.Date)
	assert.Equal(time.Date(2021, time.March, 2, 0, 0, 0, 0, time.UTC), rows[1].Date.Date)

	// The sort is stable, missing dates keep their source order at the end.
	assert.Equal("first-missing", rows[2].Kind)
	assert.Equal("second-missing", rows[3].Kind)
}

func TestNullFloat64DistinguishesZeroFromMissing(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	zero := ptax.Float64(0)
	missing := ptax.NullFloat64{}

	assert.True(zero.Valid)
	assert.False(missing.Valid)
	assert.NotEqual(zero, missing)
}
