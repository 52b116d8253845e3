package mentions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeSingleDay(t *testing.T) {
	rng, err := ParseDateRange("2024-01-10", "2024-01-10", brt)
	require.NoError(t, err)

	inside := mustRecord(t, `{"created_at":"2024-01-10T23:59:00-03:00"}`)
	after := mustRecord(t, `{"created_at":"2024-01-11 00:00:01"}`)
	before := mustRecord(t, `{"data":"2024-01-09 23:59:59"}`)
	start := mustRecord(t, `{"data":"2024-01-10 00:00:00"}`)

	got := rng.Filter([]*Record{inside, after, before, start}, brt)
	assert.Equal(t, []*Record{inside, start}, got)
}

func TestDateRangeEndOfDay(t *testing.T) {
	rng, err := ParseDateRange("", "2024-01-10", brt)
	require.NoError(t, err)

	end, ok := rng.End()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 999000000, brt), end)
	_, ok = rng.Start()
	assert.False(t, ok)

	assert.True(t, rng.Contains(time.Date(2024, 1, 10, 23, 59, 59, 999000000, brt)))
	assert.False(t, rng.Contains(time.Date(2024, 1, 11, 0, 0, 0, 0, brt)))
	assert.True(t, rng.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, brt)))
}

func TestDateRangeOpen(t *testing.T) {
	rng, err := ParseDateRange(" ", "", brt)
	require.NoError(t, err)
	assert.True(t, rng.IsZero())

	recs := []*Record{NewRecord(), mustRecord(t, `{"data":"???"}`)}
	assert.Equal(t, recs, rng.Filter(recs, brt))
}

func TestDateRangeDropsUntimedRecords(t *testing.T) {
	rng, err := ParseDateRange("2024-01-01", "", brt)
	require.NoError(t, err)
	recs := []*Record{NewRecord(), mustRecord(t, `{"data":"???"}`), mustRecord(t, `{"data":"2024-02-01"}`)}
	assert.Len(t, rng.Filter(recs, brt), 1)
}

func TestDateRangeEpochMillis(t *testing.T) {
	rng, err := ParseDateRange("2024-01-10", "2024-01-10", time.UTC)
	require.NoError(t, err)
	r := NewRecord().Set(KeyCreatedAt, Number(1704900600000))
	assert.Len(t, rng.Filter([]*Record{r}, time.UTC), 1)
}

func TestParseDateRangeInvalid(t *testing.T) {
	_, err := ParseDateRange("10/01/2024", "", brt)
	assert.Error(t, err)
	_, err = ParseDateRange("", "2024-13-01", brt)
	assert.Error(t, err)
}

func TestDateRangeDescribe(t *testing.T) {
	both, _ := ParseDateRange("2024-01-10", "2024-01-12", brt)
	from, _ := ParseDateRange("2024-01-10", "", brt)
	to, _ := ParseDateRange("", "2024-01-12", brt)

	assert.Equal(t, "entre 10/01/2024 e 12/01/2024", both.Describe())
	assert.Equal(t, "a partir de 10/01/2024", from.Describe())
	assert.Equal(t, "até 12/01/2024", to.Describe())
	assert.Equal(t, "", DateRange{}.Describe())
}
