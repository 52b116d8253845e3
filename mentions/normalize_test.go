package mentions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func mustRecord(t *testing.T, src string) *Record {
	t.Helper()
	r, err := ParseRecord([]byte(src))
	require.NoError(t, err)
	return r
}

func TestNormalizeKeepsKeywordList(t *testing.T) {
	r := mustRecord(t, `{"palavras_chave":["zeta","alpha","zeta"]}`)
	ev := Normalize(r, 0, time.Now(), brt)
	assert.Equal(t, []string{"zeta", "alpha", "zeta"}, ev.Keywords)
}

func TestNormalizeWrapsScalarKeyword(t *testing.T) {
	r := mustRecord(t, `{"palavras_chave":"eleição"}`)
	assert.Equal(t, []string{"eleição"}, Normalize(r, 0, time.Now(), brt).Keywords)

	empty := Normalize(NewRecord(), 0, time.Now(), brt)
	assert.NotNil(t, empty.Keywords)
	assert.Empty(t, empty.Keywords)
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2024, 3, 5, 17, 45, 0, 0, time.UTC)
	ev := Normalize(mustRecord(t, `{"resumo":"","descricao":null}`), 3, now, brt)

	assert.Equal(t, DefaultSummary, ev.Message)
	assert.Equal(t, DefaultGroup, ev.Group)
	assert.Equal(t, "3", ev.ID)
	assert.Equal(t, "14:45", ev.Time)
	assert.Equal(t, EventKeyword, ev.Type)
	assert.Equal(t, SeverityLow, ev.Severity)
}

func TestNormalizeFields(t *testing.T) {
	r := mustRecord(t, `{
		"id": 81,
		"texto": "terceiro",
		"descricao": "segundo",
		"data": "2024-01-10T09:00:00-03:00",
		"created_at": "2024-01-10T12:30:00Z",
		"fonte": "Grupo B",
		"origem": "Grupo C",
		"tipo": "alert"
	}`)
	ev := Normalize(r, 0, time.Now(), brt)

	assert.Equal(t, "81", ev.ID)
	assert.Equal(t, "segundo", ev.Message)
	assert.Equal(t, "09:30", ev.Time)
	assert.Equal(t, "Grupo B", ev.Group)
	assert.Equal(t, EventAlert, ev.Type)
	assert.Same(t, r, ev.Raw)
}

func TestNormalizeTimestampFallsBackToData(t *testing.T) {
	r := mustRecord(t, `{"created_at":"","data":"2024-01-10 08:15:00"}`)
	ev := Normalize(r, 0, time.Now(), brt)
	assert.Equal(t, "08:15", ev.Time)
}

func TestNormalizeUnparsableTimestampUsesNow(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, brt)
	ev := Normalize(mustRecord(t, `{"created_at":"???"}`), 0, now, brt)
	assert.Equal(t, "12:00", ev.Time)
}

func TestSeverityOf(t *testing.T) {
	cases := []struct {
		src  string
		want Severity
	}{
		{`{"prioridade":"alta"}`, SeverityHigh},
		{`{"prioridade":"baixa","urgente":true}`, SeverityHigh},
		{`{"prioridade":"media"}`, SeverityMedium},
		{`{"prioridade":"media","urgente":true}`, SeverityHigh},
		{`{"prioridade":"baixa"}`, SeverityLow},
		{`{"urgente":false}`, SeverityLow},
		{`{}`, SeverityLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeverityOf(mustRecord(t, tc.src)), tc.src)
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, EventSystem, TypeOf(mustRecord(t, `{"tipo":"system"}`)))
	assert.Equal(t, EventKeyword, TypeOf(mustRecord(t, `{"tipo":"outro"}`)))
	assert.Equal(t, EventKeyword, TypeOf(NewRecord()))
}

func TestParseTimeEpochMillis(t *testing.T) {
	got, ok := ParseTime(Number(1704900600000), time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC), got)
}

func TestNormalizeAll(t *testing.T) {
	recs := []*Record{
		mustRecord(t, `{"resumo":"a"}`),
		mustRecord(t, `{"id":"x","resumo":"b"}`),
	}
	events := NormalizeAll(recs, time.Now(), brt)
	require.Len(t, events, 2)
	assert.Equal(t, "0", events[0].ID)
	assert.Equal(t, "x", events[1].ID)
}
