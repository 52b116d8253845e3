package mentions

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar-day range in a viewer's time zone.
// Either bound may be open.
type DateRange struct {
	from, to       time.Time
	hasFrom, hasTo bool
}

// ParseDateRange reads YYYY-MM-DD bounds; empty strings leave a bound open.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.Local
	}
	var d DateRange
	if from = strings.TrimSpace(from); from != "" {
		t, err := time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid from date %q: %w", from, err)
		}
		d.from, d.hasFrom = t, true
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid to date %q: %w", to, err)
		}
		d.to = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
		d.hasTo = true
	}
	return d, nil
}

// IsZero reports a range with both bounds open.
func (d DateRange) IsZero() bool { return !d.hasFrom && !d.hasTo }

// Start is the first instant of the from day.
func (d DateRange) Start() (time.Time, bool) { return d.from, d.hasFrom }

// End is 23:59:59.999 of the to day.
func (d DateRange) End() (time.Time, bool) { return d.to, d.hasTo }

func (d DateRange) Contains(t time.Time) bool {
	if d.hasFrom && t.Before(d.from) {
		return false
	}
	if d.hasTo && t.After(d.to) {
		return false
	}
	return true
}

// Filter keeps records whose resolved timestamp lies in the range. With both
// bounds open the batch is returned unchanged; otherwise records without a
// parsable timestamp are dropped.
func (d DateRange) Filter(records []*Record, loc *time.Location) []*Record {
	if d.IsZero() {
		return records
	}
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		t, ok := Timestamp(r, loc)
		if ok && d.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}

// Describe renders the range the way the timeline header shows it.
func (d DateRange) Describe() string {
	const layout = "02/01/2006"
	switch {
	case d.hasFrom && d.hasTo:
		return fmt.Sprintf("entre %s e %s", d.from.Format(layout), d.to.Format(layout))
	case d.hasFrom:
		return "a partir de " + d.from.Format(layout)
	case d.hasTo:
		return "até " + d.to.Format(layout)
	}
	return ""
}
