package mentions

import (
	"strconv"
	"time"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type EventType string

const (
	EventKeyword EventType = "keyword"
	EventAlert   EventType = "alert"
	EventSystem  EventType = "system"
)

// Event is the timeline shape of a mention record.
type Event struct {
	ID       string    `json:"id"`
	Time     string    `json:"time"`
	Type     EventType `json:"type"`
	Message  string    `json:"message"`
	Group    string    `json:"group"`
	Keywords []string  `json:"keywords"`
	Severity Severity  `json:"severity"`
	Raw      *Record   `json:"raw"`
}

// SeverityOf maps prioridade/urgente to a severity level.
func SeverityOf(r *Record) Severity {
	p := Priority(r)
	switch {
	case p == "alta" || Urgent(r):
		return SeverityHigh
	case p == "media":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TypeOf reads tipo; unknown or missing values are keyword events.
func TypeOf(r *Record) EventType {
	switch t := EventType(r.Get(KeyType).String()); t {
	case EventKeyword, EventAlert, EventSystem:
		return t
	}
	return EventKeyword
}

// Normalize converts one record at position index of its batch. It never
// fails: a missing or unparsable timestamp falls back to now.
func Normalize(r *Record, index int, now time.Time, loc *time.Location) Event {
	if loc == nil {
		loc = time.Local
	}
	at, ok := Timestamp(r, loc)
	if !ok {
		at = now.In(loc)
	}
	id, ok := ID(r)
	if !ok {
		id = strconv.Itoa(index)
	}
	return Event{
		ID:       id,
		Time:     at.Format("15:04"),
		Type:     TypeOf(r),
		Message:  SummaryOrDefault(r),
		Group:    SourceOrDefault(r),
		Keywords: Keywords(r),
		Severity: SeverityOf(r),
		Raw:      r,
	}
}

func NormalizeAll(records []*Record, now time.Time, loc *time.Location) []Event {
	events := make([]Event, len(records))
	for i, r := range records {
		events[i] = Normalize(r, i, now, loc)
	}
	return events
}
