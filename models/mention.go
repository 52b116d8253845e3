package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"mention-radar/mentions"
)

// Mention is a stored mention row. The scraped record lives in Payload as
// raw JSON; OccurredAt holds its resolved timestamp (created_at, else data)
// so the store can filter and order by it.
type Mention struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OccurredAt *time.Time     `json:"created_at" gorm:"column:created_at;index"`
	Payload    datatypes.JSON `json:"payload" gorm:"not null"`
}

func (Mention) TableName() string {
	return "investigador_mencoes"
}

// Record decodes the payload and exposes the row id as the leading id field.
func (m Mention) Record() (*mentions.Record, error) {
	rec := mentions.NewRecord()
	if len(m.Payload) > 0 {
		if err := rec.UnmarshalJSON(m.Payload); err != nil {
			return nil, fmt.Errorf("mention %d payload: %w", m.ID, err)
		}
	}
	rec.Prepend(mentions.KeyID, mentions.Number(float64(m.ID)))
	return rec, nil
}

// NewMention prepares a row from a scraped record. Any id carried by the
// record is dropped; the store assigns its own.
func NewMention(rec *mentions.Record, loc *time.Location) (Mention, error) {
	var m Mention
	payload := mentions.NewRecord()
	rec.Each(func(key string, v mentions.Value) {
		if key != mentions.KeyID {
			payload.Set(key, v)
		}
	})
	raw, err := payload.MarshalJSON()
	if err != nil {
		return Mention{}, err
	}
	m.Payload = datatypes.JSON(raw)
	if t, ok := mentions.Timestamp(rec, loc); ok {
		t = t.UTC()
		m.OccurredAt = &t
	}
	return m, nil
}
