package database

import (
	"context"
	"log"
	"time"

	"mention-radar/mentions"
	"mention-radar/models"
)

// MentionQuery narrows a mention fetch. The range applies to the resolved
// timestamp column; Limit <= 0 means no limit.
type MentionQuery struct {
	Range mentions.DateRange
	Limit int
}

// ListMentions returns mention records newest first.
func ListMentions(ctx context.Context, q MentionQuery) ([]*mentions.Record, error) {
	query := GetDB().WithContext(ctx).Model(&models.Mention{})

	if from, ok := q.Range.Start(); ok {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to, ok := q.Range.End(); ok {
		query = query.Where("created_at <= ?", to.UTC())
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []models.Mention
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*mentions.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, decodeMention(row))
	}
	return records, nil
}

// GetMention loads a single mention record by row id.
func GetMention(ctx context.Context, id int64) (*mentions.Record, error) {
	var row models.Mention
	if err := GetDB().WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return decodeMention(row), nil
}

// decodeMention never fails: a corrupt payload is kept as text.
func decodeMention(row models.Mention) *mentions.Record {
	rec, err := row.Record()
	if err != nil {
		log.Printf("mention %d: %v", row.ID, err)
		rec = mentions.NewRecord().
			Set(mentions.KeyID, mentions.Number(float64(row.ID))).
			Set("payload", mentions.Text(string(row.Payload)))
	}
	return rec
}

// InsertMentions stores scraped records in one batch and returns how many
// rows were written.
func InsertMentions(ctx context.Context, records []*mentions.Record, loc *time.Location) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	rows := make([]models.Mention, 0, len(records))
	for _, rec := range records {
		row, err := models.NewMention(rec, loc)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}
	if err := GetDB().WithContext(ctx).CreateInBatches(&rows, 100).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
