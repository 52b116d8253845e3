package mentions

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Conventional field names of a mention record.
const (
	KeyID        = "id"
	KeyPriority  = "prioridade"
	KeyType      = "tipo"
	KeyUrgent    = "urgente"
	KeyKeywords  = "palavras_chave"
	KeyCreatedAt = "created_at"
	KeyDate      = "data"
)

// Precedence lists; the first truthy field wins.
var (
	SummaryKeys   = []string{"resumo", "descricao", "texto"}
	TimestampKeys = []string{KeyCreatedAt, KeyDate}
	SourceKeys    = []string{"grupo", "fonte", "origem"}
)

const (
	DefaultSummary = "Menção detectada"
	DefaultGroup   = "Sistema"
)

func firstTruthy(r *Record, keys []string) (Value, bool) {
	for _, k := range keys {
		if v := r.Get(k); v.Truthy() {
			return v, true
		}
	}
	return Value{}, false
}

// Summary resolves resumo, descricao, texto in that order.
func Summary(r *Record) (string, bool) {
	v, ok := firstTruthy(r, SummaryKeys)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// SummaryOrDefault never returns an empty string.
func SummaryOrDefault(r *Record) string {
	if s, ok := Summary(r); ok {
		return s
	}
	return DefaultSummary
}

// Source resolves grupo, fonte, origem in that order.
func Source(r *Record) (string, bool) {
	v, ok := firstTruthy(r, SourceKeys)
	if !ok {
		return "", false
	}
	return v.String(), true
}

func SourceOrDefault(r *Record) string {
	if s, ok := Source(r); ok {
		return s
	}
	return DefaultGroup
}

// TimestampValue resolves created_at, data in that order without parsing.
func TimestampValue(r *Record) (Value, bool) {
	return firstTruthy(r, TimestampKeys)
}

// Timestamp resolves and parses the record timestamp. Zone-less timestamps
// are read in loc.
func Timestamp(r *Record, loc *time.Location) (time.Time, bool) {
	v, ok := TimestampValue(r)
	if !ok {
		return time.Time{}, false
	}
	return ParseTime(v, loc)
}

// ParseTime reads text timestamps in any common layout and numbers as epoch
// milliseconds.
func ParseTime(v Value, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch v.Kind() {
	case KindNumber:
		f, ok := v.Float()
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).In(loc), true
	case KindText:
		s := strings.TrimSpace(v.text)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.In(loc), true
		}
		t, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t.In(loc), true
	}
	return time.Time{}, false
}

// Keywords returns palavras_chave as a list: lists as-is, scalars wrapped,
// absent as an empty list.
func Keywords(r *Record) []string {
	v := r.Get(KeyKeywords)
	if !v.Truthy() {
		return []string{}
	}
	if v.Kind() == KindList {
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.String())
		}
		return out
	}
	return []string{v.String()}
}

// Priority is the raw prioridade text, empty when absent.
func Priority(r *Record) string {
	v := r.Get(KeyPriority)
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

func Urgent(r *Record) bool {
	return r.Get(KeyUrgent).Truthy()
}

// ID is the text form of the record id, if any.
func ID(r *Record) (string, bool) {
	v := r.Get(KeyID)
	switch v.Kind() {
	case KindAbsent, KindNull:
		return "", false
	}
	s := v.String()
	return s, s != ""
}
