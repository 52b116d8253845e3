package mentions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const reportDateLayout = "02/01/2006, 15:04:05"

// Fields already rendered in the fixed sections of the report.
var reportConsumed = map[string]struct{}{
	KeyID: {}, "resumo": {}, "descricao": {}, "texto": {},
	KeyCreatedAt: {}, KeyDate: {}, KeyPriority: {}, KeyType: {},
	"grupo": {}, "fonte": {}, "origem": {}, KeyUrgent: {}, KeyKeywords: {},
}

// Flatten renders a record as the plain-text report used by both the copy
// and the download actions. Output depends only on r and loc.
func Flatten(r *Record, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	b.WriteString("=== DETALHES DA MENÇÃO ===\n\n")

	if s, ok := Summary(r); ok {
		fmt.Fprintf(&b, "RESUMO:\n%s\n\n", s)
	}
	if v := r.Get(KeyID); v.Truthy() {
		fmt.Fprintf(&b, "ID: %s\n", v.String())
	}
	if v, ok := TimestampValue(r); ok {
		date := v.String()
		if t, ok := ParseTime(v, loc); ok {
			date = t.Format(reportDateLayout)
		}
		fmt.Fprintf(&b, "DATA: %s\n", date)
	}
	if p := Priority(r); p != "" {
		fmt.Fprintf(&b, "PRIORIDADE: %s\n", strings.ToUpper(p))
	}
	if v := r.Get(KeyType); v.Truthy() {
		fmt.Fprintf(&b, "TIPO: %s\n", v.String())
	}
	if s, ok := Source(r); ok {
		fmt.Fprintf(&b, "GRUPO/FONTE: %s\n", s)
	}
	if r.Has(KeyUrgent) {
		urgent := "NÃO"
		if Urgent(r) {
			urgent = "SIM"
		}
		fmt.Fprintf(&b, "URGENTE: %s\n", urgent)
	}
	if kw := Keywords(r); len(kw) > 0 {
		fmt.Fprintf(&b, "PALAVRAS-CHAVE: %s\n", strings.Join(kw, ", "))
	}

	b.WriteString("\n--- INFORMAÇÕES ADICIONAIS ---\n")
	r.Each(func(key string, v Value) {
		if _, skip := reportConsumed[key]; skip || v.IsEmpty() {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", HumanizeKey(key), reportValue(v))
	})
	return b.String()
}

func reportValue(v Value) string {
	switch v.Kind() {
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		raw, err := v.MarshalJSON()
		if err != nil {
			return v.String()
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return string(raw)
		}
		return out.String()
	default:
		return v.String()
	}
}

// HumanizeKey turns sender_phone or senderPhone into "Sender phone" /
// "Sender Phone": underscores become spaces, camel-case humps are split and
// the first letter is upper-cased.
func HumanizeKey(key string) string {
	var b strings.Builder
	for _, c := range key {
		switch {
		case c == '_':
			b.WriteByte(' ')
		case c >= 'A' && c <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	s := strings.TrimSpace(b.String())
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}

// ExportFileName is the download name for a record's report.
func ExportFileName(r *Record, now time.Time) string {
	if id, ok := ID(r); ok {
		return fmt.Sprintf("ficha_menção_%s.txt", id)
	}
	return fmt.Sprintf("ficha_menção_%d.txt", now.UnixMilli())
}
