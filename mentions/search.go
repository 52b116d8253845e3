package mentions

import "strings"

// Free-text fields checked before the exhaustive scan.
var descriptiveKeys = []string{"resumo", "descricao", "texto", "mensagem", "conteudo", "detalhes"}

// Fields never inspected by the exhaustive scan.
var scanExcluded = map[string]struct{}{
	KeyID: {}, KeyCreatedAt: {}, KeyDate: {}, KeyPriority: {},
	KeyType: {}, KeyUrgent: {}, KeyKeywords: {},
}

// Matches reports whether the record mentions term, case-insensitively.
// palavras_chave is checked first, then the descriptive fields, then every
// other text field.
func Matches(r *Record, term string) bool {
	needle := strings.ToLower(term)
	return matchKeywordField(r, needle) ||
		matchDescriptive(r, needle) ||
		matchRemaining(r, needle)
}

func contains(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func matchKeywordField(r *Record, needle string) bool {
	v := r.Get(KeyKeywords)
	if !v.Truthy() {
		return false
	}
	switch v.Kind() {
	case KindList:
		for _, item := range v.Items() {
			if contains(item.String(), needle) {
				return true
			}
		}
	case KindText:
		return contains(v.text, needle)
	}
	return false
}

func matchDescriptive(r *Record, needle string) bool {
	for _, k := range descriptiveKeys {
		if s, ok := r.Get(k).AsText(); ok && s != "" && contains(s, needle) {
			return true
		}
	}
	return false
}

func matchRemaining(r *Record, needle string) bool {
	found := false
	r.Each(func(key string, v Value) {
		if found {
			return
		}
		if _, skip := scanExcluded[key]; skip {
			return
		}
		if s, ok := v.AsText(); ok && contains(s, needle) {
			found = true
		}
	})
	return found
}

// CountMatches counts records that mention term.
func CountMatches(records []*Record, term string) int {
	n := 0
	for _, r := range records {
		if Matches(r, term) {
			n++
		}
	}
	return n
}

// FilterMatches keeps the records that mention term, in order.
func FilterMatches(records []*Record, term string) []*Record {
	var out []*Record
	for _, r := range records {
		if Matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}
