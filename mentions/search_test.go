package mentions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesKeywordList(t *testing.T) {
	r := mustRecord(t, `{"palavras_chave":["Saúde","ELEIÇÃO"]}`)
	assert.True(t, Matches(r, "eleição"))
	assert.True(t, Matches(r, "Saúde"))
	assert.False(t, Matches(r, "economia"))
}

func TestMatchesKeywordText(t *testing.T) {
	assert.True(t, Matches(mustRecord(t, `{"palavras_chave":"campanha eleitoral"}`), "campanha"))
}

func TestMatchesDescriptiveFields(t *testing.T) {
	for _, key := range descriptiveKeys {
		r := NewRecord().Set(key, Text("Fala sobre a Votação de amanhã"))
		assert.True(t, Matches(r, "votação"), key)
	}
}

func TestMatchesRemainingTextFields(t *testing.T) {
	r := mustRecord(t, `{"autor":"Comitê da Eleição","resumo":"outra coisa"}`)
	assert.True(t, Matches(r, "eleição"))
}

func TestMatchesSkipsExcludedAndNonText(t *testing.T) {
	r := mustRecord(t, `{
		"id": "eleição-1",
		"tipo": "eleição",
		"prioridade": "eleição",
		"created_at": "eleição",
		"data": "eleição",
		"urgente": "eleição",
		"contagem": 2024,
		"meta": {"tema": "eleição"},
		"lista": ["eleição"]
	}`)
	assert.False(t, Matches(r, "eleição"))
	assert.False(t, Matches(r, "2024"))
}

func TestCountMatchesScenario(t *testing.T) {
	records := []*Record{
		mustRecord(t, `{"resumo":"Discussão sobre a eleição municipal"}`),
		mustRecord(t, `{"resumo":"Preço do combustível sobe","grupo":"Economia"}`),
	}
	assert.Equal(t, 1, CountMatches(records, "eleição"))
	assert.Equal(t, 0, CountMatches(nil, "eleição"))
}

func TestFilterMatches(t *testing.T) {
	a := mustRecord(t, `{"texto":"a eleição"}`)
	b := mustRecord(t, `{"texto":"nada"}`)
	c := mustRecord(t, `{"palavras_chave":["eleição"]}`)
	assert.Equal(t, []*Record{a, c}, FilterMatches([]*Record{a, b, c}, "ELEIÇÃO"))
}
