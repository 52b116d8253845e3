package mentions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const fullRecord = `{
	"id": 7,
	"resumo": "Discussão sobre a eleição municipal",
	"created_at": "2024-01-10T12:30:00Z",
	"prioridade": "alta",
	"tipo": "alert",
	"grupo": "Grupo A",
	"urgente": true,
	"palavras_chave": ["eleição", "prefeito"],
	"sender_phone": "(11) 91234-5678",
	"senderName": "Ana",
	"vazio": "",
	"lista": [],
	"nada": null,
	"extra": {"a": 1, "b": [1, 2]}
}`

func TestFlatten(t *testing.T) {
	want := "=== DETALHES DA MENÇÃO ===\n\n" +
		"RESUMO:\nDiscussão sobre a eleição municipal\n\n" +
		"ID: 7\n" +
		"DATA: 10/01/2024, 09:30:00\n" +
		"PRIORIDADE: ALTA\n" +
		"TIPO: alert\n" +
		"GRUPO/FONTE: Grupo A\n" +
		"URGENTE: SIM\n" +
		"PALAVRAS-CHAVE: eleição, prefeito\n" +
		"\n--- INFORMAÇÕES ADICIONAIS ---\n" +
		"Sender phone: (11) 91234-5678\n" +
		"Sender Name: Ana\n" +
		"Extra: {\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}\n"

	assert.Equal(t, want, Flatten(mustRecord(t, fullRecord), brt))
}

func TestFlattenIsIdempotent(t *testing.T) {
	r := mustRecord(t, fullRecord)
	assert.Equal(t, Flatten(r, brt), Flatten(r, brt))
}

func TestFlattenMinimalRecord(t *testing.T) {
	got := Flatten(mustRecord(t, `{"urgente":false,"data":"???"}`), brt)
	want := "=== DETALHES DA MENÇÃO ===\n\n" +
		"DATA: ???\n" +
		"URGENTE: NÃO\n" +
		"\n--- INFORMAÇÕES ADICIONAIS ---\n"
	assert.Equal(t, want, got)
}

func TestHumanizeKey(t *testing.T) {
	cases := map[string]string{
		"sender_phone": "Sender phone",
		"senderPhone":  "Sender Phone",
		"_interno":     "Interno",
		"ação":         "Ação",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, HumanizeKey(in), in)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "ficha_menção_7.txt", ExportFileName(mustRecord(t, `{"id":7}`), now))
	assert.Equal(t, "ficha_menção_1700000000000.txt", ExportFileName(NewRecord(), now))
}
