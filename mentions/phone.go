package mentions

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Candidate phone fields, in lookup order.
var PhoneKeys = []string{
	"sender_phone", "phone", "telefone", "numero", "numero_telefone",
	"whatsapp", "celular", "mobile", "contact",
}

const DefaultCountryCode = "55"

// ExtractPhone returns the first usable phone number of the record in
// +<digits> form. Numbers without an explicit "+" are assumed local to
// countryCode. Candidates without any digit are skipped.
func ExtractPhone(r *Record, countryCode string) (string, bool) {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	for _, k := range PhoneKeys {
		v := r.Get(k)
		if !v.Truthy() {
			continue
		}
		if phone, ok := NormalizePhone(v.String(), countryCode); ok {
			return phone, true
		}
	}
	return "", false
}

// NormalizePhone strips raw down to digits and "+" signs. A result that
// starts with "+" already carries its country code.
func NormalizePhone(raw, countryCode string) (string, bool) {
	var stripped, digits strings.Builder
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9':
			stripped.WriteRune(c)
			digits.WriteRune(c)
		case c == '+':
			stripped.WriteRune(c)
		}
	}
	plus := strings.HasPrefix(stripped.String(), "+")
	d := digits.String()
	if d == "" {
		return "", false
	}
	if plus {
		return "+" + d, true
	}
	d = strings.TrimLeft(d, "0")
	if !strings.HasPrefix(d, countryCode) {
		d = countryCode + d
	}
	return "+" + d, true
}

const (
	greetingPrefix  = "Olá, gostaria de mais informações sobre a menção registrada:\n\n"
	greetingDefault = "menção registrada"
	greetingMaxLen  = 100
)

// WhatsAppLink builds a wa.me deep link to phone with a greeting that quotes
// the record summary, truncated to 100 characters.
func WhatsAppLink(phone string, r *Record) string {
	summary, ok := Summary(r)
	if !ok {
		summary = greetingDefault
	}
	if utf8.RuneCountInString(summary) > greetingMaxLen {
		summary = string([]rune(summary)[:greetingMaxLen]) + "..."
	}
	var digits strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	text := strings.ReplaceAll(url.QueryEscape(greetingPrefix+summary), "+", "%20")
	return "https://wa.me/" + digits.String() + "?text=" + text
}
