// Package mentions interprets loosely-shaped mention records: it resolves the
// conventional fields, normalizes records for the timeline, renders the text
// report used for copy/export and answers keyword containment queries.
package mentions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindText
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "absent"
	}
}

// Value is one field value of a Record. The zero Value is absent.
type Value struct {
	kind Kind
	text string // text value, or the literal of a number
	b    bool
	list []Value
	m    *Record
}

func Null() Value { return Value{kind: KindNull} }
func Text(s string) Value { return Value{kind: KindText, text: s} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func List(items ...Value) Value { return Value{kind: KindList, list: items} }
func Map(r *Record) Value { return Value{kind: KindMap, m: r} }

// Number builds a numeric value from its float64 form.
func Number(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Texts builds a list of text values.
func Texts(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = Text(s)
	}
	return List(vals...)
}

func numberLiteral(lit string) Value {
	if strings.ContainsAny(lit, ".eE") {
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return Number(f)
		}
	}
	return Value{kind: KindNumber, text: lit}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }
func (v Value) Items() []Value { return v.list }
func (v Value) Record() *Record { return v.m }

// AsText returns the value only when it holds text.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Float returns the numeric value of a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Truthy reports whether the value counts as present for fallback chains:
// non-empty text, non-zero number, true, or any list or map.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindText:
		return v.text != ""
	case KindNumber:
		f, ok := v.Float()
		return ok && f != 0
	case KindBool:
		return v.b
	case KindList, KindMap:
		return true
	default:
		return false
	}
}

// IsEmpty reports absent, null, empty text and empty lists.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return true
	case KindText:
		return v.text == ""
	case KindList:
		return len(v.list) == 0
	default:
		return false
	}
}

// String is the text form of the value. Lists join their elements with a
// comma and maps render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindMap:
		b, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprint(v.m.Keys())
		}
		return string(b)
	default:
		return ""
	}
}

// Record is an ordered mapping of field name to Value. Keys keep the order in
// which they were first set (document order when decoded from JSON).
type Record struct {
	keys []string
	vals map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: map[string]Value{}}
}

// Set stores v under key. Setting an absent value removes the key.
func (r *Record) Set(key string, v Value) *Record {
	if v.kind == KindAbsent {
		r.Delete(key)
		return r
	}
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
	return r
}

// Prepend stores v under key and moves key to the front.
func (r *Record) Prepend(key string, v Value) *Record {
	r.Delete(key)
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	r.keys = append([]string{key}, r.keys...)
	r.vals[key] = v
	return r
}

func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value under key, absent when missing. Safe on a nil Record.
func (r *Record) Get(key string) Value {
	if r == nil {
		return Value{}
	}
	return r.vals[key]
}

func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.vals[key]
	return ok
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Each visits fields in order.
func (r *Record) Each(fn func(key string, v Value)) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		fn(k, r.vals[k])
	}
}

// ParseRecord decodes a JSON object into a Record.
func ParseRecord(data []byte) (*Record, error) {
	r := NewRecord()
	if err := r.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseRecords decodes either a JSON array of objects or JSON lines.
func ParseRecords(data []byte) ([]*Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if trimmed[0] == '[' {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var out []*Record
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if v.kind != KindMap {
				return nil, fmt.Errorf("record %d: expected object, got %s", len(out), v.kind)
			}
			out = append(out, v.m)
		}
		return out, nil
	}
	var out []*Record
	for {
		v, err := decodeValue(dec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(out)+1, err)
		}
		if v.kind != KindMap {
			return nil, fmt.Errorf("record %d: expected object, got %s", len(out)+1, v.kind)
		}
		out = append(out, v.m)
	}
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if v.kind != KindMap {
		return fmt.Errorf("mention record: expected object, got %s", v.kind)
	}
	*r = *v.m
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberLiteral(t.String()), nil
	case json.Delim:
		switch t {
		case '{':
			rec := NewRecord()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				rec.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(rec), nil
		case '[':
			items := []Value{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeRecord(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, r *Record) error {
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, r.vals[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindText:
		return writeString(buf, v.text)
	case KindNumber:
		buf.WriteString(v.text)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		return writeRecord(buf, v.m)
	default:
		buf.WriteString("null")
	}
	return nil
}

// writeString encodes s without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
