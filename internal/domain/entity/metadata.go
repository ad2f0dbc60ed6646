package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MetaKind clasifica el valor guardado en un MetaValue.
type MetaKind int

// Tipos de valor admitidos en Metadata.
const (
	MetaNull MetaKind = iota
	MetaString
	MetaNumber
	MetaBool
	MetaJSON // objeto o arreglo anidado, se conserva tal cual
)

// MetaValue es un valor escalar (string, número decimal, bool, null) o un JSON anidado.
// Los números se conservan como decimal para no perder precisión.
type MetaValue struct {
	kind MetaKind
	str  string
	num  decimal.Decimal
	b    bool
	raw  json.RawMessage
}

// Metadata es un mapa abierto string → valor tipado (columna jsonb de lotes y movimientos).
type Metadata map[string]MetaValue

// StringValue construye un MetaValue de texto.
func StringValue(s string) MetaValue { return MetaValue{kind: MetaString, str: s} }

// NumberValue construye un MetaValue numérico.
func NumberValue(d decimal.Decimal) MetaValue { return MetaValue{kind: MetaNumber, num: d} }

// BoolValue construye un MetaValue booleano.
func BoolValue(b bool) MetaValue { return MetaValue{kind: MetaBool, b: b} }

// Kind devuelve el tipo del valor.
func (v MetaValue) Kind() MetaKind { return v.kind }

// AsString devuelve el texto si el valor es MetaString.
func (v MetaValue) AsString() (string, bool) { return v.str, v.kind == MetaString }

// AsDecimal devuelve el número si el valor es MetaNumber.
func (v MetaValue) AsDecimal() (decimal.Decimal, bool) { return v.num, v.kind == MetaNumber }

// AsBool devuelve el booleano si el valor es MetaBool.
func (v MetaValue) AsBool() (bool, bool) { return v.b, v.kind == MetaBool }

// Raw devuelve el JSON anidado si el valor es MetaJSON.
func (v MetaValue) Raw() (json.RawMessage, bool) { return v.raw, v.kind == MetaJSON }

// MarshalJSON implementa json.Marshaler.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case MetaString:
		return json.Marshal(v.str)
	case MetaNumber:
		return []byte(v.num.String()), nil
	case MetaBool:
		return json.Marshal(v.b)
	case MetaJSON:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("metadata: valor vacío")
	}
	switch data[0] {
	case 'n':
		*v = MetaValue{kind: MetaNull}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		*v = BoolValue(b)
	case '{', '[':
		if !json.Valid(data) {
			return fmt.Errorf("metadata: JSON anidado inválido")
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		*v = MetaValue{kind: MetaJSON, raw: buf.Bytes()}
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("metadata: número inválido %q", data)
		}
		*v = NumberValue(d)
	}
	return nil
}

// Get devuelve el valor de key.
func (m Metadata) Get(key string) (MetaValue, bool) {
	v, ok := m[key]
	return v, ok
}

// OrEmpty devuelve un mapa no nil (la columna jsonb es NOT NULL DEFAULT '{}').
func (m Metadata) OrEmpty() Metadata {
	if m == nil {
		return Metadata{}
	}
	return m
}

// Clone copia superficial del mapa.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
