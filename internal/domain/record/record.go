// Package record models flat key-value records with ordered fields.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single key/value pair of a record.
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Record is an immutable, ordered mapping from field name to Value.
type Record struct {
	keys   []string
	values map[string]Value
}

// New creates a Record. A repeated key keeps its first position and its last value.
func New(fields ...Field) Record {
	r := Record{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, dup := r.values[f.Key]; !dup {
			r.keys = append(r.keys, f.Key)
		}
		r.values[f.Key] = f.Value
	}
	return r
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the record carries key.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns field names in insertion order.
func (r Record) Keys() []string {
	cp := make([]string, len(r.keys))
	copy(cp, r.keys)
	return cp
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", k, err)
		}
		vb, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object, keeping the field order of the input.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record must be a JSON object: %w", ErrUnsupportedValue)
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("read field %q: %w", key, err)
		}
		v, err := FromAny(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, F(key, v))
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read record end: %w", err)
	}

	*r = New(fields...)
	return nil
}
