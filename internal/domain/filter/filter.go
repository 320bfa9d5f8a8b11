// Package filter evaluates tolerant field conditions against records.
//
// A condition naming a field the record lacks, or an operator outside the
// known set, is ignored rather than rejected.
package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/recordq/internal/domain/record"
)

// Condition is a single (key, operator, value) clause.
type Condition struct {
	key      string
	keyed    bool
	op       Operator
	value    record.Value
	valueErr error
	raw      json.RawMessage
}

// New creates a condition. The operator is kept verbatim; unknown operators are
// carried and later ignored during evaluation. A list value compares by its
// rendered form.
func New(key string, op Operator, value record.Value) Condition {
	return Condition{key: key, keyed: true, op: op, value: value}
}

// Key returns the field name the condition targets.
func (c Condition) Key() string { return c.key }

// Op returns the operator.
func (c Condition) Op() Operator { return c.op }

// Value returns the comparison value.
func (c Condition) Value() record.Value { return c.value }

// UnmarshalJSON decodes {"key", "op", "value"} without ever failing on field types.
// A missing op means eq; a non-string key or op makes the condition inert.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("filter condition must be an object: %w", err)
	}
	if obj == nil {
		return errors.New("filter condition is null")
	}

	out := Condition{op: OpEq, raw: append(json.RawMessage(nil), data...)}

	if raw, ok := obj["key"]; ok {
		var key string
		if err := json.Unmarshal(raw, &key); err == nil {
			out.key, out.keyed = key, true
		}
	}

	if raw, ok := obj["op"]; ok {
		var op string
		if err := json.Unmarshal(raw, &op); err == nil {
			out.op = Operator(op)
		} else {
			out.op = ""
		}
	}

	out.value = record.Null()
	if raw, ok := obj["value"]; ok {
		out.value, out.valueErr = decodeValue(raw)
	}

	*c = out
	return nil
}

// MarshalJSON echoes the condition as it was received, or as {key, op, value}.
func (c Condition) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	b, err := json.Marshal(struct {
		Key   string       `json:"key"`
		Op    Operator     `json:"op"`
		Value record.Value `json:"value"`
	}{c.key, c.op, c.value})
	if err != nil {
		return nil, fmt.Errorf("encode condition: %w", err)
	}
	return b, nil
}

// decodeValue accepts scalars and flat lists. Objects and nested lists are faults.
func decodeValue(raw json.RawMessage) (record.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return record.Null(), fmt.Errorf("decode value: %w", err)
	}
	val, err := record.FromAny(v)
	if err != nil {
		return record.Null(), fmt.Errorf("condition value: %w", err)
	}
	return val, nil
}

// Parse decodes a JSON array of conditions. Anything other than an array yields
// no conditions; array elements that are not objects are skipped.
func Parse(data []byte) []Condition {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	conds := make([]Condition, 0, len(items))
	for _, item := range items {
		var c Condition
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		conds = append(conds, c)
	}
	return conds
}

// Matches reports whether r satisfies c.
func Matches(r record.Record, c Condition) bool {
	if !c.keyed {
		return true
	}
	field, ok := r.Get(c.key)
	if !ok {
		return true
	}
	if !c.op.Valid() {
		return true
	}
	if c.valueErr != nil {
		return false
	}

	needle := c.value.String()
	if field.IsList() && c.op == OpContains {
		needle = strings.ToLower(needle)
		for _, item := range field.Items() {
			if strings.Contains(strings.ToLower(item.String()), needle) {
				return true
			}
		}
		return false
	}

	return c.op.eval(field.String(), needle)
}

// Apply keeps the records that satisfy every condition, in input order.
// With no conditions the input is returned as is.
func Apply(records []record.Record, conds []Condition) []record.Record {
	if len(conds) == 0 {
		return records
	}
	working := records
	for _, c := range conds {
		next := make([]record.Record, 0, len(working))
		for _, r := range working {
			if Matches(r, c) {
				next = append(next, r)
			}
		}
		working = next
	}
	return working
}
