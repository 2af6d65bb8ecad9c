package utils

import (
	"bytes"
	"encoding/json"
	"sort"
)

type OrderedKV[T any] struct {
	Value T
	Order int64
}

type OrderedKVMap[T any] map[string]OrderedKV[T]

// Row is an export row: column name to value, with a stable column order.
type Row = OrderedKVMap[any]

// NewRow builds a row whose column order follows the given headers.
func NewRow(headers []string, values []any) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		var v any
		if i < len(values) {
			v = values[i]
		}
		row[h] = OrderedKV[any]{Value: v, Order: int64(i)}
	}
	return row
}

func (om OrderedKVMap[T]) sorted() []string {
	keys := make([]string, 0, len(om))
	for k := range om {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return om[keys[i]].Order < om[keys[j]].Order
	})
	return keys
}

// Keys returns the column names in order.
func (om OrderedKVMap[T]) Keys() []string {
	return om.sorted()
}

// Values returns the values in column order.
func (om OrderedKVMap[T]) Values() []T {
	keys := om.sorted()
	values := make([]T, 0, len(keys))
	for _, k := range keys {
		values = append(values, om[k].Value)
	}
	return values
}

func (om OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	keys := om.sorted()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(om[k].Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
