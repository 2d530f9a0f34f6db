package jsondoc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

// Clone deep-copies a document value.
func Clone(v interface{}) interface{} {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports structural equality. Object key order is ignored and numbers
// are compared by value, so 1 and 1.0 are equal.
func Equal(a, b interface{}) bool {
	switch at := a.(type) {
	case nil:
		return b == nil
	case *Object:
		bt, ok := b.(*Object)
		if !ok || at.Len() != bt.Len() {
			return false
		}
		for _, k := range at.keys {
			bv, ok := bt.values[k]
			if !ok || !Equal(at.values[k], bv) {
				return false
			}
		}
		return true
	case []interface{}:
		bt, ok := b.([]interface{})
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	case json.Number:
		bt, ok := b.(json.Number)
		if !ok {
			return false
		}
		if at == bt {
			return true
		}
		return numbersEqual(string(at), string(bt))
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Truthy applies JavaScript truthiness: null, false, "" and 0 are falsy,
// every array and object is truthy.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || f != 0
	default:
		return true
	}
}

// FromGo converts plain Go values (maps, slices, numbers) into document
// values. Map keys are sorted since Go maps carry no order.
func FromGo(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil, bool, string, json.Number:
		return t, nil
	case *Object:
		return t.Clone(), nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			conv, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			conv, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, conv)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToGo converts a document value into plain Go values: objects become maps
// and numbers become int64 or float64.
func ToGo(v interface{}) interface{} {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]interface{}, t.Len())
		for _, k := range t.keys {
			m[k] = ToGo(t.values[k])
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = ToGo(item)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	default:
		return v
	}
}

// numbersEqual compares two JSON number literals exactly. big.Rat keeps
// integers beyond 2^53 and decimals like 0.1 without rounding.
func numbersEqual(a, b string) bool {
	ar, okA := new(big.Rat).SetString(a)
	br, okB := new(big.Rat).SetString(b)
	return okA && okB && ar.Cmp(br) == 0
}
