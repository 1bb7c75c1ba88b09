package catalog

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Field is one decoded key/value pair.
type Field struct {
	Key   string
	Value Value
}

// ErrNotObject is returned when JSON text does not hold a top-level object.
var ErrNotObject = errors.New("json text is not an object")

// FromResult converts a scalar gjson result into a Value. Null, arrays and
// objects have no Value representation.
func FromResult(res gjson.Result) (Value, bool) {
	switch res.Type {
	case gjson.True:
		return Bool(true), true
	case gjson.False:
		return Bool(false), true
	case gjson.Number:
		return Number(res.Num), true
	case gjson.String:
		return String(res.Str), true
	default:
		return Value{}, false
	}
}

// ParseObject validates text and returns its top-level object.
func ParseObject(text string) (gjson.Result, error) {
	if !gjson.Valid(text) {
		return gjson.Result{}, fmt.Errorf("invalid json (%d bytes)", len(text))
	}
	res := gjson.Parse(text)
	if !res.IsObject() {
		return gjson.Result{}, ErrNotObject
	}
	return res, nil
}

// DecodeFields decodes a flat JSON object into typed fields. Duplicate keys
// collapse to their last value while keeping the position of the first
// occurrence. Non-scalar members are reported through skipped.
func DecodeFields(text string) (fields []Field, skipped []string, err error) {
	obj, err := ParseObject(text)
	if err != nil {
		return nil, nil, err
	}
	return collectFields(obj)
}

func collectFields(obj gjson.Result) ([]Field, []string, error) {
	index := make(map[string]int)
	var fields []Field
	var skipped []string
	obj.ForEach(func(key, value gjson.Result) bool {
		v, ok := FromResult(value)
		if !ok {
			skipped = append(skipped, key.String())
			return true
		}
		name := key.String()
		if pos, seen := index[name]; seen {
			fields[pos].Value = v
			return true
		}
		index[name] = len(fields)
		fields = append(fields, Field{Key: name, Value: v})
		return true
	})
	return fields, skipped, nil
}
