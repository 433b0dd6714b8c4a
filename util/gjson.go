package util

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// IntField reads an optional integer from obj. Missing and null give nil.
// Numeric strings are accepted since model and upstream JSON is loose
// about quoting numbers.
func IntField(obj gjson.Result, key string) (*int, error) {
	v := obj.Get(key)
	switch v.Type {
	case gjson.Null:
		return nil, nil
	case gjson.Number:
		return Ptr(int(v.Int())), nil
	case gjson.String:
		n, err := strconv.Atoi(v.Str)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, v.Str)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("%s: expected an integer, got %s", key, v.Raw)
	}
}

// FloatField is IntField for floating point values.
func FloatField(obj gjson.Result, key string) (*float64, error) {
	v := obj.Get(key)
	switch v.Type {
	case gjson.Null:
		return nil, nil
	case gjson.Number:
		return Ptr(v.Float()), nil
	case gjson.String:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", key, v.Str)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("%s: expected a number, got %s", key, v.Raw)
	}
}

// StringList returns nil when v is missing or null, its elements when it
// is an array, or v itself as a one-element list.
func StringList(v gjson.Result) []string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		return []string{v.String()}
	}
	items := v.Array()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}
