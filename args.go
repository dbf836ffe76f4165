package mcplite

import (
	"encoding/json"
	"reflect"
)

// Float returns args[name] as a float64. It accepts json.Number, which is how the
// Dispatcher delivers numbers, and Go numeric values passed by direct callers.
func Float(args map[string]any, name string) (float64, bool) {
	switch v := args[name].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(args[name])
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

// Int returns args[name] as an int64. Fractional or out of range numbers report false.
func Int(args map[string]any, name string) (int64, bool) {
	switch v := args[name].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(args[name])
	switch {
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		u := rv.Uint()
		return int64(u), u <= 1<<63-1
	case rv.CanFloat():
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}
