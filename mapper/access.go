package mapper

import (
	"reflect"
)

// lookupKey reads key from any map whose keys can hold a string.
func lookupKey(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case map[any]any:
		v, ok := c[key]
		return v, ok
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	kt := rv.Type().Key()

	var kv reflect.Value

	switch {
	case kt.Kind() == reflect.String:
		kv = reflect.ValueOf(key).Convert(kt)
	case kt.Kind() == reflect.Interface && reflect.TypeOf(key).Implements(kt):
		kv = reflect.ValueOf(key)
	default:
		return nil, false
	}

	v := rv.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

// lookupIndex reads seq[index] from a slice or array. An index past the end
// is reported as missing, so the rule is skipped instead of writing nil.
func lookupIndex(seq any, index int) (any, bool) {
	if s, ok := seq.([]any); ok {
		if index >= len(s) {
			return nil, false
		}

		return s[index], true
	}

	rv := reflect.ValueOf(seq)
	if !isSequence(rv) {
		return nil, false
	}

	if index >= rv.Len() {
		return nil, false
	}

	return rv.Index(index).Interface(), true
}

// isSequence reports whether rv is a slice or array other than a byte string.
func isSequence(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// cloneValue deep-copies containers into map[string]any and []any so that
// written values never alias the input and outputs stay JSON-shaped. Map keys
// are rendered as by SymbolizeKeys and keys that cannot be rendered are
// dropped. A nil map becomes an empty one. Other values are returned unchanged.
func cloneValue(v any) any {
	switch c := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, e := range c {
			out[k] = cloneValue(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(c))
		for k, e := range c {
			if key, ok := symbolizeKey(k); ok {
				out[key] = cloneValue(e)
			}
		}

		return out
	case []any:
		out := make([]any, len(c))
		for i, e := range c {
			out[i] = cloneValue(e)
		}

		return out
	}

	rv := reflect.ValueOf(v)

	switch {
	case rv.Kind() == reflect.Map:
		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			if key, ok := symbolizeKey(iter.Key().Interface()); ok {
				out[key] = cloneValue(iter.Value().Interface())
			}
		}

		return out
	case isSequence(rv):
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = cloneValue(rv.Index(i).Interface())
		}

		return out
	default:
		return v
	}
}

// isNil reports whether v is nil or a nil map, slice or pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
