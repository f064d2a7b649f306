package mapper

import (
	"encoding"
	"fmt"
	"maps"
	"reflect"
	"strconv"
)

// Symbolizer turns the top-level keys of a document into the canonical string
// form that path segments are matched against. Nested values are left alone.
type Symbolizer func(doc any) (map[string]any, error)

// SymbolizeKeys is the default Symbolizer.
//
// A nil document yields an empty map. Keys are rendered from string kinds,
// fmt.Stringer, encoding.TextMarshaler, integers, floats and bools. Keys that
// cannot be rendered are dropped since no path can address them. Anything
// other than a map is rejected with ErrNotDocument.
func SymbolizeKeys(doc any) (map[string]any, error) {
	switch d := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if d == nil {
			return map[string]any{}, nil
		}

		return maps.Clone(d), nil
	case map[any]any:
		out := make(map[string]any, len(d))

		for k, v := range d {
			if key, ok := symbolizeKey(k); ok {
				out[key] = v
			}
		}

		return out, nil
	}

	rv := reflect.ValueOf(doc)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: got %T", ErrNotDocument, doc)
	}

	out := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		if key, ok := symbolizeKey(iter.Key().Interface()); ok {
			out[key] = iter.Value().Interface()
		}
	}

	return out, nil
}

func symbolizeKey(k any) (string, bool) {
	switch key := k.(type) {
	case string:
		return key, true
	case fmt.Stringer:
		return key.String(), true
	case encoding.TextMarshaler:
		b, err := key.MarshalText()
		if err != nil {
			return "", false
		}

		return string(b), true
	case nil:
		return "", false
	}

	rv := reflect.ValueOf(k)

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	default:
		return "", false
	}
}
