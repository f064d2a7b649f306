package mapping

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"hash-mapper/mapper"
)

// FilterRegistry holds named filters that rule files refer to.
type FilterRegistry struct {
	filters map[string]mapper.Filter
}

// NewFilterRegistry creates a new empty filter registry.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		filters: make(map[string]mapper.Filter),
	}
}

// DefaultFilters returns a registry preloaded with the builtin filters.
func DefaultFilters() *FilterRegistry {
	r := NewFilterRegistry()
	for name, f := range builtinFilters {
		r.Add(name, f)
	}

	return r
}

// Add registers f under name, replacing any previous filter of that name.
func (r *FilterRegistry) Add(name string, f mapper.Filter) {
	r.filters[name] = f
}

// Get returns the filter registered under name, or nil if not found.
func (r *FilterRegistry) Get(name string) mapper.Filter {
	return r.filters[name]
}

// Has returns true if a filter with the given name exists.
func (r *FilterRegistry) Has(name string) bool {
	_, exists := r.filters[name]
	return exists
}

// Names returns all filter names, sorted.
func (r *FilterRegistry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

var builtinFilters = map[string]mapper.Filter{
	"identity": func(v any) (any, error) { return v, nil },
	"string":   toString,
	"int":      toInt,
	"float":    toFloat,
	"bool":     toBool,
	"upcase":   stringFilter(strings.ToUpper),
	"downcase": stringFilter(strings.ToLower),
	"trim":     stringFilter(strings.TrimSpace),
}

// stringFilter lifts a string function into a filter. Non-string values
// pass through unchanged.
func stringFilter(fn func(string) string) mapper.Filter {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}

		return fn(s), nil
	}
}

func toString(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		if n, ok := asInt64(v); ok {
			return strconv.FormatInt(n, 10), nil
		}

		return nil, fmt.Errorf("string: unsupported value %T", v)
	}
}

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int: %w", err)
		}

		return n, nil
	case float64:
		if x != math.Trunc(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			return nil, fmt.Errorf("int: %v is not an integer", x)
		}

		return int64(x), nil
	case bool:
		if x {
			return int64(1), nil
		}

		return int64(0), nil
	default:
		if n, ok := asInt64(v); ok {
			return n, nil
		}

		return nil, fmt.Errorf("int: unsupported value %T", v)
	}
}

func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("float: %w", err)
		}

		return f, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	default:
		if n, ok := asInt64(v); ok {
			return float64(n), nil
		}

		return nil, fmt.Errorf("float: unsupported value %T", v)
	}
}

// toBool accepts true/false, yes/no, on/off and 0/1.
func toBool(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		default:
			return nil, fmt.Errorf("bool: only strings true/false, yes/no, on/off are allowed, got: %s", x)
		}
	default:
		if n, ok := asInt64(v); ok && (n == 0 || n == 1) {
			return n == 1, nil
		}

		if f, ok := v.(float64); ok && (f == 0 || f == 1) {
			return f == 1, nil
		}

		return nil, fmt.Errorf("bool: unsupported value %v", v)
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	default:
		return 0, false
	}
}
