package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilters(t *testing.T) {
	r := DefaultFilters()
	assert.Equal(t, []string{"bool", "downcase", "float", "identity", "int", "string", "trim", "upcase"}, r.Names())
	assert.False(t, r.Has("nope"))
	assert.Nil(t, r.Get("nope"))
}

func TestBuiltinFilters(t *testing.T) {
	tests := []struct {
		filter  string
		in      any
		want    any
		wantErr bool
	}{
		{filter: "identity", in: []any{1}, want: []any{1}},
		{filter: "string", in: 42, want: "42"},
		{filter: "string", in: 1.5, want: "1.5"},
		{filter: "string", in: true, want: "true"},
		{filter: "string", in: nil, want: nil},
		{filter: "string", in: []any{}, wantErr: true},
		{filter: "int", in: " 12 ", want: int64(12)},
		{filter: "int", in: 3.0, want: int64(3)},
		{filter: "int", in: 3.5, wantErr: true},
		{filter: "int", in: float64(1 << 63), wantErr: true},
		{filter: "int", in: float64(math.MinInt64), want: int64(math.MinInt64)},
		{filter: "int", in: "x", wantErr: true},
		{filter: "int", in: uint8(7), want: int64(7)},
		{filter: "float", in: "2.5", want: 2.5},
		{filter: "float", in: 2, want: 2.0},
		{filter: "bool", in: "Yes", want: true},
		{filter: "bool", in: "off", want: false},
		{filter: "bool", in: 1, want: true},
		{filter: "bool", in: "maybe", wantErr: true},
		{filter: "upcase", in: "abc", want: "ABC"},
		{filter: "upcase", in: 5, want: 5},
		{filter: "downcase", in: "ABC", want: "abc"},
		{filter: "trim", in: "  a  ", want: "a"},
	}

	r := DefaultFilters()

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := r.Get(tt.filter)(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterRegistry_Add(t *testing.T) {
	r := NewFilterRegistry()
	assert.Empty(t, r.Names())

	r.Add("zero", func(any) (any, error) { return 0, nil })
	require.True(t, r.Has("zero"))

	v, err := r.Get("zero")("anything")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
