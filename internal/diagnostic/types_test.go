package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "message only",
			d:    Diagnostic{Message: "boom"},
			want: "boom",
		},
		{
			name: "full",
			d: Diagnostic{
				Code:     "unknown_filter",
				Message:  `unknown filter "upcas"`,
				Mapper:   "contact",
				Location: "rules[0].to",
			},
			want: `[contact] rules[0].to: [unknown_filter] unknown filter "upcas"`,
		},
		{
			name: "suggestions",
			d: Diagnostic{
				Code:        "unknown_delegate",
				Message:     `unknown mapper "adress"`,
				Suggestions: []string{"address", "addresses"},
			},
			want: `[unknown_delegate] unknown mapper "adress" (did you mean "address" or "addresses"?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddWarning("empty_rules", "mapper has no rules", "m", "")
	d.AddInfo("note", "fyi", "", "")
	assert.False(t, d.HasErrors())

	var other Diagnostics
	other.AddError("a", "first", "m", "rules[0]")
	other.AddError("b", "second", "", "", "x")
	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 4)
	assert.Equal(t, SeverityError, d.All()[0].Severity)
	assert.Equal(t, SeverityInfo, d.All()[3].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "[m] rules[0]: [a] first\n[b] second (did you mean \"x\"?)", err.Error())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(7).String())
}
