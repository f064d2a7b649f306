package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "normalize", want: DirectionNormalize},
		{in: "Denormalize", want: DirectionDenormalize},
		{in: "DENORMALIZE", want: DirectionDenormalize},
		{in: "sideways", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirection_StringRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirectionNormalize, DirectionDenormalize} {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	assert.Equal(t, "Direction(7)", Direction(7).String())
}

func TestDirection_Reverse(t *testing.T) {
	assert.Equal(t, DirectionDenormalize, DirectionNormalize.Reverse())
	assert.Equal(t, DirectionNormalize, DirectionDenormalize.Reverse())

	r := rule("/a", "/x")
	src, dst := r.paths(DirectionNormalize)
	rsrc, rdst := r.paths(DirectionNormalize.Reverse())
	assert.Equal(t, src, rdst)
	assert.Equal(t, dst, rsrc)
}

func TestParseConflictPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ConflictPolicy
		wantErr bool
	}{
		{in: "", want: ConflictOverwrite},
		{in: "overwrite", want: ConflictOverwrite},
		{in: "fail", want: ConflictFail},
		{in: "skip", want: ConflictSkip},
		{in: "merge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConflictPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
