package mapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_CollectsParseErrors(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Map("/ok", "/fine")
	b.Map("/a//b", "/x").FilterTo(func(v any) (any, error) { return v, nil })
	b.Map("/c", "/d[x]")

	m, err := b.Build()
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrInvalidSegment))
	assert.Contains(t, err.Error(), `"/a//b"`)
	assert.Contains(t, err.Error(), `"/d[x]"`)

	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_FiltersAndDelegates(t *testing.T) {
	d := New(DefaultConfig())
	tag := func(v any) (any, error) { return v, nil }

	b := NewBuilder(DefaultConfig())
	b.Map("/a", "/x").Using(d).FilterFrom(tag).FilterTo(tag)
	b.Add(NewRule(MustParsePath("/b"), MustParsePath("/y"), nil))

	m := b.MustBuild()
	rules := m.Rules()
	require.Len(t, rules, 2)

	assert.Same(t, d, rules[0].Delegate())
	assert.True(t, rules[0].From().HasFilter())
	assert.True(t, rules[0].To().HasFilter())
	assert.Nil(t, rules[1].Delegate())
	assert.Equal(t, "/b -> /y", rules[1].String())
}

func TestBuilder_BuildIsRepeatable(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Map("/a", "/x")

	first := b.MustBuild()
	b.Map("/b", "/y")
	second := b.MustBuild()

	assert.Len(t, first.Rules(), 1)
	assert.Len(t, second.Rules(), 2)
}
