package enum

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Panics(t, func() { New() })

	flag := New("json", "yaml")
	assert.Equal(t, "json", flag.String())
	assert.Equal(t, Type, flag.Type())
}

func TestFlag_Set(t *testing.T) {
	options := []string{"json", "yaml"}

	flag := New(options...)
	require.NoError(t, flag.Set("yaml"))
	assert.Equal(t, "yaml", flag.String())

	require.Error(t, flag.Set("xml"))
	assert.Equal(t, "yaml", flag.String())
	assert.Equal(t, []string{"json", "yaml"}, options, "options must not be mutated")
}

func TestGet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	VarP(fs, "output", "o", []string{"json", "yaml"}, "output format")
	fs.String("plain", "", "not an enum")

	require.NoError(t, fs.Parse([]string{"-o", "yaml"}))

	v, err := Get(fs, "output")
	require.NoError(t, err)
	assert.Equal(t, "yaml", v)

	_, err = Get(fs, "missing")
	require.Error(t, err)

	_, err = Get(fs, "plain")
	require.Error(t, err)

	assert.Contains(t, fs.Lookup("output").Usage, "(must be one of [json yaml])")
}
