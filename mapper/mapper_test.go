package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func mustBuild(t *testing.T, cfg Config, fn func(b *Builder)) *Mapper {
	t.Helper()

	b := NewBuilder(cfg)
	fn(b)

	m, err := b.Build()
	require.NoError(t, err)

	return m
}

func TestMapper_SingleRule(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a/b", "/x/y")
	})

	out, err := m.Normalize(map[string]any{"a": map[string]any{"b": 5}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": map[string]any{"y": 5}}, out)

	out, err = m.Denormalize(map[string]any{"x": map[string]any{"y": 5}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 5}}, out)
}

func TestMapper_MissingKey(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a/b", "/x")
	})

	out, err := m.Normalize(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)
	assert.NotContains(t, out, "x")
}

func TestMapper_ArrayIndex(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a/b[0]", "/x")
	})

	out, err := m.Normalize(map[string]any{"a": map[string]any{"b": []any{10, 20}}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 10}, out)
}

func childMapper(t *testing.T) *Mapper {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Name = "child"

	return mustBuild(t, cfg, func(b *Builder) {
		b.Map("/inner", "/i")
	})
}

func TestMapper_DelegateScalar(t *testing.T) {
	d := childMapper(t)
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/child", "/c").Using(d)
	})

	out, err := m.Normalize(map[string]any{"child": map[string]any{"inner": 7}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": map[string]any{"i": 7}}, out)

	back, err := m.Denormalize(out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"child": map[string]any{"inner": 7}}, back)
}

func TestMapper_DelegateSequence(t *testing.T) {
	d := childMapper(t)
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/child", "/c").Using(d)
	})

	in := map[string]any{"child": []any{
		map[string]any{"inner": 1},
		map[string]any{"inner": 2},
	}}

	out, err := m.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": []any{
		map[string]any{"i": 1},
		map[string]any{"i": 2},
	}}, out, spew.Sdump(out))
}

func TestMapper_DelegateNotADocument(t *testing.T) {
	d := childMapper(t)
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/child", "/c").Using(d)
	})

	out, err := m.Normalize(map[string]any{"child": 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotDocument))
	assert.Nil(t, out)
}

func TestMapper_Filter(t *testing.T) {
	double := func(v any) (any, error) {
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("not an int: %T", v)
		}

		return n * 2, nil
	}

	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a", "/x").FilterTo(double)
	})

	out, err := m.Normalize(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 2}, out)

	// The filter belongs to /x, so it does not run when /a is written.
	out, err = m.Denormalize(map[string]any{"x": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 2}, out)
}

func TestMapper_FilterErrorReturnsNoOutput(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a", "/x")
		b.Map("/b", "/y").FilterTo(func(any) (any, error) { return nil, errors.New("bad value") })
	})

	out, err := m.Normalize(map[string]any{"a": 1, "b": 2})
	require.Error(t, err)
	assert.Nil(t, out)

	var fe *FilterError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "/y", fe.Path)
}

func TestMapper_RuleOrderPrecedence(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/first", "/x")
		b.Map("/second", "/x")
	})

	out, err := m.Normalize(map[string]any{"first": 1, "second": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 2}, out)

	// A later rule writing below an earlier scalar replaces it under the default policy.
	m = mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/first", "/x")
		b.Map("/second", "/x/y")
	})

	out, err = m.Normalize(map[string]any{"first": 1, "second": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": map[string]any{"y": 2}}, out)
}

func TestMapper_ConflictPolicyFail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "strict"
	cfg.ConflictPolicy = ConflictFail

	m := mustBuild(t, cfg, func(b *Builder) {
		b.Map("/first", "/x")
		b.Map("/second", "/x/y")
	})

	out, err := m.Normalize(map[string]any{"first": 1, "second": 2})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrStructuralConflict))
	assert.True(t, strings.HasPrefix(err.Error(), "strict Normalize: "), err.Error())
}

func TestMapper_Idempotence(t *testing.T) {
	upcase := func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }

	address := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/street", "/addr_line")
		b.Map("/zip", "/postal/code")
	})

	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/name/first", "/first_name").FilterTo(upcase)
		b.Map("/name/last", "/last_name")
		b.Map("/tags[1]", "/second_tag")
		b.Map("/addresses", "/addrs").Using(address)
		b.Map("/age", "/meta[0]/age")
	})

	docs := []map[string]any{
		{
			"name":      map[string]any{"first": "ada", "last": "lovelace"},
			"tags":      []any{"math", "engines"},
			"addresses": []any{map[string]any{"street": "St James", "zip": "SW1"}},
			"age":       36,
		},
		{
			"name":      map[string]any{"first": "Alan", "last": "Turing", "middle": "M"},
			"tags":      []any{"a", "b", "c"},
			"addresses": []any{},
			"age":       41,
			"extra":     true,
		},
	}

	for i, d := range docs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			once, err := m.Normalize(d)
			require.NoError(t, err)

			back, err := m.Denormalize(once)
			require.NoError(t, err)

			twice, err := m.Normalize(back)
			require.NoError(t, err)

			assert.Equal(t, once, twice, "normalize(denormalize(normalize(D))):\n%s", spew.Sdump(twice))
		})
	}
}

func TestMapper_SymbolizesTopLevelKeys(t *testing.T) {
	type key string

	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a/b", "/x")
		b.Map("/1", "/one")
		b.Map("/k", "/typed")
	})

	in := map[any]any{
		"a":      map[string]any{"b": "nested"},
		1:        "int key",
		key("k"): "typed key",
	}

	out, err := m.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": "nested", "one": "int key", "typed": "typed key"}, out)
}

func TestMapper_OutputIsJSONShaped(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a", "/x")
		b.Map("/b", "/x/y")
	})

	out, err := m.Normalize(map[string]any{
		"a": map[any]any{"k": map[any]any{1: true}, "list": []int{1, 2}},
		"b": 2,
	})
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": {"k": {"1": true}, "list": [1, 2], "y": 2}}`, string(data))
}

func TestMapper_NilAndNonDocuments(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a", "/x")
	})

	out, err := m.Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = m.Normalize("scalar")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotDocument))
}

func TestMapper_DoesNotModifyInput(t *testing.T) {
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/a", "/a")
		b.Map("/b", "/a/c")
	})

	in := map[string]any{"a": map[string]any{"keep": 1}, "b": 2}
	_, err := m.Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"a": map[string]any{"keep": 1}, "b": 2}, in)
}

func TestMapper_RulesAreSealed(t *testing.T) {
	rules := []Rule{rule("/a", "/x")}
	m := New(DefaultConfig(), rules...)
	rules[0] = rule("/b", "/y")

	got := m.Rules()
	require.Len(t, got, 1)
	assert.Equal(t, "/a -> /x", got[0].String())

	got[0] = rule("/c", "/z")
	assert.Equal(t, "/a -> /x", m.Rules()[0].String())
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveRule(name string, dir Direction, rule Rule, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, fmt.Sprintf("%s %s %s %s", name, dir, rule, outcome))
}

func TestMapper_ObserverAndLogger(t *testing.T) {
	var buf bytes.Buffer

	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Name = "people"
	cfg.Observer = obs
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := mustBuild(t, cfg, func(b *Builder) {
		b.Map("/a", "/x")
		b.Map("/missing", "/y")
	})

	_, err := m.Normalize(map[string]any{"a": 1})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"people Normalize /a -> /x applied",
		"people Normalize /missing -> /y missing_source",
	}, obs.outcomes)

	logged := buf.String()
	assert.Contains(t, logged, "rule skipped")
	assert.Contains(t, logged, "outcome=missing_source")
	assert.NotContains(t, logged, "/a -> /x")
}

func TestMapper_ConcurrentUse(t *testing.T) {
	d := childMapper(t)
	m := mustBuild(t, DefaultConfig(), func(b *Builder) {
		b.Map("/child", "/c").Using(d)
		b.Map("/n", "/list[2]")
	})

	var g errgroup.Group

	for i := range 32 {
		g.Go(func() error {
			out, err := m.Normalize(map[string]any{
				"child": []any{map[string]any{"inner": i}},
				"n":     i,
			})
			if err != nil {
				return err
			}

			want := map[string]any{
				"c":    []any{map[string]any{"i": i}},
				"list": []any{nil, nil, i},
			}
			if !assert.ObjectsAreEqual(want, out) {
				return fmt.Errorf("iteration %d: got %s", i, spew.Sdump(out))
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ConflictOverwrite, cfg.ConflictPolicy)
	assert.NotNil(t, cfg.Symbolizer)
	assert.NotNil(t, cfg.Logger)
	assert.Nil(t, cfg.Observer)

	m := New(Config{})
	assert.NotNil(t, m.Config().Symbolizer)
	assert.NotNil(t, m.Config().Logger)
}
