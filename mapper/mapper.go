package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// Observer is notified after every rule of every mapping call.
// Implementations must be safe for concurrent use when the Mapper is shared.
type Observer interface {
	ObserveRule(mapper string, dir Direction, rule Rule, outcome Outcome)
}

// Config holds the settings of a Mapper.
type Config struct {
	// Name identifies the mapper in logs, metrics and errors.
	Name string
	// ConflictPolicy resolves destination nodes of the wrong shape.
	ConflictPolicy ConflictPolicy
	// Symbolizer canonicalizes top-level input keys. Nil means SymbolizeKeys.
	Symbolizer Symbolizer
	// Logger receives debug records for skipped rules. Nil discards them.
	Logger *slog.Logger
	// Observer, if set, sees the outcome of each rule.
	Observer Observer
}

// DefaultConfig returns the default mapper configuration.
func DefaultConfig() Config {
	return Config{
		ConflictPolicy: ConflictOverwrite,
		Symbolizer:     SymbolizeKeys,
		Logger:         slog.New(slog.DiscardHandler),
	}
}

// Mapper applies an ordered list of rules to whole documents.
// It is immutable once created and safe for concurrent use.
type Mapper struct {
	config Config
	rules  []Rule
}

// New creates a Mapper. Rules run in the given order; when two rules write the
// same destination, the later one wins.
func New(config Config, rules ...Rule) *Mapper {
	if config.Symbolizer == nil {
		config.Symbolizer = SymbolizeKeys
	}

	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	return &Mapper{
		config: config,
		rules:  slices.Clone(rules),
	}
}

// Name returns the configured name.
func (m *Mapper) Name() string {
	return m.config.Name
}

// Config returns the configuration the mapper was built with.
func (m *Mapper) Config() Config {
	return m.config
}

// Rules returns a copy of the rules in registration order.
func (m *Mapper) Rules() []Rule {
	return slices.Clone(m.rules)
}

// Normalize converts a canonical document to its wire form.
func (m *Mapper) Normalize(doc any) (map[string]any, error) {
	return m.Process(DirectionNormalize, doc)
}

// Denormalize converts a wire document to its canonical form.
func (m *Mapper) Denormalize(doc any) (map[string]any, error) {
	return m.Process(DirectionDenormalize, doc)
}

// Process converts doc in the given direction. On error no output is returned.
func (m *Mapper) Process(dir Direction, doc any) (map[string]any, error) {
	input, err := m.config.Symbolizer(doc)
	if err != nil {
		return nil, m.wrap(dir, err)
	}

	output := make(map[string]any, len(m.rules))

	for _, rule := range m.rules {
		outcome, err := rule.ProcessInto(output, input, dir, m.config.ConflictPolicy)
		if err != nil {
			return nil, m.wrap(dir, err)
		}

		if outcome != OutcomeApplied {
			m.config.Logger.LogAttrs(context.Background(), slog.LevelDebug, "rule skipped",
				slog.String("mapper", m.config.Name),
				slog.String("direction", dir.String()),
				slog.String("rule", rule.String()),
				slog.String("outcome", outcome.String()))
		}

		if m.config.Observer != nil {
			m.config.Observer.ObserveRule(m.config.Name, dir, rule, outcome)
		}
	}

	return output, nil
}

func (m *Mapper) wrap(dir Direction, err error) error {
	if m.config.Name == "" {
		return fmt.Errorf("%s: %w", dir, err)
	}

	return fmt.Errorf("%s %s: %w", m.config.Name, dir, err)
}
