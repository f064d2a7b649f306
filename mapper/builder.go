package mapper

import (
	"errors"
	"fmt"
)

// Builder collects rules and produces an immutable Mapper.
//
//	b := mapper.NewBuilder(mapper.DefaultConfig())
//	b.Map("/name/first", "/first_name")
//	b.Map("/address", "/addr").Using(addressMapper)
//	b.Map("/age", "/age").FilterTo(toString)
//	m, err := b.Build()
type Builder struct {
	config Config
	rules  []*RuleBuilder
	errs   []error
}

// RuleBuilder configures one rule registered with Builder.Map.
type RuleBuilder struct {
	from     Path
	to       Path
	delegate Delegate
}

// NewBuilder creates an empty builder.
func NewBuilder(config Config) *Builder {
	return &Builder{config: config}
}

// Map registers a rule between two path strings. A path that fails to parse
// keeps the rule out of the mapper and is reported by Build; the returned
// RuleBuilder is still usable so chained calls stay safe.
func (b *Builder) Map(from, to string) *RuleBuilder {
	rb := &RuleBuilder{}

	fromPath, fromErr := ParsePath(from)
	toPath, toErr := ParsePath(to)

	if err := errors.Join(fromErr, toErr); err != nil {
		b.errs = append(b.errs, fmt.Errorf("map %q -> %q: %w", from, to, err))
		return rb
	}

	rb.from, rb.to = fromPath, toPath
	b.rules = append(b.rules, rb)

	return rb
}

// Add registers an already constructed rule.
func (b *Builder) Add(rule Rule) *Builder {
	b.rules = append(b.rules, &RuleBuilder{from: rule.from, to: rule.to, delegate: rule.delegate})
	return b
}

// Build returns the Mapper, or the joined registration errors.
func (b *Builder) Build() (*Mapper, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	rules := make([]Rule, 0, len(b.rules))
	for _, rb := range b.rules {
		rules = append(rules, rb.Rule())
	}

	return New(b.config, rules...), nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Mapper {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}

	return m
}

// Using delegates the rule's value to a nested mapper.
func (rb *RuleBuilder) Using(d Delegate) *RuleBuilder {
	rb.delegate = d
	return rb
}

// FilterFrom sets the filter applied when the from path is written,
// i.e. during Denormalize.
func (rb *RuleBuilder) FilterFrom(f Filter) *RuleBuilder {
	rb.from = rb.from.WithFilter(f)
	return rb
}

// FilterTo sets the filter applied when the to path is written,
// i.e. during Normalize.
func (rb *RuleBuilder) FilterTo(f Filter) *RuleBuilder {
	rb.to = rb.to.WithFilter(f)
	return rb
}

// Rule returns the rule as currently configured.
func (rb *RuleBuilder) Rule() Rule {
	return NewRule(rb.from, rb.to, rb.delegate)
}
