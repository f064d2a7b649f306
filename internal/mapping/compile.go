package mapping

import (
	"errors"
	"fmt"

	"hash-mapper/internal/common"
	"hash-mapper/internal/match"
	"hash-mapper/mapper"
)

// ErrUnknownMapper is returned by Set.Mapper for names the rule file does
// not declare.
var ErrUnknownMapper = errors.New("unknown mapper")

// CompileOptions controls how a rule file becomes mappers.
type CompileOptions struct {
	// Filters resolves filter names. Nil means DefaultFilters.
	Filters *FilterRegistry

	// Base is copied into every mapper; Name and ConflictPolicy are then
	// taken from the mapper definition.
	Base mapper.Config

	// OverrideConflict makes Base.ConflictPolicy win over on_conflict.
	OverrideConflict bool
}

// Set is the result of compiling a rule file.
type Set struct {
	root    string
	names   []string
	mappers map[string]*mapper.Mapper
}

// Compile validates mf and builds one mapper per definition. Delegates are
// built before the mappers that use them, so a delegate reference is always
// a finished *mapper.Mapper.
func Compile(mf *MappingFile, opts CompileOptions) (*Set, error) {
	if opts.Filters == nil {
		opts.Filters = DefaultFilters()
	}

	diags := Validate(mf, opts.Filters)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid rule file: %w", diags.Error())
	}

	set := &Set{
		root:    mf.RootName(),
		names:   mf.MapperNames(),
		mappers: make(map[string]*mapper.Mapper, len(mf.Mappers)),
	}

	order, _ := delegationOrder(mf)

	for _, i := range order {
		md := &mf.Mappers[i]

		m, err := compileMapper(md, set, opts)
		if err != nil {
			return nil, fmt.Errorf("mapper %q: %w", md.Name, err)
		}

		set.mappers[md.Name] = m
	}

	return set, nil
}

func compileMapper(md *MapperDef, set *Set, opts CompileOptions) (*mapper.Mapper, error) {
	cfg := opts.Base
	cfg.Name = md.Name

	if !opts.OverrideConflict {
		policy, err := mapper.ParseConflictPolicy(md.OnConflict)
		if err != nil {
			return nil, err
		}

		cfg.ConflictPolicy = policy
	}

	var rules []mapper.Rule

	for i, rd := range md.Rules {
		var delegate mapper.Delegate
		if rd.Using != "" {
			delegate = set.mappers[rd.Using]
		}

		var errs []error

		common.Product(rd.From, rd.To, func(from, to PathRef) {
			fp, err := resolvePath(from, opts.Filters)
			if err != nil {
				errs = append(errs, err)
				return
			}

			tp, err := resolvePath(to, opts.Filters)
			if err != nil {
				errs = append(errs, err)
				return
			}

			rules = append(rules, mapper.NewRule(fp, tp, delegate))
		})

		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
	}

	return mapper.New(cfg, rules...), nil
}

func resolvePath(ref PathRef, filters *FilterRegistry) (mapper.Path, error) {
	p, err := mapper.ParsePath(ref.Path)
	if err != nil {
		return mapper.Path{}, err
	}

	if ref.Filter == "" {
		return p, nil
	}

	f := filters.Get(ref.Filter)
	if f == nil {
		return mapper.Path{}, fmt.Errorf("unknown filter %q", ref.Filter)
	}

	return p.WithFilter(f), nil
}

// Mapper returns the compiled mapper with the given name.
func (s *Set) Mapper(name string) (*mapper.Mapper, error) {
	if m, ok := s.mappers[name]; ok {
		return m, nil
	}

	err := fmt.Errorf("%w %q", ErrUnknownMapper, name)
	if sugg := match.Suggest(name, s.names, match.DefaultMinScore, maxSuggestions); len(sugg) > 0 {
		err = fmt.Errorf("%w (did you mean %q?)", err, sugg[0])
	}

	return nil, err
}

// Root returns the root mapper.
func (s *Set) Root() *mapper.Mapper {
	return s.mappers[s.root]
}

// RootName returns the name of the root mapper.
func (s *Set) RootName() string {
	return s.root
}

// Names returns the mapper names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}
