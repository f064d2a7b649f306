package mapping

import (
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"

	"hash-mapper/internal/diagnostic"
	"hash-mapper/internal/match"
	"hash-mapper/mapper"
)

// supportedVersions is the range of rule file versions this package reads.
var supportedVersions = mustConstraint("^1")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}

	return constraint
}

const maxSuggestions = 3

// Validate checks a rule file against the filter registry. It parses every
// path, resolves every filter and delegate name, and looks for delegation
// cycles. It does not look at documents.
func Validate(mf *MappingFile, filters *FilterRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "rule file is nil", "", "")
		return res
	}

	if filters == nil {
		filters = NewFilterRegistry()
	}

	validateVersion(res, mf.Version)

	if len(mf.Mappers) == 0 {
		res.AddError("no_mappers", "rule file declares no mappers", "", "")
		return res
	}

	names := mf.MapperNames()
	seen := map[string]struct{}{}

	for i := range mf.Mappers {
		md := &mf.Mappers[i]

		if md.Name == "" {
			res.AddError("missing_mapper_name", "mapper has no name", "", fmt.Sprintf("mappers[%d]", i))
		} else if _, ok := seen[md.Name]; ok {
			res.AddError("duplicate_mapper", fmt.Sprintf("duplicate mapper %q", md.Name), md.Name, fmt.Sprintf("mappers[%d]", i))
		}

		seen[md.Name] = struct{}{}

		res.Merge(validateMapper(mf, md, filters))
	}

	if mf.Root != "" {
		if _, ok := seen[mf.Root]; !ok {
			res.AddError("unknown_root", fmt.Sprintf("root mapper %q is not declared", mf.Root), "", "root",
				match.Suggest(mf.Root, names, match.DefaultMinScore, maxSuggestions)...)
		}
	}

	if !res.HasErrors() {
		if _, blocked := delegationOrder(mf); len(blocked) > 0 {
			for _, i := range blocked {
				res.AddError("delegate_cycle", "mapper is part of a delegation cycle", mf.Mappers[i].Name, "")
			}
		}
	}

	return res
}

func validateVersion(res *diagnostic.Diagnostics, version string) {
	v, err := semver.NewVersion(version)
	if err != nil {
		res.AddError("invalid_version", fmt.Sprintf("invalid version %q: %v", version, err), "", "version")
		return
	}

	if !supportedVersions.Check(v) {
		res.AddError("unsupported_version", fmt.Sprintf("version %q is not supported (want %s)", version, supportedVersions), "", "version")
	}
}

func validateMapper(mf *MappingFile, md *MapperDef, filters *FilterRegistry) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	if _, err := mapper.ParseConflictPolicy(md.OnConflict); err != nil {
		res.AddError("invalid_conflict_policy", err.Error(), md.Name, "on_conflict")
	}

	if len(md.Rules) == 0 {
		res.AddWarning("empty_rules", "mapper has no rules", md.Name, "")
	}

	expanded := 0

	for i := range md.Rules {
		rd := &md.Rules[i]
		loc := fmt.Sprintf("rules[%d]", i)

		validateSide(&res, md.Name, loc+".from", rd.From, filters)
		validateSide(&res, md.Name, loc+".to", rd.To, filters)

		if rd.Using != "" && mf.FindMapper(rd.Using) == nil {
			res.AddError("unknown_delegate", fmt.Sprintf("unknown mapper %q", rd.Using), md.Name, loc+".using",
				match.Suggest(rd.Using, mf.MapperNames(), match.DefaultMinScore, maxSuggestions)...)
		}

		expanded += len(rd.From) * len(rd.To)
	}

	if expanded > len(md.Rules) {
		res.AddInfo("rules_expanded", fmt.Sprintf("%d rule entries expand to %d rules", len(md.Rules), expanded), md.Name, "")
	}

	return res
}

func validateSide(res *diagnostic.Diagnostics, mapperName, loc string, refs PathRefArray, filters *FilterRegistry) {
	if refs.IsEmpty() {
		res.AddError("missing_path", "rule side has no path", mapperName, loc)
		return
	}

	for _, ref := range refs {
		if _, err := mapper.ParsePath(ref.Path); err != nil {
			res.AddError("invalid_path", err.Error(), mapperName, loc)
		}

		if ref.Filter != "" && !filters.Has(ref.Filter) {
			res.AddError("unknown_filter", fmt.Sprintf("unknown filter %q on %s", ref.Filter, ref.Path), mapperName, loc,
				match.Suggest(ref.Filter, filters.Names(), match.DefaultMinScore, maxSuggestions)...)
		}
	}
}

// delegationOrder sorts the mapper definitions so that every mapper comes
// after the mappers it delegates to.
func delegationOrder(mf *MappingFile) (order, blocked []int) {
	index := make(map[string]int, len(mf.Mappers))
	for i, md := range mf.Mappers {
		index[md.Name] = i
	}

	return topoSort(len(mf.Mappers), func(i int) []int {
		var deps []int

		for _, rd := range mf.Mappers[i].Rules {
			if j, ok := index[rd.Using]; ok && rd.Using != "" && !slices.Contains(deps, j) {
				deps = append(deps, j)
			}
		}

		return deps
	})
}
