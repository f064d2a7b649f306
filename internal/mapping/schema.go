package mapping

import (
	"strings"

	"hash-mapper/internal/common"
)

// MappingFile represents the root of a YAML rule file.
type MappingFile struct {
	// Version of the rule file schema.
	Version string `yaml:"version,omitempty"`

	// Root names the mapper used when the caller does not pick one.
	// Defaults to the first declared mapper.
	Root string `yaml:"root,omitempty"`

	// Mappers is the list of named mapper definitions.
	Mappers []MapperDef `yaml:"mappers"`
}

// MapperDef defines one named mapper.
type MapperDef struct {
	// Name identifies the mapper for "root" and "using".
	Name string `yaml:"name"`

	// OnConflict selects the conflict policy: overwrite, fail or skip.
	OnConflict string `yaml:"on_conflict,omitempty"`

	// Rules are applied in order; later rules win on shared destinations.
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef defines a bidirectional rule between two sides.
type RuleDef struct {
	// From is the canonical side.
	From PathRefArray `yaml:"from"`

	// To is the wire side.
	To PathRefArray `yaml:"to"`

	// Using names a mapper that transforms the value (or each element of a
	// sequence value).
	Using string `yaml:"using,omitempty"`
}

// PathRef is a path with an optional named filter applied when the path is
// written to.
// YAML formats supported:
//   - Simple string: "/a/b"
//   - With filter: {path: /a/b, filter: upcase}
type PathRef struct {
	Path   string `yaml:"path"`
	Filter string `yaml:"filter,omitempty"`
}

// String returns the path string.
func (p PathRef) String() string {
	return p.Path
}

// PathRefArray is a collection of PathRef that can be unmarshaled from a
// string, a {path, filter} map, or a list of either.
type PathRefArray []PathRef

// Paths returns just the path strings.
func (p PathRefArray) Paths() []string {
	result := make([]string, len(p))
	for i, ref := range p {
		result[i] = ref.Path
	}

	return result
}

// First returns the first path or empty string if empty.
func (p PathRefArray) First() string {
	if ref, ok := common.First(p); ok {
		return ref.Path
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (p PathRefArray) IsEmpty() bool {
	return common.IsEmpty(p)
}

// IsMultiple returns true if the array has more than one element.
func (p PathRefArray) IsMultiple() bool {
	return common.IsMultiple(p)
}

// String joins the paths with ", ".
func (p PathRefArray) String() string {
	return strings.Join(p.Paths(), ", ")
}

// FindMapper returns the definition with the given name, or nil.
func (mf *MappingFile) FindMapper(name string) *MapperDef {
	for i := range mf.Mappers {
		if mf.Mappers[i].Name == name {
			return &mf.Mappers[i]
		}
	}

	return nil
}

// MapperNames returns the declared mapper names in order.
func (mf *MappingFile) MapperNames() []string {
	names := make([]string, 0, len(mf.Mappers))
	for _, m := range mf.Mappers {
		names = append(names, m.Name)
	}

	return names
}

// RootName returns Root, or the first mapper's name when Root is unset.
func (mf *MappingFile) RootName() string {
	if mf.Root != "" {
		return mf.Root
	}

	if len(mf.Mappers) > 0 {
		return mf.Mappers[0].Name
	}

	return ""
}
