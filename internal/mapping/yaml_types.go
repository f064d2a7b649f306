package mapping

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements custom YAML unmarshaling for PathRefArray.
// Accepts:
//   - Single string: "/a/b"
//   - Single map: {path: /a/b, filter: upcase}
//   - Array of strings and/or maps: [/a, {path: /b, filter: trim}]
func (p *PathRefArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		ref, err := decodePathRef(node)
		if err != nil {
			return err
		}

		if ref.Path == "" && ref.Filter == "" {
			*p = PathRefArray{}
		} else {
			*p = PathRefArray{ref}
		}

		return nil

	case yaml.SequenceNode:
		refs := make(PathRefArray, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode && item.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: expected path string or {path, filter} map in list", item.Line)
			}

			ref, err := decodePathRef(item)
			if err != nil {
				return err
			}

			refs = append(refs, ref)
		}

		*p = refs

		return nil

	default:
		return fmt.Errorf("line %d: expected path string, {path, filter} map, or list", node.Line)
	}
}

// decodePathRef decodes a scalar or {path, filter} node.
func decodePathRef(node *yaml.Node) (PathRef, error) {
	if node.Kind == yaml.ScalarNode {
		var path string

		err := node.Decode(&path)
		if err != nil {
			return PathRef{}, err
		}

		return PathRef{Path: path}, nil
	}

	// Reject unknown keys so typos like "filer" do not silently drop a filter.
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch key := node.Content[i].Value; key {
		case "path", "filter":
		default:
			return PathRef{}, fmt.Errorf("line %d: unknown path key %q (expected path or filter)", node.Content[i].Line, key)
		}
	}

	type plain PathRef

	var ref plain

	err := node.Decode(&ref)
	if err != nil {
		return PathRef{}, err
	}

	if ref.Path == "" {
		return PathRef{}, errors.New("path map without path")
	}

	return PathRef(ref), nil
}

// MarshalYAML implements custom YAML marshaling for PathRef.
// Outputs a plain string when there is no filter.
func (p PathRef) MarshalYAML() (any, error) {
	if p.Filter == "" {
		return p.Path, nil
	}

	type plain PathRef

	return plain(p), nil
}

// MarshalYAML implements custom YAML marshaling for PathRefArray.
// Outputs a single element unwrapped, otherwise a list.
func (p PathRefArray) MarshalYAML() (any, error) {
	switch len(p) {
	case 0:
		return nil, nil
	case 1:
		return p[0].MarshalYAML()
	default:
		return []PathRef(p), nil
	}
}
