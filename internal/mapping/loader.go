package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the schema version written by default.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML rule file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	for i := range mf.Mappers {
		m := &mf.Mappers[i]
		if m.OnConflict == "" {
			m.OnConflict = "overwrite"
		}
	}
}

// Marshal serializes a MappingFile to YAML, paths without filters as plain
// strings.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}
