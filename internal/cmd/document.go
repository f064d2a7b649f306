package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const stdinName = "-"

// readDocument reads a JSON or YAML document from name, or from stdin when
// name is "-".
func readDocument(stdin io.Reader, name string) (any, error) {
	var (
		data []byte
		err  error
	)

	if name == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	return decodeDocument(data)
}

// decodeDocument accepts JSON or YAML. An empty input decodes to nil.
func decodeDocument(data []byte) (any, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return doc, nil
}

// encodeDocument renders doc in the given output format. JSON output is
// indented and newline terminated.
func encodeDocument(doc map[string]any, format string) ([]byte, error) {
	switch format {
	case OutputYAML:
		return yaml.Marshal(doc)
	case OutputJSON:
		var buf bytes.Buffer

		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")

		if err := enc.Encode(doc); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
