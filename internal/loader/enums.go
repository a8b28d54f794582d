package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"itemgen/internal"
)

func LoadLabelIDs(path, namespace string) (internal.LabelIDMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enum file %s: %w", path, err)
	}
	labels, err := DecodeLabelIDs(data, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to parse enum file %s: %w", path, err)
	}
	return labels, nil
}

// DecodeLabelIDs returns an empty map when the namespace is absent.
func DecodeLabelIDs(data []byte, namespace string) (internal.LabelIDMap, error) {
	var namespaces map[string]json.RawMessage
	if err := decodeStrict(data, '{', &namespaces); err != nil {
		return nil, err
	}

	raw, ok := namespaces[namespace]
	if !ok || isNull(raw) {
		return internal.LabelIDMap{}, nil
	}

	var labels map[string]int
	if err := decodeStrict(raw, '{', &labels); err != nil {
		return nil, fmt.Errorf("namespace %s: %w", namespace, err)
	}
	for label, id := range labels {
		if id < 0 {
			return nil, fmt.Errorf("namespace %s: label %s has negative id %d", namespace, label, id)
		}
	}
	return internal.LabelIDMap(labels), nil
}

func decodeStrict(data []byte, open byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != open {
		kind := "object"
		if open == '[' {
			kind = "array"
		}
		return fmt.Errorf("expected JSON %s", kind)
	}
	return json.Unmarshal(trimmed, v)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
