package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/vdgen/internal/ir"
)

// marshalWarnings serializes lint warnings as canonical JSON so identical
// warning lists are stored byte-identically.
func marshalWarnings(warnings []string) (string, error) {
	if warnings == nil {
		warnings = []string{}
	}
	data, err := ir.MarshalCanonical(warnings)
	if err != nil {
		return "", fmt.Errorf("marshal warnings: %w", err)
	}
	return string(data), nil
}

func unmarshalWarnings(s string) ([]string, error) {
	var warnings []string
	if err := json.Unmarshal([]byte(s), &warnings); err != nil {
		return nil, fmt.Errorf("unmarshal warnings: %w", err)
	}
	if warnings == nil {
		warnings = []string{}
	}
	return warnings, nil
}
