package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/erfan1375er/highcharts/pkg/tree"
)

// WriteJSON encodes records as an indented JSON array.
func WriteJSON(w io.Writer, records []tree.Record) error {
	if records == nil {
		records = []tree.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes records as a YAML sequence.
func WriteYAML(w io.Writer, records []tree.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes records to path in the format implied by its extension.
func Export(path string, records []tree.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if FormatFromPath(path) == FormatYAML {
		return WriteYAML(f, records)
	}
	return WriteJSON(f, records)
}
