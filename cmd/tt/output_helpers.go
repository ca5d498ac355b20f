package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func encodeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}

// encodeStructured writes value as JSON or YAML. It reports false for any
// other format so the caller can render text.
func encodeStructured(w io.Writer, format string, value any) (bool, error) {
	switch format {
	case "json":
		return true, encodeJSON(w, value)
	case "yaml":
		return true, encodeYAML(w, value)
	default:
		return false, nil
	}
}
