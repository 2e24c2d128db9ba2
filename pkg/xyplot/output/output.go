// Package output serializes extracted workbook data.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	// FormatJSON encodes as JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode serializes workbook or sheet data in the given format. pretty only
// affects JSON.
func Encode(v interface{}, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return encodeJSON(v, pretty)
	case FormatYAML:
		return encodeYAML(v)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func encodeJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func encodeYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
