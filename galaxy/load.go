package galaxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a galaxy file.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads and validates a galaxy.
func Decode(r io.Reader, format Format) (*Galaxy, error) {
	var g Galaxy
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&g); err != nil {
			return nil, fmt.Errorf("decode galaxy json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&g); err != nil {
			return nil, fmt.Errorf("decode galaxy yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Load reads the galaxy file at path.
func Load(path string) (*Galaxy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read galaxy %s: %w", path, err)
	}
	g, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// Save writes g to path in the format implied by its extension.
func Save(path string, g *Galaxy) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(g)
	default:
		data, err = json.MarshalIndent(g, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode galaxy: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write galaxy %s: %w", path, err)
	}
	return nil
}
