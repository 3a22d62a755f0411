package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by FromFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported config format")

type unmarshalFunc func(data []byte, v any) error

var formats = map[string]struct {
	name      string
	unmarshal unmarshalFunc
}{
	".yaml": {"yaml", yaml.Unmarshal},
	".yml":  {"yaml", yaml.Unmarshal},
	".json": {"json", json.Unmarshal},
}

// FromFile loads a .yaml, .yml or .json file. The extension is checked
// before the file is read.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formats[ext]
	if !ok {
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return decode(f.name, f.unmarshal, data)
}

// FromYAML parses YAML into a Config.
func FromYAML(data []byte) (Config, error) {
	return decode("yaml", yaml.Unmarshal, data)
}

// FromJSON parses JSON into a Config.
func FromJSON(data []byte) (Config, error) {
	return decode("json", json.Unmarshal, data)
}

func decode(format string, unmarshal unmarshalFunc, data []byte) (Config, error) {
	var m map[string]any
	if err := unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", format, err)
	}
	return New(m), nil
}
