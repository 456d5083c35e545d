package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a supported file serialization.
type Format uint8

const (
	// FormatTOML is the default serialization.
	FormatTOML Format = iota
	// FormatYAML is the alternate serialization.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// DetectFormat guesses the format from the file extension. The second
// result is false when the extension is ambiguous; callers should then
// auto-detect by trying TOML first and YAML second.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return FormatTOML, false
	}
}

// LoadFile reads one layer file into a nested map. A missing file is an
// empty layer, not an error. A present file that fails to parse returns
// a *ParseError naming the path.
func LoadFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	format, known := DetectFormat(path)
	if known {
		data, err := unmarshal(format, raw)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		return data, nil
	}

	data, tomlErr := unmarshal(FormatTOML, raw)
	if tomlErr == nil {
		return data, nil
	}
	data, yamlErr := unmarshal(FormatYAML, raw)
	if yamlErr == nil {
		return data, nil
	}
	return nil, &ParseError{Path: path, Err: errors.Join(tomlErr, yamlErr)}
}

// SaveFile serializes data in the format matching path and writes it in
// a single call. Serialization happens entirely in memory first, so a
// failing write never leaves a half-written file.
func SaveFile(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	format, _ := DetectFormat(path)
	raw, err := marshal(format, data)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// RestrictPermissions sets owner-only read/write bits on path. Applied
// to the global file after every save; callers log failures instead of
// propagating them.
func RestrictPermissions(path string) error {
	return os.Chmod(path, 0o600)
}

// WorldReadable reports whether path is readable by group or others.
func WorldReadable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0o044 != 0, nil
}

func unmarshal(f Format, raw []byte) (map[string]any, error) {
	var data map[string]any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func marshal(f Format, data map[string]any) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(data)
	}
	return toml.Marshal(data)
}
