// Package layer models the four configuration sources and the pure
// structural operations used to combine them.
//
// Layers merge in a fixed precedence order: defaults, then the global
// file, then the local file, then environment variables. A higher layer
// overrides a lower one; a missing key in a higher layer never removes
// a lower layer's value.
package layer

// Source identifies one configuration layer.
type Source uint8

const (
	// SourceDefault is the compiled-in defaults layer.
	SourceDefault Source = iota
	// SourceGlobal is the user-wide configuration file.
	SourceGlobal
	// SourceLocal is the project-local configuration file.
	SourceLocal
	// SourceEnv is the environment variable overlay.
	SourceEnv
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceGlobal:
		return "global"
	case SourceLocal:
		return "local"
	case SourceEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Priority returns the merge priority; higher overrides lower.
func (s Source) Priority() int {
	return int(s)
}

// Layer is one configuration source with its in-memory data.
type Layer struct {
	// Source identifies which of the four layers this is.
	Source Source

	// Path is the backing file, empty for the default and env layers.
	Path string

	// Data holds the layer's values as a nested map.
	Data map[string]any
}

// New creates an empty layer for the given source.
func New(source Source) *Layer {
	return &Layer{
		Source: source,
		Data:   make(map[string]any),
	}
}

// NewWithData creates a layer holding the given data.
func NewWithData(source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Source: source,
		Data:   data,
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Source: l.Source,
		Path:   l.Path,
		Data:   Clone(l.Data),
	}
}

// Clone creates a deep copy of a nested configuration map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}
	return dst
}
