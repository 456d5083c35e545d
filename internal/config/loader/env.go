package loader

import (
	"encoding/json"
	"os"
	"strings"
	"unicode"

	"github.com/taskwright/taskwright/internal/config/layer"
)

// EnvOverlay derives a partial configuration layer from environment
// variables carrying the TASKWRIGHT_ prefix.
//
// TASKWRIGHT_AI_MAX_TOKENS becomes ai.maxTokens: the first token after
// the prefix is the lower-cased section name, the remaining tokens join
// into one camelCase property. Values are JSON-decoded when possible
// and kept as raw strings otherwise.
type EnvOverlay struct {
	prefix  string
	environ func() []string
}

// NewEnvOverlay creates an overlay reading the process environment.
func NewEnvOverlay() *EnvOverlay {
	return &EnvOverlay{
		prefix:  EnvPrefix,
		environ: nil,
	}
}

// NewEnvOverlayFrom creates an overlay with a custom prefix and environ
// source, used by tests.
func NewEnvOverlayFrom(prefix string, environ func() []string) *EnvOverlay {
	return &EnvOverlay{
		prefix:  prefix,
		environ: environ,
	}
}

// reservedEnv names variables that configure the loader itself; they
// never contribute overlay values.
var reservedEnv = map[string]bool{
	ConfigDirEnv: true,
}

// Load scans the environment and returns a fresh nested map holding
// every derived value. The overlay is recomputed on every load and is
// never persisted.
func (l *EnvOverlay) Load() map[string]any {
	environ := l.environ
	if environ == nil {
		environ = os.Environ
	}

	overlay := make(map[string]any)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || reservedEnv[name] {
			continue
		}

		path := l.pathFor(name)
		if path == "" {
			continue
		}
		layer.SetByPath(overlay, path, decodeValue(value))
	}
	return overlay
}

// pathFor converts TASKWRIGHT_GENERAL_DEFAULT_PRIORITY to
// general.defaultPriority.
func (l *EnvOverlay) pathFor(name string) string {
	trimmed := strings.TrimPrefix(name, l.prefix)
	if trimmed == "" {
		return ""
	}

	tokens := strings.Split(trimmed, "_")
	section := strings.ToLower(tokens[0])
	if len(tokens) == 1 {
		return section
	}

	var prop strings.Builder
	for i, tok := range tokens[1:] {
		if tok == "" {
			continue
		}
		if i == 0 {
			prop.WriteString(strings.ToLower(tok))
			continue
		}
		prop.WriteString(strings.ToUpper(tok[:1]))
		prop.WriteString(strings.ToLower(tok[1:]))
	}
	if prop.Len() == 0 {
		return section
	}
	return section + "." + prop.String()
}

// decodeValue JSON-decodes raw, falling back to the raw string when it
// is not valid JSON. "true" becomes a bool, "42" a number, "[1,2]" an
// array; "high" stays the string "high".
func decodeValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// EnvName is the forward transform used for export: the environment
// variable overriding a dotted path. Each segment gets an underscore at
// every lower-to-upper letter transition and is upper-cased.
//
// The transform is lossy for multi-word section names, so EnvName and
// the overlay's reverse transform are not true inverses; the wire
// contract of existing variable names is preserved as is.
func EnvName(path string) string {
	segs := strings.Split(path, ".")
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = strings.ToUpper(snakeCase(seg))
	}
	return EnvPrefix + strings.Join(out, "_")
}

func snakeCase(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
