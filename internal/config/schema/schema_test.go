package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDefaults(t *testing.T) {
	defaults := Builtin().Defaults()

	tests := []struct {
		name string
		path []string
		want any
	}{
		{"priority", []string{"general", "defaultPriority"}, "medium"},
		{"provider", []string{"ai", "provider"}, "anthropic"},
		{"max tokens", []string{"ai", "maxTokens"}, 4096},
		{"temperature", []string{"ai", "temperature"}, 0.7},
		{"backend", []string{"storage", "backend"}, "sqlite"},
		{"log level", []string{"logging", "level"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec, ok := defaults[tt.path[0]].(map[string]any)
			require.True(t, ok, "section %s missing", tt.path[0])
			assert.Equal(t, tt.want, sec[tt.path[1]])
		})
	}
}

func TestDefaultsOmitFieldsWithoutDefaults(t *testing.T) {
	defaults := Builtin().Defaults()

	ai, ok := defaults["ai"].(map[string]any)
	require.True(t, ok)

	// Fields without a declared default are absent, never nil.
	_, present := ai["apiKey"]
	assert.False(t, present)
	_, present = ai["baseUrl"]
	assert.False(t, present)
}

func TestDefaultsReturnsFreshMap(t *testing.T) {
	reg := Builtin()

	first := reg.Defaults()
	general := first["general"].(map[string]any)
	general["defaultPriority"] = "mutated"

	second := reg.Defaults()
	assert.Equal(t, "medium", second["general"].(map[string]any)["defaultPriority"])
}

func TestSensitivePaths(t *testing.T) {
	assert.Equal(t, []string{"ai.apiKey"}, Builtin().SensitivePaths())
}

func TestFieldAt(t *testing.T) {
	reg := Builtin()

	f, ok := reg.FieldAt("ai.maxTokens")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, f.Type)

	_, ok = reg.FieldAt("ai.unknown")
	assert.False(t, ok)
	_, ok = reg.FieldAt("nosuch.field")
	assert.False(t, ok)
	_, ok = reg.FieldAt("ai")
	assert.False(t, ok)
}

func TestIsLeaf(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		path  string
		leaf  bool
		known bool
	}{
		{"ai.apiKey", true, true},
		{"ai.extraHeaders", true, true},
		{"ai", false, true},
		{"nosuch", false, false},
		{"ai.nosuch", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			leaf, known := reg.IsLeaf(tt.path)
			assert.Equal(t, tt.leaf, leaf)
			assert.Equal(t, tt.known, known)
		})
	}
}
