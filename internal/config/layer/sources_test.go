package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePrecedenceOrder(t *testing.T) {
	assert.Less(t, SourceDefault.Priority(), SourceGlobal.Priority())
	assert.Less(t, SourceGlobal.Priority(), SourceLocal.Priority())
	assert.Less(t, SourceLocal.Priority(), SourceEnv.Priority())
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{SourceDefault, "default"},
		{SourceGlobal, "global"},
		{SourceLocal, "local"},
		{SourceEnv, "env"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.src.String())
	}
}

func TestSourceMapHigherLayerWins(t *testing.T) {
	m := NewSourceMap(nil)

	m.Track(map[string]any{"general": map[string]any{"defaultPriority": "medium"}}, SourceDefault)
	m.Track(map[string]any{"general": map[string]any{"defaultPriority": "high"}}, SourceGlobal)

	src, ok := m.Lookup("general.defaultPriority")
	require.True(t, ok)
	assert.Equal(t, SourceGlobal, src)
}

func TestSourceMapLowerLayerNeverOverwrites(t *testing.T) {
	m := NewSourceMap(nil)

	// Claims arriving out of precedence order must not demote a path.
	m.Track(map[string]any{"ai": map[string]any{"apiKey": "sk-env"}}, SourceEnv)
	m.Track(map[string]any{"ai": map[string]any{"apiKey": "sk-file"}}, SourceGlobal)

	src, ok := m.Lookup("ai.apiKey")
	require.True(t, ok)
	assert.Equal(t, SourceEnv, src)
}

func TestSourceMapDisjointPaths(t *testing.T) {
	m := NewSourceMap(nil)

	m.Track(map[string]any{"general": map[string]any{"autoSave": true}}, SourceDefault)
	m.Track(map[string]any{"ai": map[string]any{"model": "x"}}, SourceLocal)

	src, _ := m.Lookup("general.autoSave")
	assert.Equal(t, SourceDefault, src)
	src, _ = m.Lookup("ai.model")
	assert.Equal(t, SourceLocal, src)

	_, ok := m.Lookup("general.dateFormat")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"ai.model", "general.autoSave"}, m.Paths())
}

func TestSourceMapSchemaLeaf(t *testing.T) {
	m := NewSourceMap(func(path string) bool { return path == "ai.extraHeaders" })

	m.Track(map[string]any{
		"ai": map[string]any{"extraHeaders": map[string]any{"X-Team": "core"}},
	}, SourceLocal)

	src, ok := m.Lookup("ai.extraHeaders")
	require.True(t, ok)
	assert.Equal(t, SourceLocal, src)

	_, ok = m.Lookup("ai.extraHeaders.X-Team")
	assert.False(t, ok)
}
