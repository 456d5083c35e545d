package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsPass(t *testing.T) {
	v := NewValidator(Builtin())
	assert.NoError(t, v.Validate(Builtin().Defaults()))
}

func TestValidateViolations(t *testing.T) {
	base := func() map[string]any { return Builtin().Defaults() }

	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
	}{
		{
			name: "unknown section",
			mutate: func(d map[string]any) {
				d["nosuch"] = map[string]any{"x": 1}
			},
			wantPath: "nosuch",
		},
		{
			name: "unknown setting",
			mutate: func(d map[string]any) {
				d["general"].(map[string]any)["nosuch"] = 1
			},
			wantPath: "general.nosuch",
		},
		{
			name: "section is not an object",
			mutate: func(d map[string]any) {
				d["general"] = "oops"
			},
			wantPath: "general",
		},
		{
			name: "bad enum value",
			mutate: func(d map[string]any) {
				d["general"].(map[string]any)["defaultPriority"] = "urgent"
			},
			wantPath: "general.defaultPriority",
		},
		{
			name: "wrong type",
			mutate: func(d map[string]any) {
				d["general"].(map[string]any)["autoSave"] = "yes"
			},
			wantPath: "general.autoSave",
		},
		{
			name: "fractional value for integer field",
			mutate: func(d map[string]any) {
				d["ai"].(map[string]any)["maxTokens"] = 0.5
			},
			wantPath: "ai.maxTokens",
		},
		{
			name: "number above maximum",
			mutate: func(d map[string]any) {
				d["ai"].(map[string]any)["temperature"] = 2.5
			},
			wantPath: "ai.temperature",
		},
		{
			name: "number below minimum",
			mutate: func(d map[string]any) {
				d["general"].(map[string]any)["maxConcurrentTasks"] = 0
			},
			wantPath: "general.maxConcurrentTasks",
		},
		{
			name: "pattern mismatch",
			mutate: func(d map[string]any) {
				d["ai"].(map[string]any)["baseUrl"] = "ftp://example.com"
			},
			wantPath: "ai.baseUrl",
		},
		{
			name: "required field missing",
			mutate: func(d map[string]any) {
				delete(d["ai"].(map[string]any), "provider")
			},
			wantPath: "ai.provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := base()
			tt.mutate(data)

			err := NewValidator(Builtin()).Validate(data)
			require.Error(t, err)

			var verrs *ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.NotEmpty(t, verrs.ForPath(tt.wantPath), "expected a violation at %s, got: %v", tt.wantPath, err)
		})
	}
}

func TestValidateWholeFloatsAreIntegers(t *testing.T) {
	// Env and JSON decoding produce float64 even for whole numbers;
	// integer fields must accept them.
	data := Builtin().Defaults()
	data["ai"].(map[string]any)["maxTokens"] = float64(8192)

	assert.NoError(t, NewValidator(Builtin()).Validate(data))
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	data := Builtin().Defaults()
	data["general"].(map[string]any)["defaultPriority"] = "urgent"
	data["ai"].(map[string]any)["maxTokens"] = 999999999

	err := NewValidator(Builtin()).Validate(data)
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, 2, verrs.Len())
	assert.NotEmpty(t, verrs.ForPath("general.defaultPriority"))
	assert.NotEmpty(t, verrs.ForPath("ai.maxTokens"))
	assert.Contains(t, err.Error(), "general.defaultPriority")
	assert.Contains(t, err.Error(), "ai.maxTokens")
}

func TestValidateRequiredFlaggedWhenSectionAbsent(t *testing.T) {
	err := NewValidator(Builtin()).Validate(map[string]any{})
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs.ForPath("general.defaultPriority"))
	assert.NotEmpty(t, verrs.ForPath("ai.provider"))
}

func TestValidatePath(t *testing.T) {
	v := NewValidator(Builtin())

	assert.NoError(t, v.ValidatePath("general.defaultPriority", "high"))
	assert.Error(t, v.ValidatePath("general.defaultPriority", "urgent"))
	assert.Error(t, v.ValidatePath("general.nosuch", 1))
}

func TestViolationFields(t *testing.T) {
	err := NewValidator(Builtin()).Validate(map[string]any{
		"general": map[string]any{"defaultPriority": "urgent"},
		"ai":      map[string]any{"provider": "anthropic"},
	})
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))

	vs := verrs.ForPath("general.defaultPriority")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Expected, "low")
	assert.Equal(t, "urgent", vs[0].Value)
}
