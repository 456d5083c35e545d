package config

import "github.com/taskwright/taskwright/internal/config/layer"

// MaskPlaceholder replaces sensitive values in persisted files and
// masked reads. In-memory layer data is never redacted.
const MaskPlaceholder = "***MASKED***"

// maskSensitive returns a deep copy of data with every present
// sensitive leaf replaced by MaskPlaceholder. The input is never
// mutated; masking the result again is a no-op.
func maskSensitive(data map[string]any, sensitivePaths []string) map[string]any {
	masked := layer.Clone(data)
	if masked == nil {
		masked = map[string]any{}
	}
	for _, path := range sensitivePaths {
		if _, ok := layer.GetByPath(masked, path); ok {
			layer.SetByPath(masked, path, MaskPlaceholder)
		}
	}
	return masked
}

// hasRealSecret reports whether data holds at least one sensitive value
// that is neither empty nor the placeholder.
func hasRealSecret(data map[string]any, sensitivePaths []string) bool {
	for _, path := range sensitivePaths {
		v, ok := layer.GetByPath(data, path)
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString || (s != "" && s != MaskPlaceholder) {
			return true
		}
	}
	return false
}
