package schema

import "sync"

var (
	builtinRegistry *Registry
	builtinOnce     sync.Once
)

// Builtin returns the registry describing every taskwright setting.
// The registry is built once and shared; it is never mutated after
// construction.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtinRegistry = buildBuiltin()
	})
	return builtinRegistry
}

func buildBuiltin() *Registry {
	return NewRegistry(
		&Section{Name: "general", Fields: map[string]*Field{
			"defaultPriority": {
				Type:     TypeString,
				Default:  "medium",
				Enum:     []any{"low", "medium", "high", "critical"},
				Required: true,
			},
			"autoSave":   {Type: TypeBoolean, Default: true},
			"dateFormat": {Type: TypeString, Default: "2006-01-02"},
			"maxConcurrentTasks": {
				Type:    TypeInteger,
				Default: 4,
				Minimum: MinValue(1),
				Maximum: MaxValue(64),
			},
			"tags": {Type: TypeArray},
		}},
		&Section{Name: "ai", Fields: map[string]*Field{
			"provider": {
				Type:     TypeString,
				Default:  "anthropic",
				Enum:     []any{"anthropic", "openai", "google", "ollama"},
				Required: true,
			},
			"model":  {Type: TypeString, Default: "claude-sonnet-4-20250514"},
			"apiKey": {Type: TypeString, Sensitive: true},
			"baseUrl": {
				Type:    TypeString,
				Pattern: `^https?://`,
			},
			"maxTokens": {
				Type:    TypeInteger,
				Default: 4096,
				Minimum: MinValue(1),
				Maximum: MaxValue(200000),
			},
			"temperature": {
				Type:    TypeNumber,
				Default: 0.7,
				Minimum: MinValue(0),
				Maximum: MaxValue(2),
			},
			"extraHeaders": {Type: TypeObject},
		}},
		&Section{Name: "storage", Fields: map[string]*Field{
			"backend": {
				Type:    TypeString,
				Default: "sqlite",
				Enum:    []any{"sqlite", "memory"},
			},
			"path": {Type: TypeString, Default: ".taskwright/tasks.db"},
			"backupCount": {
				Type:    TypeInteger,
				Default: 3,
				Minimum: MinValue(0),
				Maximum: MaxValue(50),
			},
		}},
		&Section{Name: "chat", Fields: map[string]*Field{
			"historyLimit": {
				Type:    TypeInteger,
				Default: 50,
				Minimum: MinValue(1),
				Maximum: MaxValue(1000),
			},
			"systemPrompt": {Type: TypeString},
			"stream":       {Type: TypeBoolean, Default: true},
		}},
		&Section{Name: "logging", Fields: map[string]*Field{
			"level": {
				Type:    TypeString,
				Default: "info",
				Enum:    []any{"trace", "debug", "info", "warn", "error"},
			},
			"format": {
				Type:    TypeString,
				Default: "text",
				Enum:    []any{"text", "json"},
			},
		}},
		&Section{Name: "ui", Fields: map[string]*Field{
			"color": {Type: TypeBoolean, Default: true},
			"pageSize": {
				Type:    TypeInteger,
				Default: 20,
				Minimum: MinValue(1),
				Maximum: MaxValue(500),
			},
		}},
	)
}
