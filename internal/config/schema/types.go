package schema

// FieldType is the declared value type of a configuration field.
type FieldType string

const (
	// TypeString is a text value.
	TypeString FieldType = "string"
	// TypeNumber is any numeric value, integral or not.
	TypeNumber FieldType = "number"
	// TypeInteger is a numeric value that must be a whole number.
	TypeInteger FieldType = "integer"
	// TypeBoolean is a true/false value.
	TypeBoolean FieldType = "boolean"
	// TypeObject is a nested key/value mapping treated as a single leaf.
	TypeObject FieldType = "object"
	// TypeArray is a list value; lists are replaced wholesale on merge.
	TypeArray FieldType = "array"
)

// Field declares a single configuration setting: its type, optional
// default, and validation constraints. Fields are immutable after
// registry construction.
type Field struct {
	// Type is the required value type.
	Type FieldType

	// Default is the compiled-in default. A nil Default means the field
	// has no default and is simply absent from the defaults layer.
	Default any

	// Enum lists the allowed values. Empty means unrestricted.
	Enum []any

	// Pattern is a regex the value must match (strings only).
	Pattern string

	// Minimum and Maximum bound numeric values (nil means unbounded).
	Minimum *float64
	Maximum *float64

	// Sensitive marks fields whose values are masked on disk and in
	// masked reads.
	Sensitive bool

	// Required marks fields that must be present in the merged config.
	Required bool
}

// Section groups related fields under one top-level name. Sections do
// not allow keys beyond their declared fields.
type Section struct {
	Name   string
	Fields map[string]*Field
}

// MinValue returns a pointer to v for use as a Field Minimum.
func MinValue(v float64) *float64 { return &v }

// MaxValue returns a pointer to v for use as a Field Maximum.
func MaxValue(v float64) *float64 { return &v }
