package schema

import (
	"fmt"
	"regexp"
	"sync"
)

// Validator checks configuration data against a registry. Sections and
// the root object reject keys the registry does not declare.
type Validator struct {
	reg *Registry

	// patternCache holds compiled field patterns, keyed by pattern text.
	patternCache sync.Map
}

// NewValidator creates a validator for the given registry.
func NewValidator(reg *Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate checks data and returns a *ValidationErrors carrying every
// violation found, or nil when the data is clean.
func (v *Validator) Validate(data map[string]any) error {
	errs := &ValidationErrors{}

	for name, value := range data {
		sec, ok := v.reg.Section(name)
		if !ok {
			errs.Add(name, "known section", typeName(value), value)
			continue
		}
		secData, ok := value.(map[string]any)
		if !ok {
			errs.Add(name, "object", typeName(value), value)
			continue
		}
		v.validateSection(sec, secData, errs)
	}

	// Required fields are flagged even when their whole section is absent.
	for _, sec := range v.reg.Sections() {
		secData, _ := data[sec.Name].(map[string]any)
		for name, f := range sec.Fields {
			if !f.Required {
				continue
			}
			if _, ok := secData[name]; !ok {
				errs.Add(sec.Name+"."+name, "required field", "missing", nil)
			}
		}
	}

	return errs.AsError()
}

// ValidatePath checks a single value against the field declared at path.
func (v *Validator) ValidatePath(path string, value any) error {
	errs := &ValidationErrors{}
	f, ok := v.reg.FieldAt(path)
	if !ok {
		errs.Add(path, "known setting", typeName(value), value)
		return errs.AsError()
	}
	v.validateField(path, f, value, errs)
	return errs.AsError()
}

func (v *Validator) validateSection(sec *Section, data map[string]any, errs *ValidationErrors) {
	for name, value := range data {
		path := sec.Name + "." + name
		f, ok := sec.Fields[name]
		if !ok {
			errs.Add(path, "known setting", typeName(value), value)
			continue
		}
		v.validateField(path, f, value, errs)
	}
}

func (v *Validator) validateField(path string, f *Field, value any, errs *ValidationErrors) {
	if !matchesType(value, f.Type) {
		errs.Add(path, string(f.Type), typeName(value), value)
		return
	}

	if len(f.Enum) > 0 && !enumContains(f.Enum, value) {
		errs.Add(path, fmt.Sprintf("one of %v", f.Enum), fmt.Sprintf("%v", value), value)
	}

	if f.Pattern != "" {
		if s, ok := value.(string); ok && !v.matchPattern(s, f.Pattern) {
			errs.Add(path, fmt.Sprintf("pattern %s", f.Pattern), fmt.Sprintf("%q", s), value)
		}
	}

	if f.Minimum != nil || f.Maximum != nil {
		if isNumber(value) {
			v.validateRange(path, f, value, errs)
		}
	}
}

func (v *Validator) validateRange(path string, f *Field, value any, errs *ValidationErrors) {
	n := toFloat64(value)
	if f.Minimum != nil && n < *f.Minimum {
		errs.Add(path, rangeExpectation(f), fmt.Sprintf("%v", value), value)
		return
	}
	if f.Maximum != nil && n > *f.Maximum {
		errs.Add(path, rangeExpectation(f), fmt.Sprintf("%v", value), value)
	}
}

func (v *Validator) matchPattern(value, pattern string) bool {
	if cached, ok := v.patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(value)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	v.patternCache.Store(pattern, re)
	return re.MatchString(value)
}

func rangeExpectation(f *Field) string {
	switch {
	case f.Minimum != nil && f.Maximum != nil:
		return fmt.Sprintf("between %v and %v", *f.Minimum, *f.Maximum)
	case f.Minimum != nil:
		return fmt.Sprintf(">= %v", *f.Minimum)
	default:
		return fmt.Sprintf("<= %v", *f.Maximum)
	}
}

// matchesType checks a value against a declared field type. An integer
// field accepts any whole-number value; a number field accepts any
// numeric value.
func matchesType(value any, t FieldType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		return isNumber(value)
	case TypeInteger:
		return isInteger(value)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		return isArray(value)
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return float32(int64(val)) == val
	case float64:
		return float64(int64(val)) == val
	default:
		return false
	}
}

func isArray(v any) bool {
	switch v.(type) {
	case []any, []string, []int, []int64, []float64, []bool:
		return true
	default:
		return false
	}
}

func toFloat64(v any) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}

// enumContains compares with numeric awareness so int64(4096) from a
// TOML file matches an int enum member.
func enumContains(allowed []any, value any) bool {
	for _, a := range allowed {
		if valuesEqual(a, value) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNumber(a) && isNumber(b) {
		return toFloat64(a) == toFloat64(b)
	}
	return a == b
}

// typeName names a value's type for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "number"
	case []any, []string, []int, []int64, []float64, []bool:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
