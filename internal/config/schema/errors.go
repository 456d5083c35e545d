package schema

import (
	"fmt"
	"strings"
)

// Violation records a single validation failure with what was expected
// at a path and what was actually found.
type Violation struct {
	// Path is the dotted path to the offending value.
	Path string

	// Expected describes the constraint that was not met.
	Expected string

	// Actual describes the offending value or its type.
	Actual string

	// Value is the offending value itself (nil for missing fields).
	Value any
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v.Path == "" {
		return fmt.Sprintf("expected %s, got %s", v.Expected, v.Actual)
	}
	return fmt.Sprintf("%s: expected %s, got %s", v.Path, v.Expected, v.Actual)
}

// ValidationErrors aggregates every violation found in one validation
// pass. Callers always receive the complete list, not just the first.
type ValidationErrors struct {
	Violations []*Violation
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Violations) == 0 {
		return "no validation errors"
	}
	if len(e.Violations) == 1 {
		return e.Violations[0].Error()
	}

	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Violations), strings.Join(msgs, "\n  - "))
}

// Add records a violation.
func (e *ValidationErrors) Add(path, expected, actual string, value any) {
	e.Violations = append(e.Violations, &Violation{
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Value:    value,
	})
}

// HasErrors returns true if any violation was recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Violations) > 0
}

// Len returns the number of recorded violations.
func (e *ValidationErrors) Len() int {
	return len(e.Violations)
}

// ForPath returns the violations recorded at exactly the given path.
func (e *ValidationErrors) ForPath(path string) []*Violation {
	var out []*Violation
	for _, v := range e.Violations {
		if v.Path == path {
			out = append(out, v)
		}
	}
	return out
}

// AsError returns nil when no violations were recorded, otherwise self.
func (e *ValidationErrors) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
