// Package schema declares every taskwright configuration field and
// validates configuration data against those declarations.
//
// The registry is the single source of truth for field types, defaults,
// allowed values, and sensitivity. Default generation, validation, and
// secret masking all derive from it.
package schema

import (
	"sort"
	"strings"
)

// Registry holds the full set of configuration sections.
type Registry struct {
	sections []*Section
	byName   map[string]*Section
}

// NewRegistry builds a registry from the given sections.
func NewRegistry(sections ...*Section) *Registry {
	r := &Registry{
		sections: sections,
		byName:   make(map[string]*Section, len(sections)),
	}
	for _, sec := range sections {
		r.byName[sec.Name] = sec
	}
	return r
}

// Sections returns all sections in declaration order.
func (r *Registry) Sections() []*Section {
	return r.sections
}

// Section returns the section with the given name.
func (r *Registry) Section(name string) (*Section, bool) {
	sec, ok := r.byName[name]
	return sec, ok
}

// FieldAt returns the field declared at a dotted section.field path.
func (r *Registry) FieldAt(path string) (*Field, bool) {
	secName, fieldName, ok := strings.Cut(path, ".")
	if !ok {
		return nil, false
	}
	sec, ok := r.byName[secName]
	if !ok {
		return nil, false
	}
	f, ok := sec.Fields[fieldName]
	return f, ok
}

// IsLeaf reports whether path addresses a declared field rather than a
// section. The second result is false when the path is unknown to the
// schema entirely.
func (r *Registry) IsLeaf(path string) (leaf, known bool) {
	if _, ok := r.FieldAt(path); ok {
		return true, true
	}
	if _, ok := r.byName[path]; ok {
		return false, true
	}
	return false, false
}

// Defaults returns a fresh nested map holding each field's declared
// default at its path. Fields without defaults are absent, never nil.
func (r *Registry) Defaults() map[string]any {
	out := make(map[string]any, len(r.sections))
	for _, sec := range r.sections {
		var secMap map[string]any
		for name, f := range sec.Fields {
			if f.Default == nil {
				continue
			}
			if secMap == nil {
				secMap = make(map[string]any)
			}
			secMap[name] = f.Default
		}
		if secMap != nil {
			out[sec.Name] = secMap
		}
	}
	return out
}

// SensitivePaths returns the sorted dotted paths of all sensitive fields.
func (r *Registry) SensitivePaths() []string {
	var paths []string
	for _, sec := range r.sections {
		for name, f := range sec.Fields {
			if f.Sensitive {
				paths = append(paths, sec.Name+"."+name)
			}
		}
	}
	sort.Strings(paths)
	return paths
}
