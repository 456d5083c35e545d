package layer

import "strings"

// Path is an ordered list of key segments addressing one value in a
// nested configuration map.
type Path []string

// ParsePath splits a dotted path into segments, dropping empty ones.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}

	var p Path
	for _, seg := range strings.Split(s, ".") {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String joins the path segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// DeepMerge combines dst and src into a fresh map without mutating
// either input. Where both sides hold a map at the same key the maps
// merge recursively; any other value in src replaces dst's wholesale,
// arrays included.
func DeepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for key, val := range dst {
		out[key] = cloneValue(val)
	}

	for key, srcVal := range src {
		dstVal, exists := out[key]
		if exists {
			srcMap, srcIsMap := srcVal.(map[string]any)
			dstMap, dstIsMap := dstVal.(map[string]any)
			if srcIsMap && dstIsMap {
				out[key] = DeepMerge(dstMap, srcMap)
				continue
			}
		}
		out[key] = cloneValue(srcVal)
	}

	return out
}

// Get retrieves the value at path. The second result is false when any
// segment is absent or a non-map is reached early.
func Get(data map[string]any, p Path) (any, bool) {
	if data == nil || len(p) == 0 {
		return nil, false
	}

	current := any(data)
	for _, seg := range p {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set stores value at path, creating intermediate maps as needed. A
// non-map intermediate value is replaced by a map.
func Set(data map[string]any, p Path, value any) {
	if data == nil || len(p) == 0 {
		return
	}

	current := data
	for _, seg := range p[:len(p)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[p[len(p)-1]] = value
}

// Delete removes the value at path and reports whether it existed.
func Delete(data map[string]any, p Path) bool {
	if data == nil || len(p) == 0 {
		return false
	}

	current := data
	for _, seg := range p[:len(p)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			return false
		}
		current = next
	}

	key := p[len(p)-1]
	if _, exists := current[key]; exists {
		delete(current, key)
		return true
	}
	return false
}

// GetByPath is Get with a dotted-path string.
func GetByPath(data map[string]any, path string) (any, bool) {
	return Get(data, ParsePath(path))
}

// SetByPath is Set with a dotted-path string.
func SetByPath(data map[string]any, path string, value any) {
	Set(data, ParsePath(path), value)
}

// DeleteByPath is Delete with a dotted-path string.
func DeleteByPath(data map[string]any, path string) bool {
	return Delete(data, ParsePath(path))
}

// LeafFunc decides whether the value at a dotted path is a leaf even
// when it is a map, letting callers distinguish object-valued settings
// from nested sections by schema rather than by shape.
type LeafFunc func(path string) bool

// Flatten flattens a nested map into dotted leaf paths. When isLeaf is
// non-nil it stops descending at paths it reports as leaves.
func Flatten(data map[string]any, isLeaf LeafFunc) map[string]any {
	result := make(map[string]any)
	flattenInto(data, "", isLeaf, result)
	return result
}

func flattenInto(data map[string]any, prefix string, isLeaf LeafFunc, result map[string]any) {
	for key, val := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		nested, isMap := val.(map[string]any)
		if isMap && (isLeaf == nil || !isLeaf(path)) {
			flattenInto(nested, path, isLeaf, result)
			continue
		}
		result[path] = val
	}
}
