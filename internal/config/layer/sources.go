package layer

import "sort"

// SourceMap records which layer supplied each effective leaf value.
// Attribution is monotonic within one load cycle: once a source has
// claimed a path, a lower-priority source can never take it over. The
// map is rebuilt from scratch on every load or re-merge.
type SourceMap struct {
	claims map[string]Source
	isLeaf LeafFunc
}

// NewSourceMap creates an empty source map. isLeaf may be nil, in which
// case every non-map value is a leaf.
func NewSourceMap(isLeaf LeafFunc) *SourceMap {
	return &SourceMap{
		claims: make(map[string]Source),
		isLeaf: isLeaf,
	}
}

// Track walks every leaf path in data and claims it for src unless a
// strictly higher-priority source already holds the claim.
func (m *SourceMap) Track(data map[string]any, src Source) {
	for path := range Flatten(data, m.isLeaf) {
		if cur, claimed := m.claims[path]; claimed && cur.Priority() > src.Priority() {
			continue
		}
		m.claims[path] = src
	}
}

// Lookup returns the source attributed to path.
func (m *SourceMap) Lookup(path string) (Source, bool) {
	src, ok := m.claims[path]
	return src, ok
}

// Paths returns every claimed path in sorted order.
func (m *SourceMap) Paths() []string {
	paths := make([]string, 0, len(m.claims))
	for p := range m.claims {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of claimed paths.
func (m *SourceMap) Len() int {
	return len(m.claims)
}
